package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tomato-backend/domain/core/entities"
	"tomato-backend/domain/core/valueobjects"
	"tomato-backend/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAimRepo is an in-memory AimRepository recording progress writes
type fakeAimRepo struct {
	aim *entities.Aim

	getErr            error
	updateProgressErr error

	progressWrites []int
	relatedWrites  []valueobjects.RelatedTodoIDs
}

func (f *fakeAimRepo) Save(ctx context.Context, aim *entities.Aim) error { return nil }

func (f *fakeAimRepo) GetByID(ctx context.Context, ownerID, aimID string) (*entities.Aim, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.aim, nil
}

func (f *fakeAimRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Aim, error) {
	return []*entities.Aim{f.aim}, nil
}

func (f *fakeAimRepo) UpdateProgress(ctx context.Context, ownerID, aimID string, percent int) error {
	if f.updateProgressErr != nil {
		return f.updateProgressErr
	}
	f.progressWrites = append(f.progressWrites, percent)
	return nil
}

func (f *fakeAimRepo) UpdateRelatedTodos(ctx context.Context, ownerID, aimID string, relatedTodos valueobjects.RelatedTodoIDs) error {
	f.relatedWrites = append(f.relatedWrites, relatedTodos)
	return nil
}

func (f *fakeAimRepo) Delete(ctx context.Context, ownerID, aimID string) error { return nil }

// fakeTomatoRepo serves canned records per todo ID, with per-ID failures
type fakeTomatoRepo struct {
	recordsByTodo map[string][]*entities.TomatoRecord
	errsByTodo    map[string]error
}

func (f *fakeTomatoRepo) Save(ctx context.Context, record *entities.TomatoRecord) error { return nil }

func (f *fakeTomatoRepo) GetByID(ctx context.Context, ownerID, recordID string) (*entities.TomatoRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTomatoRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.TomatoRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTomatoRepo) GetByTodoID(ctx context.Context, ownerID, todoID string) ([]*entities.TomatoRecord, error) {
	if err, ok := f.errsByTodo[todoID]; ok {
		return nil, err
	}
	return f.recordsByTodo[todoID], nil
}

// fakeEventBus collects published events
type fakeEventBus struct {
	published []events.DomainEvent
}

func (f *fakeEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	f.published = append(f.published, batch...)
	return nil
}

func testAim(t *testing.T, targetMinutes int, relatedTodos interface{}, progress int) *entities.Aim {
	t.Helper()
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return entities.ReconstructAim(
		"aim1", "user1", "Learn Go", "", "study",
		targetMinutes, relatedTodos, nil, progress, now, now,
	)
}

func finishedRecord(t *testing.T, todoID string, minutes int) *entities.TomatoRecord {
	t.Helper()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(minutes) * time.Minute)
	return entities.ReconstructTomatoRecord(
		"rec-"+todoID, "user1", todoID, "", "",
		start, &end, minutes, true, false, false,
	)
}

func newTestService(aimRepo *fakeAimRepo, tomatoRepo *fakeTomatoRepo, eventBus *fakeEventBus) *ProgressService {
	return NewProgressService(aimRepo, tomatoRepo, eventBus, nil, zap.NewNop())
}

func TestRecompute_SumsLinkedTodoMinutes(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, []string{"t1", "t2"}, 0)}
	tomatoRepo := &fakeTomatoRepo{
		recordsByTodo: map[string][]*entities.TomatoRecord{
			"t1": {finishedRecord(t, "t1", 30)},
			"t2": {finishedRecord(t, "t2", 45)},
		},
	}
	eventBus := &fakeEventBus{}
	svc := newTestService(aimRepo, tomatoRepo, eventBus)

	result, err := svc.Recompute(context.Background(), "user1", "aim1")

	require.NoError(t, err)
	assert.Equal(t, 75, result.Progress)
	assert.Equal(t, 75, result.TotalMinutes)
	assert.Equal(t, []int{75}, aimRepo.progressWrites)
	assert.Len(t, eventBus.published, 1)
}

func TestRecompute_ClampsAtHundred(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 60, []string{"t1"}, 0)}
	tomatoRepo := &fakeTomatoRepo{
		recordsByTodo: map[string][]*entities.TomatoRecord{
			"t1": {finishedRecord(t, "t1", 90)},
		},
	}
	svc := newTestService(aimRepo, tomatoRepo, &fakeEventBus{})

	result, err := svc.Recompute(context.Background(), "user1", "aim1")

	require.NoError(t, err)
	assert.Equal(t, 100, result.Progress)
	assert.Equal(t, 90, result.TotalMinutes)
}

func TestRecompute_ZeroTargetFloorsToOne(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 0, []string{"t1"}, 0)}
	tomatoRepo := &fakeTomatoRepo{
		recordsByTodo: map[string][]*entities.TomatoRecord{
			"t1": {finishedRecord(t, "t1", 5)},
		},
	}
	svc := newTestService(aimRepo, tomatoRepo, &fakeEventBus{})

	result, err := svc.Recompute(context.Background(), "user1", "aim1")

	require.NoError(t, err)
	assert.Equal(t, 100, result.Progress)
}

func TestRecompute_NoLinkedTodosKeepsStoredProgress(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, nil, 40)}
	tomatoRepo := &fakeTomatoRepo{}
	svc := newTestService(aimRepo, tomatoRepo, &fakeEventBus{})

	result, err := svc.Recompute(context.Background(), "user1", "aim1")

	require.NoError(t, err)
	assert.Equal(t, 40, result.Progress)
	assert.Equal(t, 0, result.TotalMinutes)
	assert.Empty(t, aimRepo.progressWrites)
}

func TestRecompute_PartialQueryFailureSkipsThatTodo(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, []string{"t1", "t2"}, 0)}
	tomatoRepo := &fakeTomatoRepo{
		recordsByTodo: map[string][]*entities.TomatoRecord{
			"t2": {finishedRecord(t, "t2", 20)},
		},
		errsByTodo: map[string]error{
			"t1": errors.New("throttled"),
		},
	}
	svc := newTestService(aimRepo, tomatoRepo, &fakeEventBus{})

	result, err := svc.Recompute(context.Background(), "user1", "aim1")

	require.NoError(t, err)
	assert.Equal(t, 20, result.TotalMinutes)
	assert.Equal(t, 20, result.Progress)
	assert.Equal(t, []int{20}, aimRepo.progressWrites)
}

func TestRecompute_AimLookupFailurePropagates(t *testing.T) {
	aimRepo := &fakeAimRepo{getErr: errors.New("aim not found")}
	svc := newTestService(aimRepo, &fakeTomatoRepo{}, &fakeEventBus{})

	_, err := svc.Recompute(context.Background(), "user1", "aim1")

	assert.Error(t, err)
	assert.Empty(t, aimRepo.progressWrites)
}

func TestRecompute_ProgressWriteFailurePropagates(t *testing.T) {
	aimRepo := &fakeAimRepo{
		aim:               testAim(t, 100, []string{"t1"}, 0),
		updateProgressErr: errors.New("conditional check failed"),
	}
	tomatoRepo := &fakeTomatoRepo{
		recordsByTodo: map[string][]*entities.TomatoRecord{
			"t1": {finishedRecord(t, "t1", 30)},
		},
	}
	eventBus := &fakeEventBus{}
	svc := newTestService(aimRepo, tomatoRepo, eventBus)

	_, err := svc.Recompute(context.Background(), "user1", "aim1")

	assert.Error(t, err)
	assert.Empty(t, eventBus.published)
}

func TestSetProgress_Bounds(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, nil, 0)}
	svc := newTestService(aimRepo, &fakeTomatoRepo{}, &fakeEventBus{})
	ctx := context.Background()

	assert.Error(t, svc.SetProgress(ctx, "user1", "aim1", -1))
	assert.Error(t, svc.SetProgress(ctx, "user1", "aim1", 101))
	assert.Empty(t, aimRepo.progressWrites)

	assert.NoError(t, svc.SetProgress(ctx, "user1", "aim1", 0))
	assert.NoError(t, svc.SetProgress(ctx, "user1", "aim1", 100))
	assert.Equal(t, []int{0, 100}, aimRepo.progressWrites)
}

func TestLinkTodos_ReplacesWholesale(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, []string{"old1", "old2"}, 0)}
	eventBus := &fakeEventBus{}
	svc := newTestService(aimRepo, &fakeTomatoRepo{}, eventBus)

	related, err := svc.LinkTodos(context.Background(), "user1", "aim1", []string{"new1", "new2", "new1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"new1", "new2"}, related.Values())
	require.Len(t, aimRepo.relatedWrites, 1)
	assert.Equal(t, []string{"new1", "new2"}, aimRepo.relatedWrites[0].Values())
	assert.Len(t, eventBus.published, 1)
}

func TestLinkTodos_NormalizesLegacyStringShape(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, nil, 0)}
	svc := newTestService(aimRepo, &fakeTomatoRepo{}, &fakeEventBus{})

	related, err := svc.LinkTodos(context.Background(), "user1", "aim1", `["a","b","a"]`)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, related.Values())
}

func TestLinkTodos_EmptyInputClearsLinks(t *testing.T) {
	aimRepo := &fakeAimRepo{aim: testAim(t, 100, []string{"old"}, 0)}
	svc := newTestService(aimRepo, &fakeTomatoRepo{}, &fakeEventBus{})

	related, err := svc.LinkTodos(context.Background(), "user1", "aim1", nil)

	require.NoError(t, err)
	assert.True(t, related.IsEmpty())
	require.Len(t, aimRepo.relatedWrites, 1)
	assert.True(t, aimRepo.relatedWrites[0].IsEmpty())
}
