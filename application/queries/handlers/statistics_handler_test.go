package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"tomato-backend/application/queries"
	"tomato-backend/domain/core/entities"
	"tomato-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTodoRepo struct {
	todos []*entities.Todo
	err   error
}

func (f *fakeTodoRepo) Save(ctx context.Context, todo *entities.Todo) error { return nil }
func (f *fakeTodoRepo) GetByID(ctx context.Context, ownerID, todoID string) (*entities.Todo, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTodoRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Todo, error) {
	return f.todos, f.err
}
func (f *fakeTodoRepo) Delete(ctx context.Context, ownerID, todoID string) error  { return nil }
func (f *fakeTodoRepo) ResetDailyState(ctx context.Context, ownerID string) error { return nil }

type fakeAimRepo struct {
	aims []*entities.Aim
}

func (f *fakeAimRepo) Save(ctx context.Context, aim *entities.Aim) error { return nil }
func (f *fakeAimRepo) GetByID(ctx context.Context, ownerID, aimID string) (*entities.Aim, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeAimRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Aim, error) {
	return f.aims, nil
}
func (f *fakeAimRepo) UpdateProgress(ctx context.Context, ownerID, aimID string, percent int) error {
	return nil
}
func (f *fakeAimRepo) UpdateRelatedTodos(ctx context.Context, ownerID, aimID string, relatedTodos valueobjects.RelatedTodoIDs) error {
	return nil
}
func (f *fakeAimRepo) Delete(ctx context.Context, ownerID, aimID string) error { return nil }

type fakeTomatoRepo struct {
	records []*entities.TomatoRecord
}

func (f *fakeTomatoRepo) Save(ctx context.Context, record *entities.TomatoRecord) error { return nil }
func (f *fakeTomatoRepo) GetByID(ctx context.Context, ownerID, recordID string) (*entities.TomatoRecord, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeTomatoRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.TomatoRecord, error) {
	return f.records, nil
}
func (f *fakeTomatoRepo) GetByTodoID(ctx context.Context, ownerID, todoID string) ([]*entities.TomatoRecord, error) {
	return nil, errors.New("not implemented")
}

func testTodo(id, category string, importance int, completed bool) *entities.Todo {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return entities.ReconstructTodo(id, "user1", "title", "", importance, category, completed, 25, 0, 0, now, now)
}

func testAimWithProgress(id, category string, progress int) *entities.Aim {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return entities.ReconstructAim(id, "user1", "title", "", category, 100, nil, nil, progress, now, now)
}

func testRecord(id string, minutes int) *entities.TomatoRecord {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(minutes) * time.Minute)
	return entities.ReconstructTomatoRecord(id, "user1", "todo1", "", "", start, &end, minutes, true, false, false)
}

func TestGetStatisticsHandler_Handle(t *testing.T) {
	todoRepo := &fakeTodoRepo{todos: []*entities.Todo{
		testTodo("t1", "work", 3, true),
		testTodo("t2", "work", 5, false),
		testTodo("t3", "", 3, false),
	}}
	aimRepo := &fakeAimRepo{aims: []*entities.Aim{
		testAimWithProgress("a1", "study", 100),
		testAimWithProgress("a2", "study", 40),
	}}
	tomatoRepo := &fakeTomatoRepo{records: []*entities.TomatoRecord{
		testRecord("r1", 25),
		testRecord("r2", 50),
	}}

	handler := NewGetStatisticsHandler(todoRepo, aimRepo, tomatoRepo, zap.NewNop())

	stats, err := handler.Handle(context.Background(), queries.GetStatisticsQuery{OwnerID: "user1"})

	require.NoError(t, err)

	assert.Equal(t, 3, stats.Todos.Total)
	assert.Equal(t, 1, stats.Todos.Completed)
	assert.Equal(t, 2, stats.Todos.Incomplete)
	assert.Equal(t, 2, stats.Todos.ImportanceDistribution[3])
	assert.Equal(t, 1, stats.Todos.ImportanceDistribution[5])
	assert.Equal(t, 2, stats.Todos.CategoryDistribution["work"])
	assert.Equal(t, 1, stats.Todos.CategoryDistribution["uncategorized"])

	assert.Equal(t, 2, stats.Aims.Total)
	assert.Equal(t, 1, stats.Aims.Completed)
	assert.Equal(t, 1, stats.Aims.InProgress)
	assert.Equal(t, 2, stats.Aims.CategoryDistribution["study"])

	assert.Equal(t, 2, stats.Tomatoes.Total)
	assert.Equal(t, 75, stats.Tomatoes.TotalMinutes)
	assert.Equal(t, 38, stats.Tomatoes.AverageDuration)
}

func TestGetStatisticsHandler_Handle_EmptyAccount(t *testing.T) {
	handler := NewGetStatisticsHandler(&fakeTodoRepo{}, &fakeAimRepo{}, &fakeTomatoRepo{}, zap.NewNop())

	stats, err := handler.Handle(context.Background(), queries.GetStatisticsQuery{OwnerID: "user1"})

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Todos.Total)
	assert.Equal(t, 0, stats.Tomatoes.TotalMinutes)
	assert.Equal(t, 0, stats.Tomatoes.AverageDuration)
}

func TestGetStatisticsHandler_Handle_RepoFailurePropagates(t *testing.T) {
	todoRepo := &fakeTodoRepo{err: errors.New("query failed")}
	handler := NewGetStatisticsHandler(todoRepo, &fakeAimRepo{}, &fakeTomatoRepo{}, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.GetStatisticsQuery{OwnerID: "user1"})

	assert.Error(t, err)
}
