package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tomato-backend/application/commands"
	"tomato-backend/application/commands/bus"
	"tomato-backend/application/queries"
	querybus "tomato-backend/application/queries/bus"
	"tomato-backend/application/services"
	"tomato-backend/domain/core/entities"
	"tomato-backend/domain/core/valueobjects"
	"tomato-backend/domain/events"
	"tomato-backend/pkg/auth"
	"tomato-backend/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAimRepo struct {
	aim *entities.Aim
}

func (s *stubAimRepo) Save(ctx context.Context, aim *entities.Aim) error { return nil }
func (s *stubAimRepo) GetByID(ctx context.Context, ownerID, aimID string) (*entities.Aim, error) {
	return s.aim, nil
}
func (s *stubAimRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.Aim, error) {
	return nil, nil
}
func (s *stubAimRepo) UpdateProgress(ctx context.Context, ownerID, aimID string, percent int) error {
	return nil
}
func (s *stubAimRepo) UpdateRelatedTodos(ctx context.Context, ownerID, aimID string, relatedTodos valueobjects.RelatedTodoIDs) error {
	return nil
}
func (s *stubAimRepo) Delete(ctx context.Context, ownerID, aimID string) error { return nil }

type stubTomatoRepo struct {
	records map[string][]*entities.TomatoRecord
}

func (s *stubTomatoRepo) Save(ctx context.Context, record *entities.TomatoRecord) error { return nil }
func (s *stubTomatoRepo) GetByID(ctx context.Context, ownerID, recordID string) (*entities.TomatoRecord, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTomatoRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*entities.TomatoRecord, error) {
	return nil, nil
}
func (s *stubTomatoRepo) GetByTodoID(ctx context.Context, ownerID, todoID string) ([]*entities.TomatoRecord, error) {
	return s.records[todoID], nil
}

type stubEventBus struct{}

func (s *stubEventBus) Publish(ctx context.Context, event events.DomainEvent) error { return nil }
func (s *stubEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return nil
}

func newCallTestHandler(t *testing.T, aimRepo *stubAimRepo, tomatoRepo *stubTomatoRepo) (*CallHandler, *[]bus.Command) {
	t.Helper()

	var sent []bus.Command
	capture := bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		sent = append(sent, cmd)
		return nil
	})

	commandBus := bus.NewCommandBus()
	require.NoError(t, commandBus.Register(commands.AddTodoCommand{}, capture))
	require.NoError(t, commandBus.Register(commands.DeleteTodoCommand{}, capture))
	require.NoError(t, commandBus.Register(commands.SetAimProgressCommand{}, capture))

	queryBus := querybus.NewQueryBus()
	require.NoError(t, queryBus.Register(queries.GetTodosQuery{}, querybus.QueryHandlerFunc(
		func(ctx context.Context, query querybus.Query) (interface{}, error) {
			return []string{"todo-view"}, nil
		},
	)))

	progress := services.NewProgressService(aimRepo, tomatoRepo, &stubEventBus{}, nil, zap.NewNop())

	handler := NewCallHandler(commandBus, queryBus, progress, nil, zap.NewNop())
	return handler, &sent
}

func doCall(t *testing.T, handler *CallHandler, payload map[string]interface{}) (*httptest.ResponseRecorder, common.Envelope) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/call", bytes.NewReader(body))
	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "user1"})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.Call(rec, req)

	var envelope common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestCallHandler_UnknownOperation(t *testing.T) {
	handler, _ := newCallTestHandler(t, &stubAimRepo{}, &stubTomatoRepo{})

	rec, envelope := doCall(t, handler, map[string]interface{}{"type": "teleport"})

	// The client protocol reports failure in the envelope, never the status.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, envelope.Code)
	assert.Contains(t, envelope.Msg, "unknown operation")
}

func TestCallHandler_QueryOperation(t *testing.T) {
	handler, _ := newCallTestHandler(t, &stubAimRepo{}, &stubTomatoRepo{})

	rec, envelope := doCall(t, handler, map[string]interface{}{"type": "getTodos"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, envelope.Code)
	assert.NotNil(t, envelope.Data)
}

func TestCallHandler_AddTodoDispatchesCommand(t *testing.T) {
	handler, sent := newCallTestHandler(t, &stubAimRepo{}, &stubTomatoRepo{})

	_, envelope := doCall(t, handler, map[string]interface{}{
		"type":  "addTodo",
		"title": "Write report",
	})

	assert.Equal(t, 0, envelope.Code)
	require.Len(t, *sent, 1)
	cmd := (*sent)[0].(commands.AddTodoCommand)
	assert.Equal(t, "user1", cmd.OwnerID)
	assert.Equal(t, "Write report", cmd.Title)
	assert.NotEmpty(t, cmd.TodoID)

	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, cmd.TodoID, data["id"])
}

func TestCallHandler_AddTodoValidationFailure(t *testing.T) {
	handler, sent := newCallTestHandler(t, &stubAimRepo{}, &stubTomatoRepo{})

	_, envelope := doCall(t, handler, map[string]interface{}{
		"type": "addTodo",
	})

	assert.Equal(t, -1, envelope.Code)
	assert.NotEmpty(t, envelope.Msg)
	assert.Empty(t, *sent)
}

func TestCallHandler_UpdateAimProgressReturnsResult(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	aim := entities.ReconstructAim("aim1", "user1", "Learn Go", "", "study", 100, []string{"t1"}, nil, 0, now, now)

	start := now.Add(time.Hour)
	end := start.Add(30 * time.Minute)
	record := entities.ReconstructTomatoRecord("r1", "user1", "t1", "", "", start, &end, 30, true, false, false)

	handler, _ := newCallTestHandler(t,
		&stubAimRepo{aim: aim},
		&stubTomatoRepo{records: map[string][]*entities.TomatoRecord{"t1": {record}}},
	)

	_, envelope := doCall(t, handler, map[string]interface{}{
		"type": "updateAimProgress",
		"id":   "aim1",
	})

	require.Equal(t, 0, envelope.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, float64(30), data["progress"])
	assert.Equal(t, float64(30), data["totalMinutes"])
}

func TestCallHandler_LinkTodosReturnsNormalizedList(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	aim := entities.ReconstructAim("aim1", "user1", "Learn Go", "", "study", 100, nil, nil, 0, now, now)

	handler, _ := newCallTestHandler(t, &stubAimRepo{aim: aim}, &stubTomatoRepo{})

	_, envelope := doCall(t, handler, map[string]interface{}{
		"type":         "linkTodosToAim",
		"id":           "aim1",
		"relatedTodos": []string{"t1", "t2", "t1"},
	})

	require.Equal(t, 0, envelope.Code)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"t1", "t2"}, data["relatedTodos"])
}

func TestCallHandler_MalformedBody(t *testing.T) {
	handler, _ := newCallTestHandler(t, &stubAimRepo{}, &stubTomatoRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/call", bytes.NewReader([]byte("{not json")))
	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: "user1"})
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.Call(rec, req)

	var envelope common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, envelope.Code)
}

func TestCallHandler_MissingUserContext(t *testing.T) {
	handler, _ := newCallTestHandler(t, &stubAimRepo{}, &stubTomatoRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/call", bytes.NewReader([]byte(`{"type":"getTodos"}`)))
	rec := httptest.NewRecorder()
	handler.Call(rec, req)

	var envelope common.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, -1, envelope.Code)
}
