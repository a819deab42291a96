package handlers

import (
	"context"

	"tomato-backend/application/ports"
	"tomato-backend/application/queries"
	"tomato-backend/application/queries/models"
	"tomato-backend/domain/core/entities"

	"go.uber.org/zap"
)

// GetTodosHandler handles the todo list query
type GetTodosHandler struct {
	todoRepo ports.TodoRepository
	logger   *zap.Logger
}

// NewGetTodosHandler creates a new get todos handler
func NewGetTodosHandler(todoRepo ports.TodoRepository, logger *zap.Logger) *GetTodosHandler {
	return &GetTodosHandler{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// Handle returns all todos for the owner
func (h *GetTodosHandler) Handle(ctx context.Context, query queries.GetTodosQuery) ([]models.TodoView, error) {
	todos, err := h.todoRepo.GetByOwnerID(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	views := make([]models.TodoView, 0, len(todos))
	for _, todo := range todos {
		views = append(views, todoView(todo))
	}
	return views, nil
}

// GetAimsHandler handles the aim list query
type GetAimsHandler struct {
	aimRepo ports.AimRepository
	logger  *zap.Logger
}

// NewGetAimsHandler creates a new get aims handler
func NewGetAimsHandler(aimRepo ports.AimRepository, logger *zap.Logger) *GetAimsHandler {
	return &GetAimsHandler{
		aimRepo: aimRepo,
		logger:  logger,
	}
}

// Handle returns all aims for the owner. Related-todo lists come out of the
// repository already normalized to the canonical shape.
func (h *GetAimsHandler) Handle(ctx context.Context, query queries.GetAimsQuery) ([]models.AimView, error) {
	aims, err := h.aimRepo.GetByOwnerID(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	views := make([]models.AimView, 0, len(aims))
	for _, aim := range aims {
		views = append(views, aimView(aim))
	}
	return views, nil
}

// GetTomatoRecordsHandler handles the session record list query
type GetTomatoRecordsHandler struct {
	tomatoRepo ports.TomatoRepository
	logger     *zap.Logger
}

// NewGetTomatoRecordsHandler creates a new get records handler
func NewGetTomatoRecordsHandler(tomatoRepo ports.TomatoRepository, logger *zap.Logger) *GetTomatoRecordsHandler {
	return &GetTomatoRecordsHandler{
		tomatoRepo: tomatoRepo,
		logger:     logger,
	}
}

// Handle returns the owner's records, narrowed to one todo when TodoID is set
func (h *GetTomatoRecordsHandler) Handle(ctx context.Context, query queries.GetTomatoRecordsQuery) ([]models.TomatoRecordView, error) {
	var (
		records []*entities.TomatoRecord
		err     error
	)
	if query.TodoID != "" {
		records, err = h.tomatoRepo.GetByTodoID(ctx, query.OwnerID, query.TodoID)
	} else {
		records, err = h.tomatoRepo.GetByOwnerID(ctx, query.OwnerID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]models.TomatoRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, recordView(record))
	}
	return views, nil
}

func todoView(todo *entities.Todo) models.TodoView {
	return models.TodoView{
		ID:              todo.ID(),
		Title:           todo.Title(),
		Description:     todo.Description(),
		Importance:      todo.Importance(),
		Category:        todo.Category(),
		Completed:       todo.Completed(),
		TomatoDuration:  todo.TomatoDuration(),
		TomatoCount:     todo.TomatoCount(),
		TomatoTotalTime: todo.TomatoTotalTime(),
		CreatedAt:       todo.CreatedAt(),
		UpdatedAt:       todo.UpdatedAt(),
	}
}

func aimView(aim *entities.Aim) models.AimView {
	return models.AimView{
		ID:            aim.ID(),
		Title:         aim.Title(),
		Description:   aim.Description(),
		Category:      aim.Category(),
		TargetMinutes: aim.TargetMinutes(),
		RelatedTodos:  aim.RelatedTodos().Values(),
		Deadline:      aim.Deadline(),
		Progress:      aim.Progress(),
		CreatedAt:     aim.CreatedAt(),
		UpdatedAt:     aim.UpdatedAt(),
	}
}

func recordView(record *entities.TomatoRecord) models.TomatoRecordView {
	return models.TomatoRecordView{
		ID:         record.ID(),
		TodoID:     record.TodoID(),
		Title:      record.Title(),
		Category:   record.Category(),
		StartTime:  record.StartTime(),
		EndTime:    record.EndTime(),
		Duration:   record.Duration(),
		Minutes:    record.Minutes(),
		Completed:  record.Completed(),
		InProgress: record.InProgress(),
		AutoSaved:  record.AutoSaved(),
	}
}
