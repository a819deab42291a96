package handlers

import (
	"context"

	"tomato-backend/application/commands"
	"tomato-backend/application/ports"
	"tomato-backend/domain/core/entities"

	"go.uber.org/zap"
)

// AddTodoHandler handles todo creation commands
type AddTodoHandler struct {
	todoRepo ports.TodoRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewAddTodoHandler creates a new add todo handler
func NewAddTodoHandler(todoRepo ports.TodoRepository, eventBus ports.EventBus, logger *zap.Logger) *AddTodoHandler {
	return &AddTodoHandler{
		todoRepo: todoRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the add todo command
func (h *AddTodoHandler) Handle(ctx context.Context, cmd commands.AddTodoCommand) error {
	todo, err := entities.NewTodo(
		cmd.TodoID,
		cmd.OwnerID,
		cmd.Title,
		cmd.Description,
		cmd.Importance,
		cmd.TomatoDuration,
		cmd.Category,
	)
	if err != nil {
		return err
	}

	if err := h.todoRepo.Save(ctx, todo); err != nil {
		return err
	}

	publishEvents(ctx, h.eventBus, h.logger, todo.GetUncommittedEvents())
	todo.MarkEventsAsCommitted()

	h.logger.Info("Todo created",
		zap.String("todoID", todo.ID()),
		zap.String("ownerID", todo.OwnerID()),
	)

	return nil
}

// UpdateTodoHandler handles sparse todo updates
type UpdateTodoHandler struct {
	todoRepo ports.TodoRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewUpdateTodoHandler creates a new update todo handler
func NewUpdateTodoHandler(todoRepo ports.TodoRepository, eventBus ports.EventBus, logger *zap.Logger) *UpdateTodoHandler {
	return &UpdateTodoHandler{
		todoRepo: todoRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the update todo command
func (h *UpdateTodoHandler) Handle(ctx context.Context, cmd commands.UpdateTodoCommand) error {
	todo, err := h.todoRepo.GetByID(ctx, cmd.OwnerID, cmd.TodoID)
	if err != nil {
		return err
	}

	update := entities.TodoUpdate{
		Title:           cmd.Title,
		Description:     cmd.Description,
		Importance:      cmd.Importance,
		Category:        cmd.Category,
		Completed:       cmd.Completed,
		TomatoDuration:  cmd.TomatoDuration,
		TomatoCount:     cmd.TomatoCount,
		TomatoTotalTime: cmd.TomatoTotalTime,
	}
	if err := todo.Apply(update); err != nil {
		return err
	}

	if err := h.todoRepo.Save(ctx, todo); err != nil {
		return err
	}

	publishEvents(ctx, h.eventBus, h.logger, todo.GetUncommittedEvents())
	todo.MarkEventsAsCommitted()

	return nil
}

// DeleteTodoHandler handles todo deletion commands
type DeleteTodoHandler struct {
	todoRepo ports.TodoRepository
	logger   *zap.Logger
}

// NewDeleteTodoHandler creates a new delete todo handler
func NewDeleteTodoHandler(todoRepo ports.TodoRepository, logger *zap.Logger) *DeleteTodoHandler {
	return &DeleteTodoHandler{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// Handle executes the delete todo command. Tomato records referencing the
// todo are left in place.
func (h *DeleteTodoHandler) Handle(ctx context.Context, cmd commands.DeleteTodoCommand) error {
	if err := h.todoRepo.Delete(ctx, cmd.OwnerID, cmd.TodoID); err != nil {
		return err
	}

	h.logger.Info("Todo deleted",
		zap.String("todoID", cmd.TodoID),
		zap.String("ownerID", cmd.OwnerID),
	)

	return nil
}

// ResetDailyStateHandler handles the scheduled daily reset
type ResetDailyStateHandler struct {
	todoRepo ports.TodoRepository
	logger   *zap.Logger
}

// NewResetDailyStateHandler creates a new daily reset handler
func NewResetDailyStateHandler(todoRepo ports.TodoRepository, logger *zap.Logger) *ResetDailyStateHandler {
	return &ResetDailyStateHandler{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// Handle clears the completed flag and tomato count on the user's todos
func (h *ResetDailyStateHandler) Handle(ctx context.Context, cmd commands.ResetDailyStateCommand) error {
	if err := h.todoRepo.ResetDailyState(ctx, cmd.OwnerID); err != nil {
		return err
	}

	h.logger.Info("Daily todo state reset", zap.String("ownerID", cmd.OwnerID))
	return nil
}
