package handlers

import (
	"context"
	"time"

	"tomato-backend/application/commands"
	"tomato-backend/application/ports"
	"tomato-backend/domain/core/entities"

	"go.uber.org/zap"
)

// AddTomatoRecordHandler handles session record creation. The referenced
// todo must exist; its title and category are snapshotted onto the record.
type AddTomatoRecordHandler struct {
	tomatoRepo ports.TomatoRepository
	todoRepo   ports.TodoRepository
	logger     *zap.Logger
}

// NewAddTomatoRecordHandler creates a new add record handler
func NewAddTomatoRecordHandler(tomatoRepo ports.TomatoRepository, todoRepo ports.TodoRepository, logger *zap.Logger) *AddTomatoRecordHandler {
	return &AddTomatoRecordHandler{
		tomatoRepo: tomatoRepo,
		todoRepo:   todoRepo,
		logger:     logger,
	}
}

// Handle executes the add record command
func (h *AddTomatoRecordHandler) Handle(ctx context.Context, cmd commands.AddTomatoRecordCommand) error {
	todo, err := h.todoRepo.GetByID(ctx, cmd.OwnerID, cmd.TodoID)
	if err != nil {
		return err
	}

	record, err := entities.NewTomatoRecord(
		cmd.RecordID,
		cmd.OwnerID,
		cmd.TodoID,
		todo.Title(),
		todo.Category(),
		cmd.StartTime,
	)
	if err != nil {
		return err
	}

	if err := h.tomatoRepo.Save(ctx, record); err != nil {
		return err
	}

	h.logger.Info("Tomato record started",
		zap.String("recordID", record.ID()),
		zap.String("todoID", record.TodoID()),
		zap.String("ownerID", record.OwnerID()),
	)

	return nil
}

// UpdateTomatoRecordHandler finalizes a live session record. A session that
// ran to full duration also accumulates its minutes onto the todo.
type UpdateTomatoRecordHandler struct {
	tomatoRepo ports.TomatoRepository
	todoRepo   ports.TodoRepository
	eventBus   ports.EventBus
	logger     *zap.Logger
}

// NewUpdateTomatoRecordHandler creates a new finalize record handler
func NewUpdateTomatoRecordHandler(
	tomatoRepo ports.TomatoRepository,
	todoRepo ports.TodoRepository,
	eventBus ports.EventBus,
	logger *zap.Logger,
) *UpdateTomatoRecordHandler {
	return &UpdateTomatoRecordHandler{
		tomatoRepo: tomatoRepo,
		todoRepo:   todoRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Handle executes the finalize record command
func (h *UpdateTomatoRecordHandler) Handle(ctx context.Context, cmd commands.UpdateTomatoRecordCommand) error {
	record, err := h.tomatoRepo.GetByID(ctx, cmd.OwnerID, cmd.RecordID)
	if err != nil {
		return err
	}

	endTime := time.Now()
	if cmd.EndTime != nil {
		endTime = *cmd.EndTime
	}

	if err := record.Finalize(endTime, cmd.Duration, cmd.Completed, cmd.AutoSaved); err != nil {
		return err
	}

	if err := h.tomatoRepo.Save(ctx, record); err != nil {
		return err
	}

	// A full session bumps the todo's counters. The todo may have been
	// deleted since the session started; the record stands on its own then.
	if cmd.Completed {
		todo, err := h.todoRepo.GetByID(ctx, cmd.OwnerID, record.TodoID())
		if err != nil {
			h.logger.Warn("Todo not updated after completed session",
				zap.String("todoID", record.TodoID()),
				zap.Error(err),
			)
		} else {
			todo.RecordSession(record.Minutes())
			if err := h.todoRepo.Save(ctx, todo); err != nil {
				h.logger.Warn("Failed to accumulate session onto todo",
					zap.String("todoID", todo.ID()),
					zap.Error(err),
				)
			}
		}
	}

	publishEvents(ctx, h.eventBus, h.logger, record.GetUncommittedEvents())
	record.MarkEventsAsCommitted()

	h.logger.Info("Tomato record finalized",
		zap.String("recordID", record.ID()),
		zap.Bool("completed", record.Completed()),
		zap.Int("minutes", record.Minutes()),
	)

	return nil
}
