package handlers

import (
	"context"

	"tomato-backend/application/commands"
	"tomato-backend/application/ports"
	"tomato-backend/application/services"
	"tomato-backend/domain/core/entities"

	"go.uber.org/zap"
)

// AddAimHandler handles aim creation commands
type AddAimHandler struct {
	aimRepo  ports.AimRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewAddAimHandler creates a new add aim handler
func NewAddAimHandler(aimRepo ports.AimRepository, eventBus ports.EventBus, logger *zap.Logger) *AddAimHandler {
	return &AddAimHandler{
		aimRepo:  aimRepo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the add aim command. Progress starts at zero and the
// related-todo list is normalized before it is stored.
func (h *AddAimHandler) Handle(ctx context.Context, cmd commands.AddAimCommand) error {
	aim, err := entities.NewAim(
		cmd.AimID,
		cmd.OwnerID,
		cmd.Title,
		cmd.Description,
		cmd.Category,
		cmd.TargetMinutes,
		cmd.RelatedTodos,
		cmd.Deadline,
	)
	if err != nil {
		return err
	}

	if err := h.aimRepo.Save(ctx, aim); err != nil {
		return err
	}

	publishEvents(ctx, h.eventBus, h.logger, aim.GetUncommittedEvents())
	aim.MarkEventsAsCommitted()

	h.logger.Info("Aim created",
		zap.String("aimID", aim.ID()),
		zap.String("ownerID", aim.OwnerID()),
		zap.Int("relatedTodos", aim.RelatedTodos().Len()),
	)

	return nil
}

// UpdateAimHandler handles sparse aim updates
type UpdateAimHandler struct {
	aimRepo ports.AimRepository
	logger  *zap.Logger
}

// NewUpdateAimHandler creates a new update aim handler
func NewUpdateAimHandler(aimRepo ports.AimRepository, logger *zap.Logger) *UpdateAimHandler {
	return &UpdateAimHandler{
		aimRepo: aimRepo,
		logger:  logger,
	}
}

// Handle executes the update aim command. Progress and the related-todo
// list are not touched here; they have dedicated operations.
func (h *UpdateAimHandler) Handle(ctx context.Context, cmd commands.UpdateAimCommand) error {
	aim, err := h.aimRepo.GetByID(ctx, cmd.OwnerID, cmd.AimID)
	if err != nil {
		return err
	}

	update := entities.AimUpdate{
		Title:         cmd.Title,
		Description:   cmd.Description,
		Category:      cmd.Category,
		TargetMinutes: cmd.TargetMinutes,
		Deadline:      cmd.Deadline,
	}
	if err := aim.Apply(update); err != nil {
		return err
	}

	return h.aimRepo.Save(ctx, aim)
}

// DeleteAimHandler handles aim deletion commands
type DeleteAimHandler struct {
	aimRepo ports.AimRepository
	logger  *zap.Logger
}

// NewDeleteAimHandler creates a new delete aim handler
func NewDeleteAimHandler(aimRepo ports.AimRepository, logger *zap.Logger) *DeleteAimHandler {
	return &DeleteAimHandler{
		aimRepo: aimRepo,
		logger:  logger,
	}
}

// Handle executes the delete aim command
func (h *DeleteAimHandler) Handle(ctx context.Context, cmd commands.DeleteAimCommand) error {
	if err := h.aimRepo.Delete(ctx, cmd.OwnerID, cmd.AimID); err != nil {
		return err
	}

	h.logger.Info("Aim deleted",
		zap.String("aimID", cmd.AimID),
		zap.String("ownerID", cmd.OwnerID),
	)

	return nil
}

// SetAimProgressHandler handles the manual progress override
type SetAimProgressHandler struct {
	progress *services.ProgressService
}

// NewSetAimProgressHandler creates a new manual override handler
func NewSetAimProgressHandler(progress *services.ProgressService) *SetAimProgressHandler {
	return &SetAimProgressHandler{progress: progress}
}

// Handle overwrites the aim's progress, bypassing the aggregator
func (h *SetAimProgressHandler) Handle(ctx context.Context, cmd commands.SetAimProgressCommand) error {
	return h.progress.SetProgress(ctx, cmd.OwnerID, cmd.AimID, cmd.Progress)
}
