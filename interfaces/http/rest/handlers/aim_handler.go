package handlers

import (
	"encoding/json"
	"net/http"

	"tomato-backend/application/commands"
	"tomato-backend/application/commands/bus"
	"tomato-backend/application/queries"
	querybus "tomato-backend/application/queries/bus"
	"tomato-backend/application/services"
	"tomato-backend/pkg/auth"
	"tomato-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AimHandler handles aim-related HTTP requests. The progress operations talk
// to the progress service directly because they return data, which the
// command bus does not carry.
type AimHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	progress   *services.ProgressService
	logger     *zap.Logger
}

// NewAimHandler creates a new aim handler
func NewAimHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	progress *services.ProgressService,
	logger *zap.Logger,
) *AimHandler {
	return &AimHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		progress:   progress,
		logger:     logger,
	}
}

// CreateAimResponse represents the response for creating an aim
type CreateAimResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ListAims handles GET /aims
func (h *AimHandler) ListAims(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetAimsQuery{OwnerID: userCtx.UserID})
	if err != nil {
		h.logger.Error("Failed to list aims",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CreateAim handles POST /aims
func (h *AimHandler) CreateAim(w http.ResponseWriter, r *http.Request) {
	var req addAimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()})
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	aimID := uuid.New().String()

	cmd := commands.AddAimCommand{
		AimID:         aimID,
		OwnerID:       userCtx.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		TargetMinutes: req.TargetMinutes,
		RelatedTodos:  req.RelatedTodos,
		Deadline:      req.Deadline,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create aim",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateAimResponse{
		ID:      aimID,
		Message: "Aim created successfully",
	})
}

// UpdateAim handles PUT /aims/{aimID}
func (h *AimHandler) UpdateAim(w http.ResponseWriter, r *http.Request) {
	aimID := chi.URLParam(r, "aimID")
	if aimID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Aim ID is required"})
		return
	}

	var req updateAimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()})
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	cmd := commands.UpdateAimCommand{
		AimID:         aimID,
		OwnerID:       userCtx.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		TargetMinutes: req.TargetMinutes,
		Deadline:      req.Deadline,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update aim",
			zap.String("aimID", aimID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Aim updated successfully",
		"id":      aimID,
	})
}

// DeleteAim handles DELETE /aims/{aimID}
func (h *AimHandler) DeleteAim(w http.ResponseWriter, r *http.Request) {
	aimID := chi.URLParam(r, "aimID")
	if aimID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Aim ID is required"})
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	cmd := commands.DeleteAimCommand{
		AimID:   aimID,
		OwnerID: userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete aim",
			zap.String("aimID", aimID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Aim deleted successfully",
		"id":      aimID,
	})
}

// RecomputeProgress handles POST /aims/{aimID}/progress/recompute
func (h *AimHandler) RecomputeProgress(w http.ResponseWriter, r *http.Request) {
	aimID := chi.URLParam(r, "aimID")
	if aimID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Aim ID is required"})
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	result, err := h.progress.Recompute(r.Context(), userCtx.UserID, aimID)
	if err != nil {
		h.logger.Error("Failed to recompute aim progress",
			zap.String("aimID", aimID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// SetProgress handles PUT /aims/{aimID}/progress
func (h *AimHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	aimID := chi.URLParam(r, "aimID")
	if aimID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Aim ID is required"})
		return
	}

	var req setAimProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()})
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	cmd := commands.SetAimProgressCommand{
		AimID:    aimID,
		OwnerID:  userCtx.UserID,
		Progress: req.Progress,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to set aim progress",
			zap.String("aimID", aimID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Aim progress set",
		"id":       aimID,
		"progress": req.Progress,
	})
}

// LinkTodos handles PUT /aims/{aimID}/todos
func (h *AimHandler) LinkTodos(w http.ResponseWriter, r *http.Request) {
	aimID := chi.URLParam(r, "aimID")
	if aimID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Aim ID is required"})
		return
	}

	var req linkTodosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body: " + err.Error()})
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	related, err := h.progress.LinkTodos(r.Context(), userCtx.UserID, aimID, req.RelatedTodos)
	if err != nil {
		h.logger.Error("Failed to link todos to aim",
			zap.String("aimID", aimID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":           aimID,
		"relatedTodos": related.Values(),
	})
}
