package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"tomato-backend/application/commands"
	"tomato-backend/application/commands/bus"
	"tomato-backend/application/queries"
	querybus "tomato-backend/application/queries/bus"
	"tomato-backend/pkg/auth"
	"tomato-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TomatoHandler handles pomodoro session record HTTP requests
type TomatoHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewTomatoHandler creates a new tomato record handler
func NewTomatoHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *TomatoHandler {
	return &TomatoHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// StartRecordResponse represents the response for starting a session
type StartRecordResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ListRecords handles GET /tomatoes, optionally filtered with ?todoId=
func (h *TomatoHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	query := queries.GetTomatoRecordsQuery{
		OwnerID: userCtx.UserID,
		TodoID:  r.URL.Query().Get("todoId"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list tomato records",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// StartRecord handles POST /tomatoes
func (h *TomatoHandler) StartRecord(w http.ResponseWriter, r *http.Request) {
	var req addTomatoRecordRequest
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

	recordID := uuid.New().String()
	startTime := time.Now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	cmd := commands.AddTomatoRecordCommand{
		RecordID:  recordID,
		OwnerID:   userCtx.UserID,
		TodoID:    req.TodoID,
		StartTime: startTime,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to start tomato record",
			zap.String("todoID", req.TodoID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, StartRecordResponse{
		ID:      recordID,
		Message: "Tomato record started",
	})
}

// FinalizeRecord handles PUT /tomatoes/{recordID}
func (h *TomatoHandler) FinalizeRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	if recordID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Record ID is required"})
		return
	}

	var req updateTomatoRecordRequest
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

	cmd := commands.UpdateTomatoRecordCommand{
		RecordID:  recordID,
		OwnerID:   userCtx.UserID,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
		Completed: req.Completed,
		AutoSaved: req.AutoSaved,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to finalize tomato record",
			zap.String("recordID", recordID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Tomato record finalized",
		"id":      recordID,
	})
}
