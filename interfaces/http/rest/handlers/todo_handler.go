package handlers

import (
	"encoding/json"
	"net/http"

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

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *TodoHandler {
	return &TodoHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateTodoResponse represents the response for creating a todo
type CreateTodoResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetTodosQuery{OwnerID: userCtx.UserID})
	if err != nil {
		h.logger.Error("Failed to list todos",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req addTodoRequest
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

	todoID := uuid.New().String()

	cmd := commands.AddTodoCommand{
		TodoID:         todoID,
		OwnerID:        userCtx.UserID,
		Title:          req.Title,
		Description:    req.Description,
		Importance:     req.Importance,
		TomatoDuration: req.TomatoDuration,
		Category:       req.Category,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create todo",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, CreateTodoResponse{
		ID:      todoID,
		Message: "Todo created successfully",
	})
}

// UpdateTodo handles PUT /todos/{todoID}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoID")
	if todoID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Todo ID is required"})
		return
	}

	var req updateTodoRequest
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

	cmd := commands.UpdateTodoCommand{
		TodoID:          todoID,
		OwnerID:         userCtx.UserID,
		Title:           req.Title,
		Description:     req.Description,
		Importance:      req.Importance,
		Category:        req.Category,
		Completed:       req.Completed,
		TomatoDuration:  req.TomatoDuration,
		TomatoCount:     req.TomatoCount,
		TomatoTotalTime: req.TomatoTotalTime,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update todo",
			zap.String("todoID", todoID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Todo updated successfully",
		"id":      todoID,
	})
}

// DeleteTodo handles DELETE /todos/{todoID}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "todoID")
	if todoID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"message": "Todo ID is required"})
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	cmd := commands.DeleteTodoCommand{
		TodoID:  todoID,
		OwnerID: userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete todo",
			zap.String("todoID", todoID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Todo deleted successfully",
		"id":      todoID,
	})
}
