package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"tomato-backend/application/commands"
	"tomato-backend/application/commands/bus"
	"tomato-backend/application/queries"
	querybus "tomato-backend/application/queries/bus"
	"tomato-backend/application/services"
	"tomato-backend/pkg/auth"
	"tomato-backend/pkg/common"
	pkgerrors "tomato-backend/pkg/errors"
	"tomato-backend/pkg/observability"
	"tomato-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCallBodyBytes = 1 << 20

// CallHandler is the RPC-style dispatch endpoint the original client uses:
// one POST route carrying {"type": "<operation>", ...params}, answered with
// the {code, data, msg} envelope regardless of outcome.
type CallHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	progress   *services.ProgressService
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewCallHandler creates a new call dispatch handler
func NewCallHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	progress *services.ProgressService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CallHandler {
	return &CallHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		progress:   progress,
		metrics:    metrics,
		logger:     logger,
	}
}

// Call handles POST /api/v1/call
func (h *CallHandler) Call(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondEnvelopeError(w, "unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallBodyBytes))
	if err != nil {
		common.RespondEnvelopeError(w, "failed to read request body")
		return
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		common.RespondEnvelopeError(w, "invalid request body")
		return
	}

	h.metrics.RecordOperation(r.Context(), probe.Type)

	data, err := h.dispatch(r, userCtx.UserID, probe.Type, body)
	if err != nil {
		h.logger.Warn("Call operation failed",
			zap.String("operation", probe.Type),
			zap.String("userID", userCtx.UserID),
			zap.Duration("elapsed", common.GetElapsedTime(r.Context())),
			zap.Error(err),
		)
		common.RespondEnvelopeError(w, errorMessage(err))
		return
	}

	h.logger.Debug("Call operation completed",
		zap.String("operation", probe.Type),
		zap.Duration("elapsed", common.GetElapsedTime(r.Context())),
	)

	common.RespondEnvelope(w, data)
}

func (h *CallHandler) dispatch(r *http.Request, ownerID, opType string, body []byte) (interface{}, error) {
	ctx := r.Context()

	switch opType {
	case "getTodos":
		return h.queryBus.Ask(ctx, queries.GetTodosQuery{OwnerID: ownerID})

	case "addTodo":
		var req addTodoRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		todoID := uuid.New().String()
		cmd := commands.AddTodoCommand{
			TodoID:         todoID,
			OwnerID:        ownerID,
			Title:          req.Title,
			Description:    req.Description,
			Importance:     req.Importance,
			TomatoDuration: req.TomatoDuration,
			Category:       req.Category,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": todoID}, nil

	case "updateTodo":
		var req updateTodoRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, pkgerrors.NewValidationError("id is required")
		}
		cmd := commands.UpdateTodoCommand{
			TodoID:          req.ID,
			OwnerID:         ownerID,
			Title:           req.Title,
			Description:     req.Description,
			Importance:      req.Importance,
			Category:        req.Category,
			Completed:       req.Completed,
			TomatoDuration:  req.TomatoDuration,
			TomatoCount:     req.TomatoCount,
			TomatoTotalTime: req.TomatoTotalTime,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": req.ID}, nil

	case "deleteTodo":
		var req deleteRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		cmd := commands.DeleteTodoCommand{TodoID: req.ID, OwnerID: ownerID}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": req.ID}, nil

	case "getAims":
		return h.queryBus.Ask(ctx, queries.GetAimsQuery{OwnerID: ownerID})

	case "addAim":
		var req addAimRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		aimID := uuid.New().String()
		cmd := commands.AddAimCommand{
			AimID:         aimID,
			OwnerID:       ownerID,
			Title:         req.Title,
			Description:   req.Description,
			Category:      req.Category,
			TargetMinutes: req.TargetMinutes,
			RelatedTodos:  req.RelatedTodos,
			Deadline:      req.Deadline,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": aimID}, nil

	case "updateAim":
		var req updateAimRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, pkgerrors.NewValidationError("id is required")
		}
		cmd := commands.UpdateAimCommand{
			AimID:         req.ID,
			OwnerID:       ownerID,
			Title:         req.Title,
			Description:   req.Description,
			Category:      req.Category,
			TargetMinutes: req.TargetMinutes,
			Deadline:      req.Deadline,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": req.ID}, nil

	case "deleteAim":
		var req deleteRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		cmd := commands.DeleteAimCommand{AimID: req.ID, OwnerID: ownerID}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": req.ID}, nil

	case "setAimProgress":
		var req setAimProgressRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, pkgerrors.NewValidationError("id is required")
		}
		cmd := commands.SetAimProgressCommand{
			AimID:    req.ID,
			OwnerID:  ownerID,
			Progress: req.Progress,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]interface{}{"id": req.ID, "progress": req.Progress}, nil

	case "linkTodosToAim":
		var req linkTodosRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, pkgerrors.NewValidationError("id is required")
		}
		related, err := h.progress.LinkTodos(ctx, ownerID, req.ID, req.RelatedTodos)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"id": req.ID, "relatedTodos": related.Values()}, nil

	case "updateAimProgress":
		var req recomputeProgressRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		return h.progress.Recompute(ctx, ownerID, req.ID)

	case "getTomatoRecords":
		var req getTomatoRecordsRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		return h.queryBus.Ask(ctx, queries.GetTomatoRecordsQuery{
			OwnerID: ownerID,
			TodoID:  req.TodoID,
		})

	case "addTomatoRecord":
		var req addTomatoRecordRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		recordID := uuid.New().String()
		startTime := time.Now()
		if req.StartTime != nil {
			startTime = *req.StartTime
		}
		cmd := commands.AddTomatoRecordCommand{
			RecordID:  recordID,
			OwnerID:   ownerID,
			TodoID:    req.TodoID,
			StartTime: startTime,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": recordID}, nil

	case "updateTomatoRecord":
		var req updateTomatoRecordRequest
		if err := unmarshalParams(body, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, pkgerrors.NewValidationError("id is required")
		}
		cmd := commands.UpdateTomatoRecordCommand{
			RecordID:  req.ID,
			OwnerID:   ownerID,
			EndTime:   req.EndTime,
			Duration:  req.Duration,
			Completed: req.Completed,
			AutoSaved: req.AutoSaved,
		}
		if err := h.commandBus.Send(ctx, cmd); err != nil {
			return nil, err
		}
		return map[string]string{"id": req.ID}, nil

	case "getStatistics":
		return h.queryBus.Ask(ctx, queries.GetStatisticsQuery{OwnerID: ownerID})

	default:
		return nil, pkgerrors.NewUnknownOperationError(opType)
	}
}

// unmarshalParams decodes the call body into an operation DTO and validates it
func unmarshalParams(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return pkgerrors.NewValidationError("invalid parameters").WithCause(err)
	}
	return utils.ValidateStruct(v)
}

// errorMessage picks the envelope msg for an error, keeping internals opaque
func errorMessage(err error) string {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return "operation failed"
}
