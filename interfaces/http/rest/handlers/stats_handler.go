package handlers

import (
	"net/http"

	"tomato-backend/application/queries"
	querybus "tomato-backend/application/queries/bus"
	"tomato-backend/pkg/auth"

	"go.uber.org/zap"
)

// StatsHandler handles the statistics query endpoint
type StatsHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetStatistics handles GET /statistics
func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetStatisticsQuery{OwnerID: userCtx.UserID})
	if err != nil {
		h.logger.Error("Failed to compute statistics",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
