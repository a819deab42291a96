package handlers

import (
	"context"
	"math"
	"time"

	"tomato-backend/application/ports"
	"tomato-backend/application/queries"
	"tomato-backend/application/queries/models"

	"go.uber.org/zap"
)

// GetStatisticsHandler aggregates usage statistics across a user's todos,
// aims and session records
type GetStatisticsHandler struct {
	todoRepo   ports.TodoRepository
	aimRepo    ports.AimRepository
	tomatoRepo ports.TomatoRepository
	logger     *zap.Logger
}

// NewGetStatisticsHandler creates a new statistics handler
func NewGetStatisticsHandler(
	todoRepo ports.TodoRepository,
	aimRepo ports.AimRepository,
	tomatoRepo ports.TomatoRepository,
	logger *zap.Logger,
) *GetStatisticsHandler {
	return &GetStatisticsHandler{
		todoRepo:   todoRepo,
		aimRepo:    aimRepo,
		tomatoRepo: tomatoRepo,
		logger:     logger,
	}
}

// Handle computes the combined usage report
func (h *GetStatisticsHandler) Handle(ctx context.Context, query queries.GetStatisticsQuery) (*models.Statistics, error) {
	todos, err := h.todoRepo.GetByOwnerID(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}
	aims, err := h.aimRepo.GetByOwnerID(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}
	records, err := h.tomatoRepo.GetByOwnerID(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		Todos: models.TodoStats{
			Total:                  len(todos),
			ImportanceDistribution: make(map[int]int),
			CategoryDistribution:   make(map[string]int),
		},
		Aims: models.AimStats{
			Total:                len(aims),
			CategoryDistribution: make(map[string]int),
		},
		Tomatoes:  models.TomatoStats{Total: len(records)},
		Timestamp: time.Now(),
	}

	for _, todo := range todos {
		if todo.Completed() {
			stats.Todos.Completed++
		} else {
			stats.Todos.Incomplete++
		}
		stats.Todos.ImportanceDistribution[todo.Importance()]++
		stats.Todos.CategoryDistribution[category(todo.Category())]++
	}

	for _, aim := range aims {
		if aim.Progress() >= 100 {
			stats.Aims.Completed++
		} else {
			stats.Aims.InProgress++
		}
		stats.Aims.CategoryDistribution[category(aim.Category())]++
	}

	totalMinutes := 0
	for _, record := range records {
		totalMinutes += record.Minutes()
	}
	stats.Tomatoes.TotalMinutes = totalMinutes
	if len(records) > 0 {
		stats.Tomatoes.AverageDuration = int(math.Round(float64(totalMinutes) / float64(len(records))))
	}

	return stats, nil
}

func category(c string) string {
	if c == "" {
		return "uncategorized"
	}
	return c
}
