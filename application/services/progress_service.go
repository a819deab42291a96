package services

import (
	"context"
	"math"
	"time"

	"tomato-backend/application/ports"
	"tomato-backend/domain/core/valueobjects"
	"tomato-backend/domain/events"
	"tomato-backend/pkg/observability"
	pkgerrors "tomato-backend/pkg/errors"

	"go.uber.org/zap"
)

// ProgressResult carries the outcome of a progress recomputation
type ProgressResult struct {
	Progress     int `json:"progress"`
	TotalMinutes int `json:"totalMinutes"`
}

// ProgressService computes aim progress from the pomodoro time logged
// against the aim's linked todos, and owns the manual override and linking
// operations that share the same normalization rules.
type ProgressService struct {
	aimRepo    ports.AimRepository
	tomatoRepo ports.TomatoRepository
	eventBus   ports.EventBus
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	aimRepo ports.AimRepository,
	tomatoRepo ports.TomatoRepository,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		aimRepo:    aimRepo,
		tomatoRepo: tomatoRepo,
		eventBus:   eventBus,
		metrics:    metrics,
		logger:     logger,
	}
}

// Recompute derives an aim's progress percentage from the tomato records of
// its linked todos and persists it back onto the aim document.
//
// Records are queried one todo ID at a time; a failed query contributes zero
// minutes for that ID and never aborts the whole computation. An aim with no
// linked todos keeps its stored progress and nothing is written. The only
// write is the aim's progress field, and it happens after all reads
// complete, so a failure anywhere leaves the stored value untouched.
func (s *ProgressService) Recompute(ctx context.Context, ownerID, aimID string) (*ProgressResult, error) {
	start := time.Now()

	aim, err := s.aimRepo.GetByID(ctx, ownerID, aimID)
	if err != nil {
		return nil, err
	}

	related := aim.RelatedTodos()
	if related.IsEmpty() {
		s.logger.Debug("Aim has no linked todos, keeping stored progress",
			zap.String("aimID", aimID),
			zap.Int("progress", aim.Progress()),
		)
		return &ProgressResult{Progress: aim.Progress(), TotalMinutes: 0}, nil
	}

	totalMinutes := 0
	for _, todoID := range related.Values() {
		records, err := s.tomatoRepo.GetByTodoID(ctx, ownerID, todoID)
		if err != nil {
			// Best-effort sum: one bad ID must not sink the rest.
			s.logger.Warn("Tomato record query failed for linked todo",
				zap.String("aimID", aimID),
				zap.String("todoID", todoID),
				zap.Error(err),
			)
			s.metrics.RecordPartialQueryFailure(ctx)
			continue
		}
		for _, record := range records {
			totalMinutes += record.Minutes()
		}
	}

	target := aim.TargetMinutes()
	if target < 1 {
		target = 1
	}

	progress := int(math.Round(float64(totalMinutes) / float64(target) * 100))
	if progress > 100 {
		progress = 100
	}

	if err := s.aimRepo.UpdateProgress(ctx, ownerID, aimID, progress); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewAimProgressRecomputed(aimID, ownerID, progress, totalMinutes, time.Now()))
	s.metrics.RecordRecompute(ctx, time.Since(start))

	s.logger.Info("Recomputed aim progress",
		zap.String("aimID", aimID),
		zap.Int("linkedTodos", related.Len()),
		zap.Int("totalMinutes", totalMinutes),
		zap.Int("progress", progress),
	)

	return &ProgressResult{Progress: progress, TotalMinutes: totalMinutes}, nil
}

// SetProgress overwrites an aim's progress directly, bypassing the
// aggregator. The value is authoritative until the next Recompute call.
func (s *ProgressService) SetProgress(ctx context.Context, ownerID, aimID string, percent int) error {
	if percent < 0 || percent > 100 {
		return pkgerrors.NewValidationError("progress must be between 0 and 100")
	}

	if err := s.aimRepo.UpdateProgress(ctx, ownerID, aimID, percent); err != nil {
		return err
	}

	s.logger.Info("Aim progress set manually",
		zap.String("aimID", aimID),
		zap.Int("progress", percent),
	)

	return nil
}

// LinkTodos replaces an aim's related-todo list wholesale with the
// normalized, deduplicated input and returns the stored list. It does not
// trigger a recomputation; callers invoke Recompute when they want progress
// to reflect the new linkage.
func (s *ProgressService) LinkTodos(ctx context.Context, ownerID, aimID string, rawTodoIDs interface{}) (valueobjects.RelatedTodoIDs, error) {
	related := valueobjects.NormalizeRelatedTodoIDs(rawTodoIDs)

	if err := s.aimRepo.UpdateRelatedTodos(ctx, ownerID, aimID, related); err != nil {
		return valueobjects.RelatedTodoIDs{}, err
	}

	s.publish(ctx, events.NewAimTodosLinked(aimID, ownerID, related.Values(), time.Now()))

	s.logger.Info("Replaced aim related todos",
		zap.String("aimID", aimID),
		zap.Strings("todoIDs", related.Values()),
	)

	return related, nil
}

// publish sends a domain event best-effort; event delivery never fails the
// operation that raised it.
func (s *ProgressService) publish(ctx context.Context, event events.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err),
		)
	}
}
