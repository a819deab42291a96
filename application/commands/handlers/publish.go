package handlers

import (
	"context"

	"tomato-backend/application/ports"
	"tomato-backend/domain/events"

	"go.uber.org/zap"
)

// publishEvents delivers domain events best-effort. Event delivery failures
// are logged and never fail the command that raised them.
func publishEvents(ctx context.Context, eventBus ports.EventBus, logger *zap.Logger, domainEvents []events.DomainEvent) {
	if eventBus == nil || len(domainEvents) == 0 {
		return
	}
	if err := eventBus.PublishBatch(ctx, domainEvents); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.Int("count", len(domainEvents)),
			zap.Error(err),
		)
	}
}
