package application

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/checklist/internal/shared/domain"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// EventDispatcher publishes an aggregate's pending events once its change
// has been stored. Publishing is best effort: failures are logged and the
// caller's operation still succeeds.
type EventDispatcher struct {
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewEventDispatcher creates a dispatcher. A nil publisher drops events.
func NewEventDispatcher(publisher eventbus.Publisher, logger *slog.Logger) *EventDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return &EventDispatcher{publisher: publisher, logger: logger}
}

// Dispatch stamps metadata on the aggregate's events, publishes them and
// clears them from the aggregate.
func (d *EventDispatcher) Dispatch(ctx context.Context, ownerID uuid.UUID, aggregate domain.AggregateRoot) {
	events := aggregate.DomainEvents()
	if len(events) == 0 {
		return
	}
	ApplyEventMetadata(events, NewEventMetadata(ctx, ownerID))

	for _, event := range events {
		if err := eventbus.PublishDomainEvent(ctx, d.publisher, event); err != nil {
			d.logger.WarnContext(ctx, "failed to publish domain event",
				"routing_key", event.RoutingKey(),
				"aggregate_id", event.AggregateID(),
				"error", err,
			)
		}
	}
	aggregate.ClearDomainEvents()
}
