package eventbus

import (
	"context"
	"log/slog"
)

// ActivityLog records every task event as a structured log line.
type ActivityLog struct {
	logger *slog.Logger
}

// NewActivityLog creates the activity-log subscriber.
func NewActivityLog(logger *slog.Logger) *ActivityLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityLog{logger: logger}
}

func (a *ActivityLog) EventTypes() []string {
	return []string{AllEvents}
}

func (a *ActivityLog) Handle(ctx context.Context, event *Envelope) error {
	a.logger.InfoContext(ctx, "task activity",
		"routing_key", event.RoutingKey,
		"task_id", event.AggregateID,
		"owner_id", event.Metadata.OwnerID,
		"event_id", event.EventID,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
