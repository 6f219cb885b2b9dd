package application

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/checklist/internal/shared/domain"
	"github.com/felixgeelhaar/checklist/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	domain.BaseEvent
}

// plainEvent has no SetMetadata method.
type plainEvent struct {
	id uuid.UUID
}

func (e plainEvent) EventID() uuid.UUID             { return e.id }
func (e plainEvent) AggregateID() uuid.UUID         { return e.id }
func (e plainEvent) AggregateType() string          { return "Plain" }
func (e plainEvent) RoutingKey() string             { return "plain.event" }
func (e plainEvent) OccurredAt() time.Time          { return time.Time{} }
func (e plainEvent) Metadata() domain.EventMetadata { return domain.EventMetadata{} }

func TestNewEventMetadata(t *testing.T) {
	t.Run("generates a correlation id when context has none", func(t *testing.T) {
		ownerID := uuid.New()

		first := NewEventMetadata(context.Background(), ownerID)
		second := NewEventMetadata(context.Background(), ownerID)

		assert.Equal(t, ownerID, first.OwnerID)
		assert.NotEqual(t, uuid.Nil, first.CorrelationID)
		assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
	})

	t.Run("reuses the correlation id from context", func(t *testing.T) {
		correlationID := uuid.New()
		ctx := observability.WithCorrelationID(context.Background(), correlationID.String())

		metadata := NewEventMetadata(ctx, uuid.New())

		assert.Equal(t, correlationID, metadata.CorrelationID)
	})

	t.Run("ignores a non-uuid correlation id", func(t *testing.T) {
		ctx := observability.WithCorrelationID(context.Background(), "req-42")

		metadata := NewEventMetadata(ctx, uuid.New())

		assert.NotEqual(t, uuid.Nil, metadata.CorrelationID)
	})
}

func TestApplyEventMetadata(t *testing.T) {
	ownerID := uuid.New()
	withSetter := &testEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Test", "test.event")}
	without := plainEvent{id: uuid.New()}

	metadata := NewEventMetadata(context.Background(), ownerID)
	ApplyEventMetadata([]domain.DomainEvent{withSetter, without}, metadata)

	assert.Equal(t, ownerID, withSetter.Metadata().OwnerID)
	assert.Equal(t, uuid.Nil, without.Metadata().OwnerID)
}
