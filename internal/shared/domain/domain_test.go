package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/checklist/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEvent struct {
	domain.BaseEvent
}

func TestNewBaseEntity(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	entity := domain.NewBaseEntity(now)

	assert.NotEqual(t, uuid.Nil, entity.ID())
	assert.Equal(t, time.UTC, entity.CreatedAt().Location())
	assert.True(t, entity.CreatedAt().Equal(now))
	assert.Equal(t, entity.CreatedAt(), entity.UpdatedAt())
}

func TestBaseEntity_Touch(t *testing.T) {
	now := time.Now()
	entity := domain.NewBaseEntity(now)

	entity.Touch(now.Add(time.Minute))
	assert.True(t, entity.UpdatedAt().Equal(now.Add(time.Minute)))

	entity.Touch(now.Add(-time.Hour))
	assert.True(t, entity.UpdatedAt().Equal(entity.CreatedAt()), "updatedAt never precedes createdAt")
}

func TestRehydrateBaseAggregateRoot(t *testing.T) {
	id := uuid.New()
	created := time.Now().Add(-time.Hour)
	updated := time.Now()

	agg := domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, created, updated))

	assert.Equal(t, id, agg.ID())
	assert.True(t, agg.CreatedAt().Equal(created))
	assert.True(t, agg.UpdatedAt().Equal(updated))
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseAggregateRoot_Events(t *testing.T) {
	agg := domain.NewBaseAggregateRoot(time.Now())

	agg.AddDomainEvent(&sampleEvent{BaseEvent: domain.NewBaseEvent(agg.ID(), "Sample", "sample.created")})
	agg.AddDomainEvent(&sampleEvent{BaseEvent: domain.NewBaseEvent(agg.ID(), "Sample", "sample.updated")})

	require.Len(t, agg.DomainEvents(), 2)
	assert.Equal(t, "sample.created", agg.DomainEvents()[0].RoutingKey())

	agg.ClearDomainEvents()
	assert.Empty(t, agg.DomainEvents())
}

func TestBaseEvent_Metadata(t *testing.T) {
	aggregateID := uuid.New()
	ownerID := uuid.New()
	correlationID := uuid.New()

	event := &sampleEvent{BaseEvent: domain.NewBaseEvent(aggregateID, "Sample", "sample.created")}
	event.SetMetadata(domain.EventMetadata{CorrelationID: correlationID, OwnerID: ownerID})

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Sample", event.AggregateType())
	assert.Equal(t, ownerID, event.Metadata().OwnerID)
	assert.Equal(t, correlationID, event.Metadata().CorrelationID)
}
