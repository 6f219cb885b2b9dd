package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/checklist/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

type testAggregate struct {
	domain.BaseAggregateRoot
}

func newTestAggregate(events int) *testAggregate {
	agg := &testAggregate{BaseAggregateRoot: domain.NewBaseAggregateRoot(time.Now())}
	for i := 0; i < events; i++ {
		agg.AddDomainEvent(&testEvent{BaseEvent: domain.NewBaseEvent(agg.ID(), "Test", "checklist.test.happened")})
	}
	return agg
}

func TestEventDispatcher_PublishesAndClears(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, "checklist.test.happened", mock.Anything).Return(nil).Twice()
	ownerID := uuid.New()
	agg := newTestAggregate(2)

	NewEventDispatcher(publisher, nil).Dispatch(context.Background(), ownerID, agg)

	publisher.AssertExpectations(t)
	assert.Empty(t, agg.DomainEvents())
}

func TestEventDispatcher_StampsOwner(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ownerID := uuid.New()
	agg := newTestAggregate(1)
	event := agg.DomainEvents()[0]

	NewEventDispatcher(publisher, nil).Dispatch(context.Background(), ownerID, agg)

	assert.Equal(t, ownerID, event.Metadata().OwnerID)
	require.NotEqual(t, uuid.Nil, event.Metadata().CorrelationID)
}

func TestEventDispatcher_PublishFailureIsSwallowed(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	agg := newTestAggregate(1)

	assert.NotPanics(t, func() {
		NewEventDispatcher(publisher, nil).Dispatch(context.Background(), uuid.New(), agg)
	})
	assert.Empty(t, agg.DomainEvents())
}

func TestEventDispatcher_NilPublisher(t *testing.T) {
	agg := newTestAggregate(1)

	NewEventDispatcher(nil, nil).Dispatch(context.Background(), uuid.New(), agg)

	assert.Empty(t, agg.DomainEvents())
}
