package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTaskRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *mockTaskRepo) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockTaskRepo) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockPublisher records published routing keys.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

var fixedNow = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newDispatcher(publisher *mockPublisher) *sharedApplication.EventDispatcher {
	if publisher == nil {
		return sharedApplication.NewEventDispatcher(nil, nil)
	}
	return sharedApplication.NewEventDispatcher(publisher, nil)
}

func existingTask(ownerID uuid.UUID, title string) *task.Task {
	return task.Rehydrate(task.Snapshot{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
	})
}
