package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
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
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockTaskRepo) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func storedTask(ownerID uuid.UUID, title string, completed bool, age time.Duration) *task.Task {
	return task.Rehydrate(task.Snapshot{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     title,
		Completed: completed,
		CreatedAt: base.Add(-age),
		UpdatedAt: base.Add(-age),
	})
}
