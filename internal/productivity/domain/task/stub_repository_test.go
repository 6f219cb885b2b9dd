package task_test

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

type stubRepository struct {
	tasks map[uuid.UUID]*task.Task
}

func (s *stubRepository) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	s.tasks[t.ID()] = t
	return t.ID(), nil
}

func (s *stubRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	var out []*task.Task
	for _, t := range s.tasks {
		if t.OwnedBy(ownerID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}

func (s *stubRepository) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	return nil
}

func (s *stubRepository) Remove(ctx context.Context, id uuid.UUID) error {
	delete(s.tasks, id)
	return nil
}
