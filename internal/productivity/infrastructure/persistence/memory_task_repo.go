package persistence

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// MemoryTaskRepository keeps tasks in process memory. It stores snapshots,
// so callers never share state with the store.
type MemoryTaskRepository struct {
	mu      sync.RWMutex
	tasks   map[uuid.UUID]task.Snapshot
	retired map[uuid.UUID]struct{}
}

// NewMemoryTaskRepository creates an empty in-memory task store.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks:   make(map[uuid.UUID]task.Snapshot),
		retired: make(map[uuid.UUID]struct{}),
	}
}

// Insert stores a new task. Ids of removed tasks are never accepted again.
func (r *MemoryTaskRepository) Insert(ctx context.Context, t *task.Task) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, task.Unavailable(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := t.ID()
	if _, ok := r.tasks[id]; ok {
		return uuid.Nil, task.ErrDuplicateTask
	}
	if _, ok := r.retired[id]; ok {
		return uuid.Nil, task.ErrDuplicateTask
	}
	r.tasks[id] = t.Snapshot()
	return id, nil
}

func (r *MemoryTaskRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, task.Unavailable(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*task.Task, 0)
	for _, snap := range r.tasks {
		if snap.OwnerID == ownerID {
			tasks = append(tasks, task.Rehydrate(snap))
		}
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, task.Unavailable(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snap, ok := r.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return task.Rehydrate(snap), nil
}

func (r *MemoryTaskRepository) Replace(ctx context.Context, id uuid.UUID, fields task.Fields) error {
	if err := ctx.Err(); err != nil {
		return task.Unavailable(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap, ok := r.tasks[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	snap.Title = fields.Title
	snap.Description = fields.Description
	snap.Completed = fields.Completed
	snap.UpdatedAt = fields.UpdatedAt
	r.tasks[id] = snap
	return nil
}

func (r *MemoryTaskRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return task.Unavailable(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, id)
	r.retired[id] = struct{}{}
	return nil
}

// Len returns the number of stored tasks.
func (r *MemoryTaskRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
