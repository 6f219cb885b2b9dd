package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Repository is the task store port. Implementations report absence with
// ErrTaskNotFound and every other backend failure as ErrStoreUnavailable.
type Repository interface {
	// Insert persists a new task and returns its id.
	Insert(ctx context.Context, task *Task) (uuid.UUID, error)
	// FindByOwner returns every task of ownerID in no particular order.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// Replace overwrites the mutable fields of an existing task in one step.
	Replace(ctx context.Context, id uuid.UUID, fields Fields) error
	// Remove deletes the task if present. Removing an absent id is not an error.
	Remove(ctx context.Context, id uuid.UUID) error
}

// FindOwned loads id on behalf of ownerID. A task owned by someone else is
// reported exactly like a missing one so its existence is never confirmed.
func FindOwned(ctx context.Context, repo Repository, ownerID, id uuid.UUID) (*Task, error) {
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !t.OwnedBy(ownerID) {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// IsNotFound reports whether err means the task is absent for the caller.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}
