package task

import (
	"errors"
	"fmt"
)

// Error kinds every engine operation resolves to. Callers match with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrTaskNotFound     = errors.New("task not found")
	ErrStoreUnavailable = errors.New("task store unavailable")
)

var (
	ErrEmptyTitle    = fmt.Errorf("%w: task title cannot be empty", ErrInvalidInput)
	ErrUnknownFilter = fmt.Errorf("%w: unknown filter", ErrInvalidInput)
	// ErrDuplicateTask means an insert reused an id the store has already seen.
	ErrDuplicateTask = errors.New("task id already used")
)

// Unavailable wraps a backend failure so it matches ErrStoreUnavailable
// while keeping the cause inspectable.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
