package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
)

var errNotInitialized = errors.New("application not initialized - task store required")

// Explain turns engine errors into messages fit for a terminal.
func Explain(action string, err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return fmt.Errorf("failed to %s: task not found", action)
	case errors.Is(err, task.ErrStoreUnavailable):
		return fmt.Errorf("failed to %s: task store unavailable, try again later: %w", action, err)
	default:
		return fmt.Errorf("failed to %s: %w", action, err)
	}
}
