package commands

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/google/uuid"
)

// UpdateTaskCommand replaces all mutable fields of a task at once.
type UpdateTaskCommand struct {
	TaskID      uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Completed   bool
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo task.Repository
	events   *sharedApplication.EventDispatcher
	now      Clock
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, events *sharedApplication.EventDispatcher) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo: taskRepo,
		events:   events,
		now:      systemClock,
	}
}

// WithClock replaces the update clock.
func (h *UpdateTaskHandler) WithClock(clock Clock) *UpdateTaskHandler {
	h.now = clock
	return h
}

// Handle executes the UpdateTaskCommand. The title is checked before the
// store is touched, and the three fields go to the store in a single Replace.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*task.Task, error) {
	if _, err := task.ValidateTitle(cmd.Title); err != nil {
		return nil, err
	}

	t, err := task.FindOwned(ctx, h.taskRepo, cmd.OwnerID, cmd.TaskID)
	if err != nil {
		return nil, err
	}

	if err := t.Apply(task.Fields{
		Title:       cmd.Title,
		Description: cmd.Description,
		Completed:   cmd.Completed,
		UpdatedAt:   h.now(),
	}); err != nil {
		return nil, err
	}

	if err := h.taskRepo.Replace(ctx, t.ID(), t.Fields()); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, cmd.OwnerID, t)

	return t, nil
}
