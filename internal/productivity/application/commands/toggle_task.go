package commands

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/google/uuid"
)

// ToggleTaskCommand flips the completion flag of one of the owner's tasks.
type ToggleTaskCommand struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
}

// ToggleTaskHandler handles the ToggleTaskCommand.
type ToggleTaskHandler struct {
	taskRepo task.Repository
	events   *sharedApplication.EventDispatcher
	now      Clock
}

// NewToggleTaskHandler creates a new ToggleTaskHandler.
func NewToggleTaskHandler(taskRepo task.Repository, events *sharedApplication.EventDispatcher) *ToggleTaskHandler {
	return &ToggleTaskHandler{
		taskRepo: taskRepo,
		events:   events,
		now:      systemClock,
	}
}

// WithClock replaces the update clock.
func (h *ToggleTaskHandler) WithClock(clock Clock) *ToggleTaskHandler {
	h.now = clock
	return h
}

// Handle executes the ToggleTaskCommand.
func (h *ToggleTaskHandler) Handle(ctx context.Context, cmd ToggleTaskCommand) (*task.Task, error) {
	t, err := task.FindOwned(ctx, h.taskRepo, cmd.OwnerID, cmd.TaskID)
	if err != nil {
		return nil, err
	}

	t.Toggle(h.now())

	if err := h.taskRepo.Replace(ctx, t.ID(), t.Fields()); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, cmd.OwnerID, t)

	return t, nil
}
