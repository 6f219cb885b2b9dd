package commands

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/google/uuid"
)

// DeleteTaskCommand removes one of the owner's tasks.
type DeleteTaskCommand struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
}

// DeleteTaskResult reports whether the task was already gone.
type DeleteTaskResult struct {
	TaskID        uuid.UUID
	AlreadyAbsent bool
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo task.Repository
	events   *sharedApplication.EventDispatcher
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository, events *sharedApplication.EventDispatcher) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo: taskRepo,
		events:   events,
	}
}

// Handle executes the DeleteTaskCommand.
//
// Deleting an id that no longer exists succeeds with AlreadyAbsent set.
// Deleting another owner's task fails with task.ErrTaskNotFound.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) (*DeleteTaskResult, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if task.IsNotFound(err) || (err == nil && t == nil) {
		return &DeleteTaskResult{TaskID: cmd.TaskID, AlreadyAbsent: true}, nil
	}
	if err != nil {
		return nil, err
	}
	if !t.OwnedBy(cmd.OwnerID) {
		return nil, task.ErrTaskNotFound
	}

	t.MarkDeleted()

	if err := h.taskRepo.Remove(ctx, t.ID()); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, cmd.OwnerID, t)

	return &DeleteTaskResult{TaskID: cmd.TaskID}, nil
}
