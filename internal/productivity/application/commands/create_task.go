package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo task.Repository
	events   *sharedApplication.EventDispatcher
	now      Clock
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, events *sharedApplication.EventDispatcher) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo: taskRepo,
		events:   events,
		now:      systemClock,
	}
}

// WithClock replaces the creation clock.
func (h *CreateTaskHandler) WithClock(clock Clock) *CreateTaskHandler {
	h.now = clock
	return h
}

// Handle validates the command and inserts the new task.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*task.Task, error) {
	t, err := task.NewTask(cmd.OwnerID, cmd.Title, cmd.Description, h.now())
	if err != nil {
		return nil, err
	}

	if _, err := h.taskRepo.Insert(ctx, t); err != nil {
		// A fresh uuid colliding means the store is misbehaving, not the caller.
		if errors.Is(err, task.ErrDuplicateTask) {
			return nil, task.Unavailable(err)
		}
		return nil, err
	}

	h.events.Dispatch(ctx, cmd.OwnerID, t)

	return t, nil
}
