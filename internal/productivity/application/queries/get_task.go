package queries

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// GetTaskQuery contains the parameters for getting a single task.
type GetTaskQuery struct {
	TaskID  uuid.UUID
	OwnerID uuid.UUID
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the GetTaskQuery.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*TaskDTO, error) {
	t, err := task.FindOwned(ctx, h.taskRepo, query.OwnerID, query.TaskID)
	if err != nil {
		return nil, err
	}

	dto := ToTaskDTO(t)
	return &dto, nil
}
