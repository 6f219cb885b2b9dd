package queries

import (
	"time"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is the read model handed to adapters. The owner is left out
// because callers already know who they are.
type TaskDTO struct {
	ID          uuid.UUID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToTaskDTO converts a task aggregate to its read model.
func ToTaskDTO(t *task.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID(),
		Title:       t.Title(),
		Description: t.Description(),
		Completed:   t.IsCompleted(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func toTaskDTOs(tasks []*task.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
