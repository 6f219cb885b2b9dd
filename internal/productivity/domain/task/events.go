package task

import (
	"github.com/felixgeelhaar/checklist/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated = "checklist.task.created"
	RoutingKeyToggled = "checklist.task.toggled"
	RoutingKeyUpdated = "checklist.task.updated"
	RoutingKeyDeleted = "checklist.task.deleted"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

func NewTaskCreated(taskID, ownerID uuid.UUID, title, description string) *TaskCreated {
	return &TaskCreated{
		BaseEvent:   domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	}
}

// TaskToggled is emitted when a task's completion flag flips.
type TaskToggled struct {
	domain.BaseEvent
	Completed bool `json:"completed"`
}

func NewTaskToggled(taskID uuid.UUID, completed bool) *TaskToggled {
	return &TaskToggled{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyToggled),
		Completed: completed,
	}
}

// TaskUpdated carries the full replaced field set.
type TaskUpdated struct {
	domain.BaseEvent
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func NewTaskUpdated(taskID uuid.UUID, title, description string, completed bool) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent:   domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Title:       title,
		Description: description,
		Completed:   completed,
	}
}

// TaskDeleted is emitted when a task is removed.
type TaskDeleted struct {
	domain.BaseEvent
}

func NewTaskDeleted(taskID uuid.UUID) *TaskDeleted {
	return &TaskDeleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyDeleted),
	}
}
