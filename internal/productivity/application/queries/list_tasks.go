package queries

import (
	"context"
	"sort"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	OwnerID uuid.UUID
	Filter  task.Filter
}

// TaskList is a filtered view of an owner's tasks, newest first.
type TaskList struct {
	Tasks  []TaskDTO
	Filter task.Filter
	// Total counts every task of the owner regardless of Filter, so an
	// empty view can be told apart from an empty list.
	Total int
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) (*TaskList, error) {
	filter := query.Filter
	if filter == "" {
		filter = task.FilterAll
	}

	tasks, err := h.taskRepo.FindByOwner(ctx, query.OwnerID)
	if err != nil {
		return nil, err
	}

	owned := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.OwnedBy(query.OwnerID) {
			owned = append(owned, t)
		}
	}
	sortNewestFirst(owned)

	return &TaskList{
		Tasks:  toTaskDTOs(filter.Apply(owned)),
		Filter: filter,
		Total:  len(owned),
	}, nil
}

func sortNewestFirst(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt().After(tasks[j].CreatedAt())
	})
}
