// Package application exposes the task engine: every task operation, scoped
// to the calling owner, behind one facade shared by the CLI, the REST API and
// the MCP server.
package application

import (
	"context"

	"github.com/felixgeelhaar/checklist/internal/productivity/application/commands"
	"github.com/felixgeelhaar/checklist/internal/productivity/application/queries"
	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/google/uuid"
)

// Engine bundles the task command and query handlers.
//
// The engine holds no task state of its own and takes no locks; concurrent
// calls are serialised per record by the store only.
type Engine struct {
	createTask *commands.CreateTaskHandler
	toggleTask *commands.ToggleTaskHandler
	updateTask *commands.UpdateTaskHandler
	deleteTask *commands.DeleteTaskHandler
	listTasks  *queries.ListTasksHandler
	getTask    *queries.GetTaskHandler
}

// NewEngine wires the handlers around one store and one event dispatcher.
func NewEngine(repo task.Repository, events *sharedApplication.EventDispatcher) *Engine {
	if events == nil {
		events = sharedApplication.NewEventDispatcher(nil, nil)
	}
	return &Engine{
		createTask: commands.NewCreateTaskHandler(repo, events),
		toggleTask: commands.NewToggleTaskHandler(repo, events),
		updateTask: commands.NewUpdateTaskHandler(repo, events),
		deleteTask: commands.NewDeleteTaskHandler(repo, events),
		listTasks:  queries.NewListTasksHandler(repo),
		getTask:    queries.NewGetTaskHandler(repo),
	}
}

// WithClock sets the clock used to stamp created and updated times.
func (e *Engine) WithClock(clock commands.Clock) *Engine {
	e.createTask.WithClock(clock)
	e.toggleTask.WithClock(clock)
	e.updateTask.WithClock(clock)
	return e
}

// Create adds a pending task for ownerID.
func (e *Engine) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (*queries.TaskDTO, error) {
	t, err := e.createTask.Handle(ctx, commands.CreateTaskCommand{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	return toDTO(t), nil
}

// List returns the owner's tasks matching filter, newest first.
// An empty filter lists everything.
func (e *Engine) List(ctx context.Context, ownerID uuid.UUID, filter string) (*queries.TaskList, error) {
	f, err := task.ParseFilter(filter)
	if err != nil {
		return nil, err
	}
	return e.listTasks.Handle(ctx, queries.ListTasksQuery{OwnerID: ownerID, Filter: f})
}

// Get returns one of the owner's tasks.
func (e *Engine) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*queries.TaskDTO, error) {
	return e.getTask.Handle(ctx, queries.GetTaskQuery{TaskID: taskID, OwnerID: ownerID})
}

// Toggle flips the completion flag of one of the owner's tasks.
func (e *Engine) Toggle(ctx context.Context, ownerID, taskID uuid.UUID) (*queries.TaskDTO, error) {
	t, err := e.toggleTask.Handle(ctx, commands.ToggleTaskCommand{TaskID: taskID, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	return toDTO(t), nil
}

// Update replaces title, description and completed in a single store write.
func (e *Engine) Update(ctx context.Context, ownerID, taskID uuid.UUID, title, description string, completed bool) (*queries.TaskDTO, error) {
	t, err := e.updateTask.Handle(ctx, commands.UpdateTaskCommand{
		TaskID:      taskID,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Completed:   completed,
	})
	if err != nil {
		return nil, err
	}
	return toDTO(t), nil
}

// Delete removes one of the owner's tasks. Deleting a task that is already
// gone succeeds.
func (e *Engine) Delete(ctx context.Context, ownerID, taskID uuid.UUID) (*commands.DeleteTaskResult, error) {
	return e.deleteTask.Handle(ctx, commands.DeleteTaskCommand{TaskID: taskID, OwnerID: ownerID})
}

func toDTO(t *task.Task) *queries.TaskDTO {
	dto := queries.ToTaskDTO(t)
	return &dto
}
