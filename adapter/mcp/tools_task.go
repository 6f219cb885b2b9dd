package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/felixgeelhaar/checklist/internal/productivity/application/queries"
	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/mcp-go"
	"github.com/google/uuid"
)

type taskCreateInput struct {
	Title       string `json:"title" jsonschema:"required"`
	Description string `json:"description,omitempty"`
}

type taskListInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"enum=all,enum=pending,enum=completed"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required"`
}

type taskUpdateInput struct {
	TaskID      string `json:"task_id" jsonschema:"required"`
	Title       string `json:"title" jsonschema:"required"`
	Description string `json:"description,omitempty"`
	Completed   *bool  `json:"completed" jsonschema:"required"`
}

type taskOutput struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type taskListOutput struct {
	Tasks  []taskOutput `json:"tasks"`
	Filter string       `json:"filter"`
	Total  int          `json:"total"`
}

type taskDeleteOutput struct {
	TaskID        uuid.UUID `json:"task_id"`
	Deleted       bool      `json:"deleted"`
	AlreadyAbsent bool      `json:"already_absent"`
}

func toTaskOutput(dto *queries.TaskDTO) *taskOutput {
	return &taskOutput{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Completed:   dto.Completed,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
}

// taskTools acts for the configured owner only; agents never pick an owner.
type taskTools struct {
	app *cli.App
}

func registerTaskTools(srv *mcp.Server, deps ToolDependencies) error {
	tools := &taskTools{app: deps.App}

	srv.Tool("task.create").
		Description("Create a pending task. The title is trimmed and must not be blank").
		Handler(tools.create)

	srv.Tool("task.list").
		Description("List tasks newest first, optionally filtered by all, pending or completed").
		Handler(tools.list)

	srv.Tool("task.show").
		Description("Show one task").
		Handler(tools.show)

	srv.Tool("task.toggle").
		Description("Flip a task between pending and completed").
		Handler(tools.toggle)

	srv.Tool("task.update").
		Description("Replace the title, description and completion flag of a task").
		Handler(tools.update)

	srv.Tool("task.delete").
		Description("Delete a task. Deleting an already deleted task succeeds").
		Handler(tools.delete)

	return nil
}

func (t *taskTools) ready() error {
	if t.app == nil || t.app.Engine == nil {
		return errors.New("task tools require a task store")
	}
	return nil
}

func (t *taskTools) create(ctx context.Context, input taskCreateInput) (*taskOutput, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	dto, err := t.app.Engine.Create(ctx, t.app.CurrentUserID, input.Title, input.Description)
	if err != nil {
		return nil, toolError(err)
	}
	return toTaskOutput(dto), nil
}

func (t *taskTools) list(ctx context.Context, input taskListInput) (*taskListOutput, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	list, err := t.app.Engine.List(ctx, t.app.CurrentUserID, input.Filter)
	if err != nil {
		return nil, toolError(err)
	}

	out := &taskListOutput{
		Tasks:  make([]taskOutput, 0, len(list.Tasks)),
		Filter: list.Filter.String(),
		Total:  list.Total,
	}
	for i := range list.Tasks {
		out.Tasks = append(out.Tasks, *toTaskOutput(&list.Tasks[i]))
	}
	return out, nil
}

func (t *taskTools) show(ctx context.Context, input taskIDInput) (*taskOutput, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	taskID, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	dto, err := t.app.Engine.Get(ctx, t.app.CurrentUserID, taskID)
	if err != nil {
		return nil, toolError(err)
	}
	return toTaskOutput(dto), nil
}

func (t *taskTools) toggle(ctx context.Context, input taskIDInput) (*taskOutput, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	taskID, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	dto, err := t.app.Engine.Toggle(ctx, t.app.CurrentUserID, taskID)
	if err != nil {
		return nil, toolError(err)
	}
	return toTaskOutput(dto), nil
}

func (t *taskTools) update(ctx context.Context, input taskUpdateInput) (*taskOutput, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	taskID, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	if input.Completed == nil {
		return nil, errors.New("completed is required")
	}
	dto, err := t.app.Engine.Update(ctx, t.app.CurrentUserID, taskID, input.Title, input.Description, *input.Completed)
	if err != nil {
		return nil, toolError(err)
	}
	return toTaskOutput(dto), nil
}

func (t *taskTools) delete(ctx context.Context, input taskIDInput) (*taskDeleteOutput, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}
	taskID, err := parseUUID(input.TaskID)
	if err != nil {
		return nil, err
	}
	result, err := t.app.Engine.Delete(ctx, t.app.CurrentUserID, taskID)
	if err != nil {
		return nil, toolError(err)
	}
	return &taskDeleteOutput{
		TaskID:        taskID,
		Deleted:       true,
		AlreadyAbsent: result.AlreadyAbsent,
	}, nil
}

// toolError keeps store details out of agent-visible messages.
func toolError(err error) error {
	switch {
	case errors.Is(err, task.ErrStoreUnavailable):
		return task.ErrStoreUnavailable
	default:
		return err
	}
}
