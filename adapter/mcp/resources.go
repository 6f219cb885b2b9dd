package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose the owner's tasks.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	tools := &taskTools{app: deps.App}
	views := []struct {
		uri         string
		name        string
		description string
		filter      task.Filter
	}{
		{"checklist://tasks", "Tasks", "All tasks for the current owner, newest first", task.FilterAll},
		{"checklist://tasks/pending", "Pending tasks", "Tasks not yet completed", task.FilterPending},
		{"checklist://tasks/completed", "Completed tasks", "Tasks already completed", task.FilterCompleted},
	}

	for _, view := range views {
		filter := view.filter
		srv.Resource(view.uri).
			Name(view.name).
			Description(view.description).
			MimeType("application/json").
			Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
				return tools.resource(ctx, uri, filter)
			})
	}

	return nil
}

func (t *taskTools) resource(ctx context.Context, uri string, filter task.Filter) (*mcp.ResourceContent, error) {
	list, err := t.list(ctx, taskListInput{Filter: filter.String()})
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
