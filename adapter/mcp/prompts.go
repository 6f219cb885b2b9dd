package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common checklist workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("review_tasks").
		Description("Walk through pending tasks and decide what to finish, edit or drop.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Task Review",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me clean up my checklist. Please:

1. Read my pending tasks from the checklist://tasks/pending resource
2. Point out tasks that look done, duplicated or unclear

Then, after I confirm each change:
- Use task.toggle for tasks I have finished
- Use task.update to sharpen vague titles or add a description
- Use task.delete for tasks I no longer need`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("quick_capture").
		Description("Turn a rough note into one or more tasks.").
		Argument("note", "What you want to capture", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			note := args["note"]
			if note == "" {
				note = "(ask me what I want to capture)"
			}
			return &mcp.PromptResult{
				Description: "Quick Capture",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: fmt.Sprintf(`Split this note into short, actionable tasks and create each one with task.create.
Put any extra detail into the description rather than the title.

Note: %s`, note),
						},
					},
				},
			}, nil
		})

	return nil
}
