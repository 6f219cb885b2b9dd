package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	domain "github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// resolveTaskID accepts a full task id or the unique prefix shown by
// "task list".
func resolveTaskID(ctx context.Context, app *cli.App, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	prefix := strings.ToLower(strings.TrimSpace(arg))
	if len(prefix) < 4 {
		return uuid.Nil, fmt.Errorf("invalid task ID %q: use at least 4 characters", arg)
	}

	list, err := app.Engine.List(ctx, app.CurrentUserID, domain.FilterAll.String())
	if err != nil {
		return uuid.Nil, cli.Explain("look up task", err)
	}

	var matches []uuid.UUID
	for _, t := range list.Tasks {
		if strings.HasPrefix(t.ID.String(), prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		// Prefixes only match live tasks, so a deleted one cannot be found this way.
		return uuid.Nil, fmt.Errorf("no current task matches %q; it may already be deleted (pass the full task ID to delete idempotently)", arg)
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, fmt.Errorf("task ID %q is ambiguous (%d matches)", arg, len(matches))
	}
}
