package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/checklist/internal/productivity/application/queries"
	domain "github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
)

// renderer prints tasks for a terminal. Colors switch off on their own when
// the output is not a TTY.
type renderer struct {
	out     io.Writer
	done    *color.Color
	pending *color.Color
	muted   *color.Color
	heading *color.Color
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{
		out:     out,
		done:    color.New(color.FgGreen),
		pending: color.New(color.FgYellow),
		muted:   color.New(color.Faint),
		heading: color.New(color.Bold),
	}
}

func (r *renderer) statusIcon(completed bool) string {
	if completed {
		return r.done.Sprint("[x]")
	}
	return r.pending.Sprint("[ ]")
}

func (r *renderer) list(list *queries.TaskList) {
	if len(list.Tasks) == 0 {
		fmt.Fprintln(r.out, emptyMessage(list))
		return
	}

	r.heading.Fprintf(r.out, "Tasks (%d of %d, %s):\n", len(list.Tasks), list.Total, list.Filter)
	fmt.Fprintln(r.out, strings.Repeat("-", 60))
	for i := range list.Tasks {
		t := &list.Tasks[i]
		fmt.Fprintf(r.out, "%s %s\n", r.statusIcon(t.Completed), t.Title)
		fmt.Fprintf(r.out, "   ID: %s\n", r.muted.Sprint(shortID(t)))
		if t.Description != "" {
			fmt.Fprintf(r.out, "   %s\n", t.Description)
		}
	}
}

// emptyMessage tells an owner with no tasks at all apart from one whose
// tasks are all filtered out.
func emptyMessage(list *queries.TaskList) string {
	if list.Total == 0 || list.Filter == domain.FilterAll {
		return "No tasks yet. Add one with: checklist task add \"Title\""
	}
	return fmt.Sprintf("No %s tasks.", list.Filter)
}

func (r *renderer) details(t *queries.TaskDTO) {
	r.heading.Fprintf(r.out, "Task: %s\n", t.ID)
	fmt.Fprintf(r.out, "  Title:       %s\n", t.Title)
	fmt.Fprintf(r.out, "  Status:      %s\n", r.status(t.Completed))
	if t.Description != "" {
		fmt.Fprintf(r.out, "  Description: %s\n", t.Description)
	}
	fmt.Fprintf(r.out, "  Created:     %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(r.out, "  Updated:     %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

func (r *renderer) status(completed bool) string {
	if completed {
		return r.done.Sprint("completed")
	}
	return r.pending.Sprint("pending")
}

func shortID(t *queries.TaskDTO) string {
	return t.ID.String()[:8]
}
