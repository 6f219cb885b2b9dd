package task

import (
	"fmt"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [task-id]",
	Short: "Flip a task between pending and completed",
	Long: `Mark a pending task completed, or a completed task pending again.

Examples:
  checklist task toggle 550e8400
  checklist task done 550e8400`,
	Aliases: []string{"done", "check"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		taskID, err := resolveTaskID(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		t, err := app.Engine.Toggle(cmd.Context(), app.CurrentUserID, taskID)
		if err != nil {
			return cli.Explain("toggle task", err)
		}

		r := newRenderer(cmd.OutOrStdout())
		fmt.Fprintf(r.out, "%s %s (%s)\n", r.statusIcon(t.Completed), t.Title, r.status(t.Completed))
		return nil
	},
}
