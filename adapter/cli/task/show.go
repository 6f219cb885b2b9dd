package task

import (
	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Long: `Display one task. The ID may be the short prefix shown by "task list".

Examples:
  checklist task show 550e8400
  checklist task show 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"get", "view"},
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

		t, err := app.Engine.Get(cmd.Context(), app.CurrentUserID, taskID)
		if err != nil {
			return cli.Explain("get task", err)
		}

		newRenderer(cmd.OutOrStdout()).details(t)
		return nil
	},
}
