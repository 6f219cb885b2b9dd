package task

import (
	"fmt"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task",
	Long: `Delete a task for good. Deleting a task that is already gone is not an error.

Examples:
  checklist task delete 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"rm", "remove"},
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

		result, err := app.Engine.Delete(cmd.Context(), app.CurrentUserID, taskID)
		if err != nil {
			return cli.Explain("delete task", err)
		}

		if result.AlreadyAbsent {
			fmt.Fprintf(cmd.OutOrStdout(), "Task already deleted: %s\n", taskID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", taskID)
		return nil
	},
}
