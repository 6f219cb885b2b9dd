package task

import (
	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/spf13/cobra"
)

var filter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List your tasks, newest first.

Filter Options:
  --filter  all, pending or completed (default all)

Examples:
  checklist task list
  checklist task list --filter pending
  checklist task ls -f completed`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		list, err := app.Engine.List(cmd.Context(), app.CurrentUserID, filter)
		if err != nil {
			return cli.Explain("list tasks", err)
		}

		newRenderer(cmd.OutOrStdout()).list(list)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&filter, "filter", "f", "all", "filter by status (all, pending, completed)")
}
