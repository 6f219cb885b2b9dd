package task

import (
	"fmt"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/spf13/cobra"
)

var description string

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a pending task. Surrounding whitespace is trimmed from the title.

Examples:
  checklist task add "Buy milk"
  checklist task add "Write report" --description "quarterly numbers"`,
	Aliases: []string{"create", "new"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		created, err := app.Engine.Create(cmd.Context(), app.CurrentUserID, args[0], description)
		if err != nil {
			return cli.Explain("add task", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task added: %s\n", created.ID)
		fmt.Fprintf(out, "  title: %s\n", created.Title)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&description, "description", "d", "", "task description")
}
