package task

import (
	"fmt"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	markCompleted     bool
	markPending       bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Change the title, description or status of a task. Fields without a
flag keep their current value; all three are saved together.

Examples:
  checklist task update 550e8400 --title "Write final report"
  checklist task update 550e8400 --description "due Friday" --completed
  checklist task update 550e8400 --pending`,
	Aliases: []string{"edit", "modify"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if !flags.Changed("title") && !flags.Changed("description") && !markCompleted && !markPending {
			return fmt.Errorf("no updates provided - use --title, --description, --completed or --pending")
		}
		if markCompleted && markPending {
			return fmt.Errorf("--completed and --pending are mutually exclusive")
		}

		ctx := cmd.Context()
		taskID, err := resolveTaskID(ctx, app, args[0])
		if err != nil {
			return err
		}

		current, err := app.Engine.Get(ctx, app.CurrentUserID, taskID)
		if err != nil {
			return cli.Explain("update task", err)
		}

		title, desc, completed := current.Title, current.Description, current.Completed
		if flags.Changed("title") {
			title = updateTitle
		}
		if flags.Changed("description") {
			desc = updateDescription
		}
		if markCompleted {
			completed = true
		}
		if markPending {
			completed = false
		}

		updated, err := app.Engine.Update(ctx, app.CurrentUserID, taskID, title, desc, completed)
		if err != nil {
			return cli.Explain("update task", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s\n", updated.ID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title for the task")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description for the task")
	updateCmd.Flags().BoolVar(&markCompleted, "completed", false, "mark the task completed")
	updateCmd.Flags().BoolVar(&markPending, "pending", false, "mark the task pending")
}
