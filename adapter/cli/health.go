package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/checklist/pkg/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the task store and event transport are reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if app.Health == nil {
			fmt.Fprintln(out, "ok")
			return nil
		}

		report := app.Health.GetOverallHealth(cmd.Context())
		for _, check := range report.Checks {
			line := fmt.Sprintf("%-8s %s", check.Name, check.Status)
			if check.Message != "" {
				line += " (" + check.Message + ")"
			}
			healthColor(check.Status).Fprintln(out, line)
		}
		if report.Status == observability.HealthStatusUnhealthy {
			return fmt.Errorf("unhealthy")
		}
		fmt.Fprintln(out, report.Status)
		return nil
	},
}

func healthColor(status observability.HealthStatus) *color.Color {
	switch status {
	case observability.HealthStatusHealthy:
		return color.New(color.FgGreen)
	case observability.HealthStatusDegraded:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
