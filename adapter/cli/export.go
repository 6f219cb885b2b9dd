package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/security"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportOutput string
	exportFilter string
)

// exportedTask is the on-disk shape of a task in an export.
type exportedTask struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

type exportDocument struct {
	Owner      uuid.UUID      `json:"owner" yaml:"owner"`
	Filter     string         `json:"filter" yaml:"filter"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Tasks      []exportedTask `json:"tasks" yaml:"tasks"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as JSON or YAML",
	Long: `Write your tasks, newest first, to stdout or a file.

Examples:
  checklist export                        # JSON to stdout
  checklist export --format yaml -o tasks.yaml
  checklist export --filter pending`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		list, err := app.Engine.List(cmd.Context(), app.CurrentUserID, exportFilter)
		if err != nil {
			return Explain("export tasks", err)
		}

		doc := exportDocument{
			Owner:      app.CurrentUserID,
			Filter:     list.Filter.String(),
			ExportedAt: time.Now().UTC(),
			Tasks:      make([]exportedTask, 0, len(list.Tasks)),
		}
		for _, t := range list.Tasks {
			doc.Tasks = append(doc.Tasks, exportedTask{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Completed:   t.Completed,
				CreatedAt:   t.CreatedAt,
				UpdatedAt:   t.UpdatedAt,
			})
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := security.SafeCreate(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := writeExport(out, exportFormat, doc); err != nil {
			return err
		}
		if exportOutput != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(doc.Tasks), exportOutput)
		}
		return nil
	},
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
	}
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportFilter, "filter", "f", "all", "filter by status (all, pending, completed)")

	rootCmd.AddCommand(exportCmd)
}
