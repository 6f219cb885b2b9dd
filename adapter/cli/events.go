package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/eventbus"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect task events",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print task events from RabbitMQ as they happen",
	Long: `Bind a private queue to the task events exchange and print every event
published until interrupted. Requires RABBITMQ_URL.

Examples:
  checklist events tail`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}
		if a.Config == nil || a.Config.RabbitMQURL == "" {
			return fmt.Errorf("events tail requires RABBITMQ_URL")
		}

		tail, err := eventbus.NewRabbitMQTail(a.Config.RabbitMQURL, Logger())
		if err != nil {
			return err
		}
		defer tail.Close()

		printer := newEventPrinter(cmd.OutOrStdout())
		if err := tail.Run(cmd.Context(), printer.Handle); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// eventPrinter writes one line per event.
type eventPrinter struct {
	out   io.Writer
	key   *color.Color
	owner *color.Color
}

func newEventPrinter(out io.Writer) *eventPrinter {
	return &eventPrinter{
		out:   out,
		key:   color.New(color.FgCyan, color.Bold),
		owner: color.New(color.FgYellow),
	}
}

func (p *eventPrinter) Handle(_ context.Context, event *eventbus.Envelope) error {
	fmt.Fprintf(p.out, "%s %s task=%s owner=%s %s\n",
		event.OccurredAt.Format("15:04:05"),
		p.key.Sprint(event.RoutingKey),
		event.AggregateID,
		p.owner.Sprint(event.Metadata.OwnerID),
		string(event.Payload),
	)
	return nil
}

func init() {
	eventsCmd.AddCommand(eventsTailCmd)
}
