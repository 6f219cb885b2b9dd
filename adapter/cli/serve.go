package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/felixgeelhaar/checklist/adapter/api"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task API over HTTP",
	Long: `Run the REST API until interrupted.

Requests must carry the owner in the X-Owner-ID header, as set by the
authenticating proxy in front of the server.

Examples:
  checklist serve
  checklist serve --addr :8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := RequireApp()
		if err != nil {
			return err
		}

		serverCfg := api.DefaultServerConfig()
		if a.Config != nil && a.Config.APIAddr != "" {
			serverCfg.Addr = a.Config.APIAddr
		}
		if cmd.Flags().Changed("addr") {
			serverCfg.Addr = serveAddr
		}

		server := api.NewServer(serverCfg, api.NewTaskHandler(a.Engine, Logger()), a.Health, Logger())
		return runServer(cmd.Context(), server)
	},
}

func runServer(ctx context.Context, server *api.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides API_ADDR)")
}
