package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/checklist/internal/mcp"
	"github.com/spf13/cobra"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the task tools over MCP (streamable HTTP) for the configured owner.

Set MCP_AUTH_TOKEN to require a bearer token.

Examples:
  checklist mcp serve
  checklist mcp serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if app.Config == nil {
			return errors.New("mcp serve requires configuration")
		}

		cfg := *app.Config
		if addr != "" {
			cfg.MCPAddr = addr
		}

		err = mcpinternal.Serve(cmd.Context(), &cfg, app, cli.Logger())
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to MCP_ADDR)")
}
