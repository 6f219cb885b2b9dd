package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/checklist/adapter/cli"
	"github.com/felixgeelhaar/checklist/adapter/cli/mcp"
	"github.com/felixgeelhaar/checklist/adapter/cli/task"
	"github.com/felixgeelhaar/checklist/internal/app"
	mcpinternal "github.com/felixgeelhaar/checklist/internal/mcp"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/felixgeelhaar/checklist/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.SetLogger(observability.NewLogger(observability.DefaultLogConfig()))

	// The container is built after flags are parsed so --config can point
	// at a YAML file.
	cli.SetInitializer(func(ctx context.Context, configFile string, verbose bool) (*cli.App, func(), error) {
		cfg, err := config.LoadFile(configFile)
		if err != nil {
			return nil, nil, err
		}

		logger := newLogger(cfg, verbose)
		cli.SetLogger(logger)

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return mcpinternal.NewCLIApp(container), container.Close, nil
	})

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(mcp.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}

func newLogger(cfg *config.Config, verbose bool) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	if cfg.LogLevel != "" {
		logCfg.Level = observability.LogLevel(cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
	}
	if verbose || (cfg.IsDevelopment() && cfg.LogLevel == "") {
		logCfg.Level = observability.LogLevelDebug
	}
	logCfg.Output = os.Stderr
	return observability.NewLogger(logCfg)
}
