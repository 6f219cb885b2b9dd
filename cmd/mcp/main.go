package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/checklist/internal/app"
	mcpinternal "github.com/felixgeelhaar/checklist/internal/mcp"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/felixgeelhaar/checklist/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		logConfig := observability.DefaultLogConfig()
		logConfig.Level = observability.LogLevelDebug
		logger = observability.NewLogger(logConfig)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	err = mcpinternal.Serve(ctx, cfg, mcpinternal.NewCLIApp(container), logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
