package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/checklist/internal/productivity/application"
	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/checklist/internal/productivity/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/checklist/internal/shared/application"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/felixgeelhaar/checklist/pkg/observability"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// OwnerID is the configured owner for the CLI and MCP server.
	OwnerID uuid.UUID

	// Store
	DBConn      database.Connection
	RedisClient *redis.Client
	TaskRepo    task.Repository
	Breaker     *persistence.BreakerTaskRepository

	// Events
	EventPublisher eventbus.Publisher
	EventBus       *eventbus.InProcessEventBus

	// Engine
	Engine *application.Engine

	Health *observability.HealthRegistry
}

// NewContainer opens the configured store and event publisher and wires the
// task engine on top of them.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ownerID, err := cfg.OwnerID()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		OwnerID: ownerID,
		Health:  observability.NewHealthRegistry(),
	}

	store, err := openTaskStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.DBConn = store.conn
	c.RedisClient = store.redis
	c.TaskRepo = store.repo
	c.Health.Register("store", store.health)

	if cfg.BreakerEnabled {
		c.Breaker = persistence.NewBreakerTaskRepository(c.TaskRepo, persistence.BreakerConfig{
			FailureThreshold: convert.IntToUint32Clamped(cfg.BreakerFailures),
			Timeout:          cfg.BreakerTimeout,
			MaxRequests:      1,
		}, logger)
		c.TaskRepo = c.Breaker
	}

	if err := c.initEvents(); err != nil {
		c.Close()
		return nil, err
	}

	dispatcher := sharedApplication.NewEventDispatcher(c.EventPublisher, logger)
	c.Engine = application.NewEngine(c.TaskRepo, dispatcher)

	return c, nil
}

func (c *Container) initEvents() error {
	cfg, logger := c.Config, c.Logger

	if !cfg.EventsEnabled {
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
		return nil
	}

	if cfg.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err == nil {
			c.EventPublisher = publisher
			c.Health.Register("events", observability.PingHealthChecker(publisher.Ping))
			return nil
		}
		// Fall back to the in-process bus in development
		if !cfg.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
	}

	// Create in-process event bus for local mode (no RabbitMQ)
	bus := eventbus.NewInProcessEventBus(logger)
	bus.Subscribe(eventbus.NewActivityLog(logger))
	c.EventBus = bus
	c.EventPublisher = bus
	return nil
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBConn.Driver())
		}
	}
}
