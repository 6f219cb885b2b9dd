package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/checklist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/checklist/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/checklist/pkg/config"
	"github.com/felixgeelhaar/checklist/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// RepositoryFactory creates task repositories for a SQL connection.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TaskRepository creates a task repository for the connection's driver.
func (f *RepositoryFactory) TaskRepository() (task.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return persistence.NewPostgresTaskRepository(f.conn), nil
	case database.DriverSQLite:
		return persistence.NewSQLiteTaskRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// taskStore is an opened store plus the resources that back it.
type taskStore struct {
	repo   task.Repository
	conn   database.Connection
	redis  *redis.Client
	health observability.HealthChecker
}

// openTaskStore opens the store selected by cfg and migrates SQL schemas.
func openTaskStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*taskStore, error) {
	switch driver := cfg.ResolvedStoreDriver(); driver {
	case config.StoreMemory:
		logger.Info("using in-memory task store")
		return &taskStore{
			repo: persistence.NewMemoryTaskRepository(),
			health: func(context.Context) observability.HealthCheckResult {
				return observability.HealthCheckResult{Status: observability.HealthStatusHealthy, Message: "memory"}
			},
		}, nil

	case config.StoreRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		logger.Info("connected to Redis")

		repo := persistence.NewRedisTaskRepository(client, "")
		return &taskStore{
			repo:   repo,
			redis:  client,
			health: observability.PingHealthChecker(repo.Ping),
		}, nil

	case config.StorePostgres, config.StoreSQLite:
		dbCfg := database.Config{Driver: database.DriverSQLite, SQLitePath: cfg.SQLitePath}
		switch {
		case driver == config.StorePostgres:
			dbCfg = database.Config{Driver: database.DriverPostgres, URL: cfg.DatabaseURL}
		case cfg.DatabaseURL != "" && cfg.StoreDriver == config.StoreAuto:
			// A SQLite DATABASE_URL; the factory derives the path from it.
			dbCfg = database.Config{URL: cfg.DatabaseURL, SQLitePath: cfg.SQLitePath}
		}

		conn, err := database.NewConnection(ctx, dbCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrations.Run(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("connected to database", "driver", conn.Driver())

		repo, err := NewRepositoryFactory(conn).TaskRepository()
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to create task repository: %w", err)
		}
		return &taskStore{
			repo:   repo,
			conn:   conn,
			health: observability.PingHealthChecker(conn.Ping),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}
