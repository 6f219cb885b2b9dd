package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/checklist/internal/shared/infrastructure/security"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreAuto     = "auto"
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// DefaultUserID is the owner used by the CLI and MCP server when none is configured.
const DefaultUserID = "00000000-0000-0000-0000-000000000001"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	UserID    string

	// Store
	StoreDriver string
	DatabaseURL string
	SQLitePath  string
	RedisURL    string

	// Store circuit breaker
	BreakerEnabled  bool
	BreakerFailures int
	BreakerTimeout  time.Duration

	// Events
	EventsEnabled bool
	RabbitMQURL   string

	// REST API
	APIAddr string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// fileConfig is the YAML layout of an optional config file.
type fileConfig struct {
	AppEnv string `yaml:"app_env"`
	UserID string `yaml:"user_id"`
	Log    struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Store struct {
		Driver      string `yaml:"driver"`
		DatabaseURL string `yaml:"database_url"`
		SQLitePath  string `yaml:"sqlite_path"`
		RedisURL    string `yaml:"redis_url"`
		Breaker     struct {
			Enabled  *bool  `yaml:"enabled"`
			Failures int    `yaml:"failures"`
			Timeout  string `yaml:"timeout"`
		} `yaml:"breaker"`
	} `yaml:"store"`
	Events struct {
		Enabled     *bool  `yaml:"enabled"`
		RabbitMQURL string `yaml:"rabbitmq_url"`
	} `yaml:"events"`
	API struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
	MCP struct {
		Addr      string `yaml:"addr"`
		AuthToken string `yaml:"auth_token"`
	} `yaml:"mcp"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		AppEnv:          "development",
		LogLevel:        "info",
		UserID:          DefaultUserID,
		StoreDriver:     StoreAuto,
		BreakerEnabled:  true,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
		EventsEnabled:   true,
		APIAddr:         "127.0.0.1:8080",
		MCPAddr:         "0.0.0.0:8082",
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration from the YAML file at path, if any, and then
// from environment variables, which take precedence over the file.
func LoadFile(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	base := Defaults()
	if path != "" {
		if err := base.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", base.AppEnv),
		LogLevel:  getEnv("LOG_LEVEL", base.LogLevel),
		LogFormat: getEnv("LOG_FORMAT", base.LogFormat),
		UserID:    getEnv("CHECKLIST_USER_ID", base.UserID),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", base.StoreDriver)),
		DatabaseURL: getEnv("DATABASE_URL", base.DatabaseURL),
		SQLitePath:  getEnv("SQLITE_PATH", base.SQLitePath),
		RedisURL:    getEnv("REDIS_URL", base.RedisURL),

		BreakerEnabled:  getBoolEnv("STORE_BREAKER_ENABLED", base.BreakerEnabled),
		BreakerFailures: getIntEnv("STORE_BREAKER_FAILURES", base.BreakerFailures),
		BreakerTimeout:  getDurationEnv("STORE_BREAKER_TIMEOUT", base.BreakerTimeout),

		EventsEnabled: getBoolEnv("EVENTS_ENABLED", base.EventsEnabled),
		RabbitMQURL:   getEnv("RABBITMQ_URL", base.RabbitMQURL),

		APIAddr: getEnv("API_ADDR", base.APIAddr),

		MCPAddr:      getEnv("MCP_ADDR", base.MCPAddr),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", base.MCPAuthToken),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := security.SafeReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.AppEnv, f.AppEnv)
	setString(&c.UserID, f.UserID)
	setString(&c.LogLevel, f.Log.Level)
	setString(&c.LogFormat, f.Log.Format)
	setString(&c.StoreDriver, f.Store.Driver)
	setString(&c.DatabaseURL, f.Store.DatabaseURL)
	setString(&c.SQLitePath, f.Store.SQLitePath)
	setString(&c.RedisURL, f.Store.RedisURL)
	setString(&c.RabbitMQURL, f.Events.RabbitMQURL)
	setString(&c.APIAddr, f.API.Addr)
	setString(&c.MCPAddr, f.MCP.Addr)
	setString(&c.MCPAuthToken, f.MCP.AuthToken)

	if f.Store.Breaker.Enabled != nil {
		c.BreakerEnabled = *f.Store.Breaker.Enabled
	}
	if f.Store.Breaker.Failures > 0 {
		c.BreakerFailures = f.Store.Breaker.Failures
	}
	if f.Store.Breaker.Timeout != "" {
		d, err := time.ParseDuration(f.Store.Breaker.Timeout)
		if err != nil {
			return fmt.Errorf("parse config file %s: store.breaker.timeout: %w", path, err)
		}
		c.BreakerTimeout = d
	}
	if f.Events.Enabled != nil {
		c.EventsEnabled = *f.Events.Enabled
	}
	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreAuto:
		if _, err := database.DetectDriver(c.DatabaseURL); err != nil {
			return fmt.Errorf("DATABASE_URL: %w", err)
		}
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("STORE_DRIVER=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.BreakerEnabled {
		if n, err := convert.IntToUint32(c.BreakerFailures); err != nil || n == 0 {
			return fmt.Errorf("STORE_BREAKER_FAILURES must be a positive number, got %d", c.BreakerFailures)
		}
	}

	if _, err := c.OwnerID(); err != nil {
		return err
	}
	return nil
}

// OwnerID parses UserID.
func (c *Config) OwnerID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid CHECKLIST_USER_ID %q: %w", c.UserID, err)
	}
	return id, nil
}

// ResolvedStoreDriver resolves StoreAuto from DATABASE_URL: a postgres URL
// selects postgres, a SQLite URL or no URL selects sqlite. Validate has
// already rejected URLs that name neither.
func (c *Config) ResolvedStoreDriver() string {
	if c.StoreDriver != StoreAuto && c.StoreDriver != "" {
		return c.StoreDriver
	}
	if driver, err := database.DetectDriver(c.DatabaseURL); err == nil && driver == database.DriverPostgres {
		return StorePostgres
	}
	return StoreSQLite
}

// IsLocalMode reports whether tasks stay on this machine.
func (c *Config) IsLocalMode() bool {
	switch c.ResolvedStoreDriver() {
	case StoreSQLite, StoreMemory:
		return true
	}
	return false
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
