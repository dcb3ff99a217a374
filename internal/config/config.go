package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Port           int      `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	StorageDriver  string   `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	StorageKey     string   `envconfig:"STORAGE_KEY" default:"invoices"`
	DatabaseURL    string   `envconfig:"DATABASE_URL"`
	SQLitePath     string   `envconfig:"SQLITE_PATH" default:"invoices.db"`
	RedisURL       string   `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	RedisPrefix    string   `envconfig:"REDIS_PREFIX" default:"bookkeeping:"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFilePath    string   `envconfig:"LOG_FILE_PATH"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
