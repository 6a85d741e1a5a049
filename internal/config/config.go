// Package config defines the application configuration loaded from
// KETCHUP_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/ketchupdev/ketchup/internal/env"
)

// Storage backends.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	// Server configuration
	HTTPPort string `env:"KETCHUP_HTTP_PORT" default:"8080"`
	Env      string `env:"KETCHUP_ENV" default:"dev"` // dev, prod

	ReadTimeout     time.Duration `env:"KETCHUP_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `env:"KETCHUP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `env:"KETCHUP_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `env:"KETCHUP_SHUTDOWN_TIMEOUT" default:"10s"`

	Storage StorageConfig

	// Observability configuration
	OTelEnabled   bool   `env:"KETCHUP_OTEL_ENABLED" default:"false"`
	OTelCollector string `env:"KETCHUP_OTEL_COLLECTOR" default:"localhost:4318"`
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	Type string `env:"KETCHUP_STORAGE_TYPE" default:"sqlite"` // sqlite, postgres
	DSN  string `env:"KETCHUP_STORAGE_DSN" default:"ketchup.db"`

	MaxOpenConns    int           `env:"KETCHUP_DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `env:"KETCHUP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `env:"KETCHUP_DB_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `env:"KETCHUP_DB_CONN_MAX_IDLE_TIME" default:"1m"`

	AutoMigrate bool `env:"KETCHUP_DB_AUTO_MIGRATE" default:"true"`
}

// Validate checks backend selection and its required settings.
func (c *StorageConfig) Validate() error {
	switch c.Type {
	case StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("unknown KETCHUP_STORAGE_TYPE: %s", c.Type)
	}
	if c.DSN == "" {
		return fmt.Errorf("KETCHUP_STORAGE_DSN is required")
	}
	return nil
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case "dev", "prod":
	default:
		return fmt.Errorf("unknown KETCHUP_ENV: %s", c.Env)
	}
	return nil
}
