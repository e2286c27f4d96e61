package infra

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Storage backend names accepted by STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Server
	APIPort int `env:"API_PORT" envDefault:"3200"`

	// Persistence
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"./data/coinquest.db"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of %s|%s|%s, got %q",
			BackendMemory, BackendFile, BackendSQLite, c.StorageBackend)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be debug|info|warn|error, got %q", c.LogLevel)
}
