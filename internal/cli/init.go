// Package cli provides the startup steps shared by cmd/fintrack and
// cmd/fintrack-worker.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and checks it with validate,
// which is usually (*config.Config).Validate or ValidateWorker. It exits the
// process on failure.
func LoadAndValidateConfig(validate func(*config.Config) error) *config.Config {
	cfg := config.Load()
	if err := validate(cfg); err != nil {
		applog.New(applog.DefaultConfig()).Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default.
func SetupLogger(cfg *config.Config, component string) *applog.Logger {
	logger := NewLogger(cfg, component)
	applog.SetDefault(logger)
	return logger
}

// NewLogger is SetupLogger without touching the slog default. An invalid
// level falls back to info; Validate reports it before this is reached.
func NewLogger(cfg *config.Config, component string) *applog.Logger {
	level, _ := applog.ParseLevel(cfg.LogLevel)
	return applog.New(applog.Config{
		Level:     level,
		Component: component,
		Format:    cfg.LogFormat,
		Output:    os.Stdout,
	})
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
