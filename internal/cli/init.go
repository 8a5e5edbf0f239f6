// Package cli consolidates the initialization shared by cmd/clientes and
// cmd/clientes-backup.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"clientes/internal/clients"
	"clientes/internal/config"
	"clientes/internal/log"
	"clientes/internal/memory"
	"clientes/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently; the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore builds the configured ClientStore, exiting the process on
// failure.
func OpenStore(logger *log.Logger, cfg *config.Config) clients.ClientStore {
	switch cfg.DataBackend {
	case "memory":
		logger.Info("Initialized memory backend")
		return memory.New()
	default:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
		return repo
	}
}
