package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rubicon-docs/docsite/internal/config"
	"github.com/rubicon-docs/docsite/internal/db"
	"github.com/rubicon-docs/docsite/internal/logging"
	"github.com/rubicon-docs/docsite/internal/nav"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docsite init` to create a config file", err)
	}
	return cfg, nil
}

// loadNavigation reads the configured navigation file, falling back to the
// built-in tree when none is set.
func loadNavigation(cfg *config.Config) (*nav.Tree, error) {
	if cfg.NavigationFile == "" {
		return nav.Default(), nil
	}
	return nav.LoadFile(cfg.NavigationFile)
}

// newLogger builds the zap logger, honouring --log-level and --verbose.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := string(cfg.LogLevel)
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = string(config.LogDebug)
	}
	return logging.New(level)
}

// openIndex opens the SQLite page index.
func openIndex(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening page index: %w", err)
	}
	return database, nil
}
