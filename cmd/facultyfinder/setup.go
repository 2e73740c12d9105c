package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/facultyfinder/config"
	"github.com/poiesic/facultyfinder/storage"
	"github.com/poiesic/facultyfinder/storage/badger"
	"github.com/poiesic/facultyfinder/storage/sqlite"
)

const (
	metaConfig = "config"
	metaLogger = "logger"
)

// setup loads the configuration, applies flag overrides and installs the logger.
func setup(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if c.IsSet("log-level") || c.String("config") == "" {
		cfg.LogLevel = c.String("log-level")
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
	}
	if backend := c.String("backend"); backend != "" {
		cfg.Storage.Backend = strings.ToLower(backend)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", cfg.LogLevel)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[metaConfig] = cfg
	c.App.Metadata[metaLogger] = logger
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	return c.App.Metadata[metaConfig].(*config.Config)
}

func loggerFrom(c *cli.Context) *slog.Logger {
	return c.App.Metadata[metaLogger].(*slog.Logger)
}

// openRepository opens the catalog selected by the configuration.
func openRepository(cfg *config.Config, logger *slog.Logger) (storage.FacultyRepository, error) {
	var (
		repo storage.FacultyRepository
		err  error
	)
	switch strings.ToLower(cfg.Storage.Backend) {
	case config.BackendSQLite:
		repo, err = sqlite.NewRepository(cfg.Storage.Path, logger)
	default:
		repo, err = badger.NewRepository(cfg.Storage.Path, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return repo, nil
}
