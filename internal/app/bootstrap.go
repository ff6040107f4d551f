package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"portalctl/pkg/logging"
)

// Application is the main application structure that bootstraps and runs the console
type Application struct {
	config   *Config
	services *Services
	out      io.Writer
}

// NewApplication loads configuration and initializes services
func NewApplication(cfg *Config) (*Application, error) {
	// Logging goes to stdout until the TUI takes over.
	logging.InitForCLI(logLevel(cfg), os.Stdout)

	portalCfg, err := LoadPortalConfig(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load portalctl configuration")
		return nil, fmt.Errorf("failed to load portalctl configuration: %w", err)
	}
	cfg.Portal = &portalCfg

	// Re-init with the configured level now that it is known.
	logging.InitForCLI(logLevel(cfg), os.Stdout)
	logging.Info("Bootstrap", "Using portal backend %s", portalCfg.API.BaseURL)

	return &Application{
		config:   cfg,
		services: InitializeServices(portalCfg, cfg.StartURL),
		out:      os.Stdout,
	}, nil
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	defer a.services.Close()
	if a.config.NoTUI {
		return runCLIMode(ctx, a.out, a.services)
	}
	return runTUIMode(ctx, a.config, a.services)
}

// logLevel picks --debug over the configured level.
func logLevel(cfg *Config) logging.LogLevel {
	if cfg.Debug {
		return logging.LevelDebug
	}
	if cfg.Portal != nil {
		return logging.ParseLevel(cfg.Portal.Logging.Level)
	}
	return logging.LevelInfo
}
