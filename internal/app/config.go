package app

import (
	"portalctl/internal/config"
)

// Config holds the application configuration
type Config struct {
	// UI mode
	NoTUI bool

	// Debug settings
	Debug bool

	// ConfigPath, when set, replaces the layered lookup with a single file.
	ConfigPath string

	// StartURL overrides console.startURL, e.g. a deep link passed on the command line.
	StartURL string

	// Portal configuration, filled by NewApplication.
	Portal *config.PortalctlConfig
}

// NewConfig creates a new application configuration
func NewConfig(noTUI, debug bool, configPath, startURL string) *Config {
	return &Config{
		NoTUI:      noTUI,
		Debug:      debug,
		ConfigPath: configPath,
		StartURL:   startURL,
	}
}

// LoadPortalConfig loads the configuration file(s) named by cfg.
func LoadPortalConfig(cfg *Config) (config.PortalctlConfig, error) {
	if cfg.ConfigPath != "" {
		return config.LoadConfigFromPath(cfg.ConfigPath)
	}
	return config.LoadConfig()
}
