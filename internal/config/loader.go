package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"portalctl/pkg/logging"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

const (
	userConfigDir    = ".config/portalctl"
	projectConfigDir = ".portalctl"
	configFileName   = "config.yaml"

	envAPIURL   = "PORTALCTL_API_URL"
	envAPIToken = "PORTALCTL_API_TOKEN"
	envLogLevel = "PORTALCTL_LOG_LEVEL"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// LoadConfig loads the portalctl configuration by layering default, user, project and environment settings.
func LoadConfig() (PortalctlConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if config, err = overlayFile(config, userConfigPath); err != nil {
		return PortalctlConfig{}, err
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if config, err = overlayFile(config, projectConfigPath); err != nil {
		return PortalctlConfig{}, err
	}

	config = applyEnvironment(config)
	config.API.Token = expandEnv(config.API.Token)
	config.API.BaseURL = strings.TrimRight(expandEnv(config.API.BaseURL), "/")
	return config, nil
}

// LoadConfigFromPath loads defaults, the single file at path and environment settings.
// Unlike LoadConfig, a missing file is an error.
func LoadConfigFromPath(path string) (PortalctlConfig, error) {
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return PortalctlConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	config := applyEnvironment(mergeConfigs(GetDefaultConfig(), overlay))
	config.API.Token = expandEnv(config.API.Token)
	config.API.BaseURL = strings.TrimRight(expandEnv(config.API.BaseURL), "/")
	return config, nil
}

func overlayFile(base PortalctlConfig, path string) (PortalctlConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return PortalctlConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	logging.Debug("Config", "Loaded configuration layer %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a PortalctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (PortalctlConfig, error) {
	var config PortalctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return PortalctlConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return PortalctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in overlay keep base.
func mergeConfigs(base, overlay PortalctlConfig) PortalctlConfig {
	merged := base

	if overlay.API.BaseURL != "" {
		merged.API.BaseURL = overlay.API.BaseURL
	}
	if overlay.API.Token != "" {
		merged.API.Token = overlay.API.Token
	}
	if overlay.API.UserAgent != "" {
		merged.API.UserAgent = overlay.API.UserAgent
	}
	if overlay.API.Timeout != 0 {
		merged.API.Timeout = overlay.API.Timeout
	}

	if overlay.Console.StartURL != "" {
		merged.Console.StartURL = overlay.Console.StartURL
	}
	if overlay.Console.ColorMode != "" {
		merged.Console.ColorMode = overlay.Console.ColorMode
	}
	if overlay.Console.HistoryLimit > 0 {
		merged.Console.HistoryLimit = overlay.Console.HistoryLimit
	}
	if overlay.Console.Editor != "" {
		merged.Console.Editor = overlay.Console.Editor
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}

	if overlay.MCP.Name != "" {
		merged.MCP.Name = overlay.MCP.Name
	}
	if overlay.MCP.AllowWrites {
		merged.MCP.AllowWrites = true
	}

	return merged
}

func applyEnvironment(config PortalctlConfig) PortalctlConfig {
	if v, ok := osLookupEnv(envAPIURL); ok && v != "" {
		config.API.BaseURL = v
	}
	if v, ok := osLookupEnv(envAPIToken); ok && v != "" {
		config.API.Token = v
	}
	if v, ok := osLookupEnv(envLogLevel); ok && v != "" {
		config.Logging.Level = v
	}
	return config
}

// expandEnv replaces ${VAR} and ${VAR:-default} references.
func expandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		parts := envVarPattern.FindStringSubmatch(m)
		if v, ok := osLookupEnv(parts[1]); ok && v != "" {
			return v
		}
		return parts[3]
	})
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
