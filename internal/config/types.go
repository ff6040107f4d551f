package config

import "time"

// PortalctlConfig is the top-level configuration structure for portalctl.
type PortalctlConfig struct {
	API     APIConfig     `yaml:"api"`
	Console ConsoleConfig `yaml:"console"`
	Logging LoggingConfig `yaml:"logging"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// APIConfig describes how to reach the provisioning portal backend.
type APIConfig struct {
	BaseURL   string `yaml:"baseURL"`
	Token     string `yaml:"token,omitempty"` // Bearer token, supports ${VAR} expansion
	UserAgent string `yaml:"userAgent,omitempty"`

	// Timeout bounds a single request. Zero means no timeout, which is the portal default.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ConsoleConfig holds settings for the interactive console.
type ConsoleConfig struct {
	StartURL     string `yaml:"startURL,omitempty"`
	ColorMode    string `yaml:"colorMode,omitempty"` // auto, dark, light
	HistoryLimit int    `yaml:"historyLimit,omitempty"`

	// Editor opens namespace edits. Empty falls back to $VISUAL, $EDITOR, then vi.
	Editor string `yaml:"editor,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// MCPConfig configures the `serve` tool server.
type MCPConfig struct {
	Name        string `yaml:"name,omitempty"`
	AllowWrites bool   `yaml:"allowWrites,omitempty"`
}
