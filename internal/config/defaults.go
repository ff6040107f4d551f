package config

const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultStartURL     = "/home"
	DefaultHistoryLimit = 200
	DefaultMCPName      = "portalctl"
)

// GetDefaultConfig returns the configuration used when no files are present.
func GetDefaultConfig() PortalctlConfig {
	return PortalctlConfig{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			UserAgent: "portalctl",
		},
		Console: ConsoleConfig{
			StartURL:     DefaultStartURL,
			ColorMode:    "auto",
			HistoryLimit: DefaultHistoryLimit,
		},
		Logging: LoggingConfig{Level: "info"},
		MCP:     MCPConfig{Name: DefaultMCPName},
	}
}
