package config

import "github.com/brukhabtu/places-mcp/internal/common"

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "places-mcp",
			Host: "0.0.0.0",
			Port: 8080,
		},
		API: APIConfig{
			BaseURL: "https://maps.googleapis.com",
			Timeout: "30s",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/places-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
