// Package config loads places-mcp configuration from TOML files with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/brukhabtu/places-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	API     APIConfig            `toml:"api"`
	Spec    SpecConfig           `toml:"spec"`
	Logging common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// APIConfig contains settings for the upstream Places API.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Key     string `toml:"key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the request timeout duration.
func (c *APIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SpecConfig contains OpenAPI specification document settings.
type SpecConfig struct {
	Path string `toml:"path"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// A missing file is not an error; defaults and env overrides still apply.
func LoadFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// GOOGLE_API_KEY supplies the credential; its absence is deliberately
// non-fatal, requests without a key fail upstream with an auth status.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		config.API.Key = key
	}
	if base := os.Getenv("PLACES_BASE_URL"); base != "" {
		config.API.BaseURL = base
	}
	if timeout := os.Getenv("PLACES_TIMEOUT"); timeout != "" {
		config.API.Timeout = timeout
	}
	if path := os.Getenv("PLACES_SPEC_PATH"); path != "" {
		config.Spec.Path = path
	}
	if host := os.Getenv("PLACES_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("PLACES_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if level := os.Getenv("PLACES_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
