package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Name != "places-mcp" {
		t.Errorf("unexpected server name %q", cfg.Server.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("unexpected port %d", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://maps.googleapis.com" {
		t.Errorf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.GetTimeout() != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.API.GetTimeout())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unexpected log level %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing config file must not be fatal: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFile_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places-mcp.toml")
	content := `
[server]
name = "custom-mcp"
port = 9090

[api]
base_url = "https://example.com"
timeout = "5s"

[spec]
path = "/etc/places/spec.json"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Server.Name != "custom-mcp" || cfg.Server.Port != 9090 {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.API.BaseURL != "https://example.com" {
		t.Errorf("unexpected base URL %q", cfg.API.BaseURL)
	}
	if cfg.API.GetTimeout() != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.API.GetTimeout())
	}
	if cfg.Spec.Path != "/etc/places/spec.json" {
		t.Errorf("unexpected spec path %q", cfg.Spec.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected log level %q", cfg.Logging.Level)
	}
	// Host is not in the file; the default survives.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host preserved, got %q", cfg.Server.Host)
	}
}

func TestLoadFromFile_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for unparseable config")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "env-key")
	t.Setenv("PLACES_BASE_URL", "https://proxy.example.com")
	t.Setenv("PLACES_TIMEOUT", "10s")
	t.Setenv("PLACES_PORT", "7070")
	t.Setenv("PLACES_LOG_LEVEL", "warn")

	cfg, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.API.Key != "env-key" {
		t.Errorf("expected env key, got %q", cfg.API.Key)
	}
	if cfg.API.BaseURL != "https://proxy.example.com" {
		t.Errorf("expected env base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.GetTimeout() != 10*time.Second {
		t.Errorf("expected env timeout, got %v", cfg.API.GetTimeout())
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestEnvOverrides_InvalidPortIgnored(t *testing.T) {
	t.Setenv("PLACES_PORT", "not-a-port")

	cfg, err := LoadFromFile("")
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port for invalid env value, got %d", cfg.Server.Port)
	}
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	api := APIConfig{Timeout: "garbage"}
	if api.GetTimeout() != 30*time.Second {
		t.Errorf("expected 30s fallback, got %v", api.GetTimeout())
	}
}
