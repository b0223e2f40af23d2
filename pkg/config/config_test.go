package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Graph.BaseURL != "https://graph.instagram.com" {
		t.Errorf("Expected default base URL to be https://graph.instagram.com, got %s", config.Graph.BaseURL)
	}

	if config.Graph.PageSize != 25 {
		t.Errorf("Expected default page size to be 25, got %d", config.Graph.PageSize)
	}

	if config.Graph.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout to be 30s, got %v", config.Graph.Timeout)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("IGGRAPH_ACCESS_TOKEN", "env-token")
	t.Setenv("IGGRAPH_API_VERSION", "v21.0")
	t.Setenv("IGGRAPH_TIMEOUT", "5s")
	t.Setenv("IGGRAPH_PAGE_SIZE", "50")
	t.Setenv("IGGRAPH_REQUESTS_PER_MINUTE", "30")
	t.Setenv("IGGRAPH_LOG_LEVEL", "debug")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Graph.AccessToken != "env-token" {
		t.Errorf("Expected access token to be env-token, got %s", config.Graph.AccessToken)
	}
	if config.Graph.APIVersion != "v21.0" {
		t.Errorf("Expected api version to be v21.0, got %s", config.Graph.APIVersion)
	}
	if config.Graph.Timeout != 5*time.Second {
		t.Errorf("Expected timeout to be 5s, got %v", config.Graph.Timeout)
	}
	if config.Graph.PageSize != 50 {
		t.Errorf("Expected page size to be 50, got %d", config.Graph.PageSize)
	}
	if config.RateLimit.RequestsPerMinute != 30 {
		t.Errorf("Expected requests per minute to be 30, got %d", config.RateLimit.RequestsPerMinute)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("IGGRAPH_TIMEOUT", "soon")
	t.Setenv("IGGRAPH_PAGE_SIZE", "many")

	config := DefaultConfig()
	err := config.LoadFromEnv()
	if err == nil {
		t.Fatal("Expected error for invalid environment values")
	}
	if !strings.Contains(err.Error(), "IGGRAPH_TIMEOUT") || !strings.Contains(err.Error(), "IGGRAPH_PAGE_SIZE") {
		t.Errorf("Expected both variables to be reported, got %v", err)
	}
	if config.Graph.Timeout != 30*time.Second {
		t.Errorf("Expected timeout to stay at default, got %v", config.Graph.Timeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
graph:
  base_url: https://graph.example.test
  api_version: v20.0
  access_token: file-token
  timeout: 10s
  page_size: 10
  media_fields: [id, caption]
rate_limit:
  requests_per_minute: 60
  burst_size: 5
logging:
  level: warn
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if config.Graph.BaseURL != "https://graph.example.test" {
		t.Errorf("Expected base URL from file, got %s", config.Graph.BaseURL)
	}
	if config.Graph.Timeout != 10*time.Second {
		t.Errorf("Expected timeout to be 10s, got %v", config.Graph.Timeout)
	}
	if len(config.Graph.MediaFields) != 2 || config.Graph.MediaFields[1] != "caption" {
		t.Errorf("Expected media fields [id caption], got %v", config.Graph.MediaFields)
	}
	if len(config.Graph.UserFields) == 0 {
		t.Error("Expected user fields to keep their defaults")
	}
	if config.Logging.Format != "json" {
		t.Errorf("Expected log format json, got %s", config.Logging.Format)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	config := DefaultConfig()
	if err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}

	badPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(badPath, []byte("graph: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := config.LoadFromFile(badPath); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"relative base URL", func(c *Config) { c.Graph.BaseURL = "graph.instagram.com" }, "not an absolute URL"},
		{"empty base URL", func(c *Config) { c.Graph.BaseURL = "" }, "base URL is required"},
		{"bad version", func(c *Config) { c.Graph.APIVersion = "21" }, "api version"},
		{"zero timeout", func(c *Config) { c.Graph.Timeout = 0 }, "timeout must be positive"},
		{"page size too large", func(c *Config) { c.Graph.PageSize = 101 }, "page size"},
		{"negative rpm", func(c *Config) { c.RateLimit.RequestsPerMinute = -1 }, "requests per minute"},
		{"zero burst", func(c *Config) { c.RateLimit.BurstSize = 0 }, "burst size"},
		{"unlimited ignores burst", func(c *Config) { c.RateLimit.RequestsPerMinute = 0; c.RateLimit.BurstSize = 0 }, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Graph.AccessToken = "saved-token"
	original.Graph.PageSize = 40

	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Saved file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "timeout: 30s") {
		t.Errorf("Expected timeout to be written as a duration string, got:\n%s", data)
	}

	loaded := DefaultConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.Graph.AccessToken != "saved-token" || loaded.Graph.PageSize != 40 {
		t.Errorf("Reloaded config differs: %+v", loaded.Graph)
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"page-size":   40,
		"profile":     "work",
		"api-version": "",
	})

	if config.Graph.PageSize != 40 {
		t.Errorf("Expected page size 40, got %d", config.Graph.PageSize)
	}
	if config.Graph.Profile != "work" {
		t.Errorf("Expected profile work, got %s", config.Graph.Profile)
	}

	config.MergeCommandLineFlags(map[string]interface{}{"page-size": 0})
	if config.Graph.PageSize != 40 {
		t.Errorf("Expected zero page size flag to be ignored, got %d", config.Graph.PageSize)
	}
}

func TestLoadPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "graph:\n  access_token: file-token\n  page_size: 10\nlogging:\n  level: warn\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("IGGRAPH_PAGE_SIZE", "20")
	t.Setenv("IGGRAPH_ACCESS_TOKEN", "env-token")

	config, err := Load(configPath, map[string]interface{}{
		"access-token": "flag-token",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Graph.AccessToken != "flag-token" {
		t.Errorf("Expected flag to win, got %s", config.Graph.AccessToken)
	}
	if config.Graph.PageSize != 20 {
		t.Errorf("Expected env to override file, got %d", config.Graph.PageSize)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("Expected file to override default, got %s", config.Logging.Level)
	}
}

func TestLoadValidationFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("IGGRAPH_PAGE_SIZE", "500")

	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml"), nil); err == nil {
		t.Error("Expected error for missing explicit config path")
	}

	if _, err := Load("", nil); err == nil || !strings.Contains(err.Error(), "page size") {
		t.Errorf("Expected validation error, got %v", err)
	}
}
