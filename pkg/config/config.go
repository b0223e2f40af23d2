package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Graph API client
type Config struct {
	// Graph API connection settings
	Graph GraphConfig `yaml:"graph" json:"graph"`

	// Client-side request throttling
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GraphConfig holds Instagram Graph API settings
type GraphConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	APIVersion  string        `yaml:"api_version" json:"api_version"`
	AccessToken string        `yaml:"access_token" json:"access_token"`
	Profile     string        `yaml:"profile" json:"profile"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	UserFields  []string      `yaml:"user_fields" json:"user_fields"`
	MediaFields []string      `yaml:"media_fields" json:"media_fields"`
	PageSize    int           `yaml:"page_size" json:"page_size"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" json:"requests_per_minute"`
	BurstSize         int `yaml:"burst_size" json:"burst_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	File   string `yaml:"file" json:"file"`
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			BaseURL:     "https://graph.instagram.com",
			APIVersion:  "",
			Profile:     "default",
			Timeout:     30 * time.Second,
			UserFields:  []string{"id", "username", "account_type", "media_count"},
			MediaFields: []string{"id", "caption", "media_type", "media_url", "permalink", "thumbnail_url", "timestamp", "username"},
			PageSize:    25,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 200,
			BurstSize:         10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			File:   "",
			Format: "console",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if baseURL := os.Getenv("IGGRAPH_BASE_URL"); baseURL != "" {
		c.Graph.BaseURL = baseURL
	}
	if version := os.Getenv("IGGRAPH_API_VERSION"); version != "" {
		c.Graph.APIVersion = version
	}
	if token := os.Getenv("IGGRAPH_ACCESS_TOKEN"); token != "" {
		c.Graph.AccessToken = token
	}
	if profile := os.Getenv("IGGRAPH_PROFILE"); profile != "" {
		c.Graph.Profile = profile
	}
	if timeout := os.Getenv("IGGRAPH_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGGRAPH_TIMEOUT: %w", err))
		} else {
			c.Graph.Timeout = d
		}
	}
	if pageSize := os.Getenv("IGGRAPH_PAGE_SIZE"); pageSize != "" {
		val, err := strconv.Atoi(pageSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGGRAPH_PAGE_SIZE: %w", err))
		} else {
			c.Graph.PageSize = val
		}
	}

	if rpm := os.Getenv("IGGRAPH_REQUESTS_PER_MINUTE"); rpm != "" {
		val, err := strconv.Atoi(rpm)
		if err != nil {
			errs = append(errs, fmt.Errorf("IGGRAPH_REQUESTS_PER_MINUTE: %w", err))
		} else {
			c.RateLimit.RequestsPerMinute = val
		}
	}

	if logLevel := os.Getenv("IGGRAPH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("IGGRAPH_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".iggraph.yaml",
		".iggraph.yml",
		filepath.Join(home, ".config", "iggraph", "config.yaml"),
		filepath.Join(home, ".config", "iggraph", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Graph.BaseURL == "" {
		errs = append(errs, errors.New("graph base URL is required"))
	} else if u, err := url.Parse(c.Graph.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("graph base URL %q is not an absolute URL", c.Graph.BaseURL))
	}
	if c.Graph.APIVersion != "" && !strings.HasPrefix(c.Graph.APIVersion, "v") {
		errs = append(errs, fmt.Errorf("api version %q must look like v21.0", c.Graph.APIVersion))
	}
	if c.Graph.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.Graph.PageSize <= 0 || c.Graph.PageSize > 100 {
		errs = append(errs, errors.New("page size must be between 1 and 100"))
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		errs = append(errs, errors.New("requests per minute cannot be negative"))
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.BurstSize <= 0 {
		errs = append(errs, errors.New("burst size must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Errorf("invalid log format %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	var doc yaml.Node
	if err := doc.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	// keep the timeout in the same form LoadFromFile and IGGRAPH_TIMEOUT accept
	if node := mappingValue(mappingValue(&doc, "graph"), "timeout"); node != nil {
		node.Kind = yaml.ScalarNode
		node.Tag = "!!str"
		node.Value = c.Graph.Timeout.String()
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: the file may hold an access token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// mappingValue returns the value node stored under key in a mapping node
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["access-token"].(string); ok && token != "" {
		c.Graph.AccessToken = token
	}
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.Graph.BaseURL = baseURL
	}
	if version, ok := flags["api-version"].(string); ok && version != "" {
		c.Graph.APIVersion = version
	}
	if profile, ok := flags["profile"].(string); ok && profile != "" {
		c.Graph.Profile = profile
	}
	if pageSize, ok := flags["page-size"].(int); ok && pageSize > 0 {
		c.Graph.PageSize = pageSize
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: command line flags > environment variables > .env file > config file > defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".iggraph.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
