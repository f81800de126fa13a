// Package config loads the bridge configuration from YAML with environment
// fallbacks for credentials.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

const (
	BackendModeHTTP   = "http"
	BackendModeMemory = "memory"

	DefaultBaseURL         = "https://api.recordwise.dev"
	DefaultTimeoutSecs     = 30
	DefaultRefreshSchedule = "@every 15m"
	DefaultLogLevel        = "info"
	DefaultServerName      = "crm-bridge"
	DefaultMaxSuggestions  = 3
)

// Config is the top-level bridge configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Catalog CatalogConfig `yaml:"catalog"`
	Mapping MappingConfig `yaml:"mapping"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// BackendConfig selects and configures the record store adapter. Mode
// "memory" swaps in the in-process store, used for local development and
// tests.
type BackendConfig struct {
	Mode        string `yaml:"mode"`
	BaseURL     string `yaml:"base_url"`
	Token       string `yaml:"token"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
}

type CatalogConfig struct {
	RefreshSchedule string `yaml:"refresh_schedule"`
	CachePath       string `yaml:"cache_path"`
}

// MappingConfig tunes the field-mapping pipeline. ImmutableFields maps a
// resource type name to attribute slugs the backend silently ignores writes
// to; leaving it empty keeps the built-in per-resource lists, setting it
// replaces them entirely.
type MappingConfig struct {
	MaxSuggestions  int                 `yaml:"max_suggestions"`
	ImmutableFields map[string][]string `yaml:"immutable_fields"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads the config file at path. A missing path yields pure defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	return cfg.WithDefaults(), nil
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	c.Server = c.Server.withDefaults()
	c.Backend = c.Backend.withDefaults()
	c.Catalog = c.Catalog.withDefaults()
	c.Mapping = c.Mapping.withDefaults()
	c.Logging = c.Logging.withDefaults()
	return c
}

func (c ServerConfig) withDefaults() ServerConfig {
	if strings.TrimSpace(c.Name) == "" {
		c.Name = DefaultServerName
	}
	if strings.TrimSpace(c.Version) == "" {
		c.Version = "dev"
	}
	return c
}

func (c BackendConfig) withDefaults() BackendConfig {
	if c.Mode == "" {
		c.Mode = BackendModeHTTP
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Token == "" {
		c.Token = os.Getenv("CRM_BRIDGE_TOKEN")
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	return c
}

func (c CatalogConfig) withDefaults() CatalogConfig {
	if strings.TrimSpace(c.RefreshSchedule) == "" {
		c.RefreshSchedule = DefaultRefreshSchedule
	}
	return c
}

func (c MappingConfig) withDefaults() MappingConfig {
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = DefaultMaxSuggestions
	}
	return c
}

func (c LoggingConfig) withDefaults() LoggingConfig {
	if strings.TrimSpace(c.Level) == "" {
		c.Level = DefaultLogLevel
	}
	return c
}

// Validate rejects configurations the bridge cannot start with.
func (c *Config) Validate() error {
	switch c.Backend.Mode {
	case BackendModeHTTP, BackendModeMemory:
	default:
		return fmt.Errorf("unknown backend mode %q (want %q or %q)", c.Backend.Mode, BackendModeHTTP, BackendModeMemory)
	}
	if c.Backend.Mode == BackendModeHTTP && c.Backend.Token == "" {
		return fmt.Errorf("backend token is required in %s mode (set backend.token or CRM_BRIDGE_TOKEN)", BackendModeHTTP)
	}
	for name := range c.Mapping.ImmutableFields {
		if _, err := catalog.ParseResourceType(name); err != nil {
			return fmt.Errorf("mapping.immutable_fields: %w", err)
		}
	}
	return nil
}
