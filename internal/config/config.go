// Package config provides configuration loading for the reportschema server
// and CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete reportschema configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Validation ValidationConfig `yaml:"validation"`
	Remote     RemoteConfig     `yaml:"remote"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default: ":8080")
	Addr string `yaml:"addr"`
	// ReadTimeout bounds request reads
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds response writes
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// StrictImport rejects templates with validation errors on create/update
	StrictImport bool `yaml:"strict_import"`
}

// StoreConfig configures template persistence.
type StoreConfig struct {
	// DSN is the SQLite data source; ":memory:" keeps everything in process
	DSN string `yaml:"dsn"`
}

// ValidationConfig overrides the structural heuristics thresholds.
type ValidationConfig struct {
	MaxFields   int `yaml:"max_fields"`
	MaxSections int `yaml:"max_sections"`
}

// RemoteConfig configures an optional server-side validator.
type RemoteConfig struct {
	// Endpoint is the URL the template is POSTed to (empty = local only)
	Endpoint string `yaml:"endpoint"`
	// Timeout bounds a single remote call
	Timeout time.Duration `yaml:"timeout"`
	// Fallback runs the local engine when the remote call fails
	Fallback bool `yaml:"fallback"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is "text" or "json"
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			DSN: "reportschema.db",
		},
		Validation: ValidationConfig{
			MaxFields:   50,
			MaxSections: 10,
		},
		Remote: RemoteConfig{
			Timeout:  5 * time.Second,
			Fallback: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr is required")
	}
	if strings.TrimSpace(c.Store.DSN) == "" {
		return errors.New("store.dsn is required")
	}
	if c.Validation.MaxFields <= 0 {
		return errors.New("validation.max_fields must be positive")
	}
	if c.Validation.MaxSections <= 0 {
		return errors.New("validation.max_sections must be positive")
	}
	if c.Remote.Endpoint != "" && c.Remote.Timeout <= 0 {
		return errors.New("remote.timeout must be positive when remote.endpoint is set")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Server
	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ReadTimeout != 0 {
		c.Server.ReadTimeout = other.Server.ReadTimeout
	}
	if other.Server.WriteTimeout != 0 {
		c.Server.WriteTimeout = other.Server.WriteTimeout
	}
	if other.Server.StrictImport {
		c.Server.StrictImport = true
	}

	// Store
	if other.Store.DSN != "" {
		c.Store.DSN = other.Store.DSN
	}

	// Validation
	if other.Validation.MaxFields != 0 {
		c.Validation.MaxFields = other.Validation.MaxFields
	}
	if other.Validation.MaxSections != 0 {
		c.Validation.MaxSections = other.Validation.MaxSections
	}

	// Remote
	if other.Remote.Endpoint != "" {
		c.Remote.Endpoint = other.Remote.Endpoint
		c.Remote.Fallback = other.Remote.Fallback
	}
	if other.Remote.Timeout != 0 {
		c.Remote.Timeout = other.Remote.Timeout
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds a slog.Logger writing to w. Invalid levels fall back to
// info.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := l.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
