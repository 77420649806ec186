// Package config loads focuskit tool configuration from YAML.
package config

import (
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	fkerrors "github.com/odvcencio/focuskit/pkg/errors"
)

// Default configuration values exported for documentation and validation
const (
	DefaultLogLevel   = "info"
	DefaultLayoutFile = "layout.yaml"
)

// Config is the tool configuration for focuskit hosts such as the demo.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Tracing enables the stdout OpenTelemetry exporter.
	Tracing bool `yaml:"tracing"`

	// LayoutFile is the YAML document layout loaded by the demo.
	LayoutFile string `yaml:"layout_file"`
}

// Default returns a config populated with defaults.
func Default() *Config {
	return &Config{
		LogLevel:   DefaultLogLevel,
		LayoutFile: DefaultLayoutFile,
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
// A missing file yields the defaults without an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fkerrors.Wrap(err, fkerrors.ErrCodeConfigLoad, "reading config file").
			WithContext("path", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fkerrors.Wrap(err, fkerrors.ErrCodeConfigParse, "parsing config file").
			WithContext("path", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fkerrors.New(fkerrors.ErrCodeConfigInvalid, "unknown log level").
			WithContext("log_level", c.LogLevel)
	}
	if c.LayoutFile == "" {
		return fkerrors.New(fkerrors.ErrCodeConfigInvalid, "layout_file must not be empty")
	}
	return nil
}

// SlogLevel maps the configured level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
