package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all generation options. Values are resolved in order:
// built-in defaults, SPOKEDOC_* environment variables, an optional YAML
// config file, then explicit parameters; later sources win.
type Config struct {
	// SinglePage, when set, collects every requested file's services into
	// one page with this name instead of emitting one page per file.
	SinglePage string `yaml:"single_page"`

	// TemplatePath points at a custom page template. Empty selects the
	// built-in template.
	TemplatePath string `yaml:"template"`

	// OutputDir is where the standalone CLI writes pages. The protoc plugin
	// ignores it; protoc owns output placement.
	OutputDir string `yaml:"output_dir"`

	// LogLevel is a logrus level name. Diagnostics always go to stderr.
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config seeded from environment variables.
func Default() *Config {
	return &Config{
		SinglePage:   getEnv("SPOKEDOC_SINGLE_PAGE", ""),
		TemplatePath: getEnv("SPOKEDOC_TEMPLATE", ""),
		OutputDir:    getEnv("SPOKEDOC_OUTPUT_DIR", "."),
		LogLevel:     getEnv("SPOKEDOC_LOG_LEVEL", "info"),
	}
}

// FromParameter builds a Config from a protoc plugin parameter string, a
// comma-separated key=value list. A bare value without '=' names the single
// combined page, which is how earlier releases took their only option.
func FromParameter(param string) (*Config, error) {
	cfg := Default()
	for _, part := range strings.Split(param, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			cfg.SinglePage = key
			continue
		}
		switch key {
		case "single_page":
			cfg.SinglePage = value
		case "template":
			cfg.TemplatePath = value
		case "log_level":
			cfg.LogLevel = value
		case "config":
			if err := cfg.MergeFile(value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown parameter: %s", key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeFile overlays values from a YAML file onto the config. Only keys
// present in the file override.
func (c *Config) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
