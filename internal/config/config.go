package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/rules"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order by LoadDefault
var DefaultPaths = []string{
	".phpaudit.yaml",
	".phpaudit.yml",
	".github/phpaudit.yaml",
	".github/phpaudit.yml",
}

// Formats lists the supported report formats
var Formats = []string{"text", "json", "sarif"}

// Config represents the phpaudit.yaml configuration
type Config struct {
	DisabledChecks []string `yaml:"disabled_checks"`
	MinSeverity    string   `yaml:"min_severity,omitempty"`
	Format         string   `yaml:"format,omitempty"`
}

// LoadDefault loads the first configuration file found in DefaultPaths.
// Returns an empty config if none exists.
func LoadDefault() (*Config, error) {
	for _, path := range DefaultPaths {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return &Config{}, nil
}

// Load reads and validates the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks check IDs, severity and format values
func (c *Config) Validate() error {
	for _, id := range c.DisabledChecks {
		if _, ok := rules.Get(id); !ok {
			return fmt.Errorf("unknown check %q in disabled_checks", id)
		}
	}

	if c.MinSeverity != "" && !findings.ValidateSeverity(c.MinSeverity) {
		return fmt.Errorf("invalid min_severity: %s (must be critical, high, medium, or low)", c.MinSeverity)
	}

	if c.Format != "" && !ValidFormat(c.Format) {
		return fmt.Errorf("invalid format: %s (must be %s)", c.Format, strings.Join(Formats, "|"))
	}

	return nil
}

// IsDisabled checks if a check is disabled
func (c *Config) IsDisabled(id string) bool {
	for _, disabled := range c.DisabledChecks {
		if strings.EqualFold(strings.TrimSpace(disabled), id) {
			return true
		}
	}
	return false
}

// ValidFormat reports whether name is a supported report format
func ValidFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}
