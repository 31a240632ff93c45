package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"index-observer/src/models"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, read after the optional .env file is loaded.
const (
	EnvDatasetPath  = "INDEX_OBSERVER_DATASET"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// AnchorLayout is the layout of anchor.date.
const AnchorLayout = "2006-01-02"

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config from a YAML file.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	return Parse(data)
}

// -----------------------------------------------------------------------------

// Parse builds a Config from YAML bytes. Defaults are applied before
// unmarshalling so explicit zero values in the file (enabled: false) survive.
func Parse(data []byte) (*Config, error) {
	var modelConfig models.MConfig
	if err := defaults.Set(&modelConfig); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// LoadDotEnv loads a .env file if present. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatasetPath); v != "" {
		c.Dataset.Path = v
	}
	if v := os.Getenv(EnvGeminiAPIKey); v != "" && c.Analysis.APIKey == "" {
		c.Analysis.APIKey = v
	}
	c.LogLevel = strings.ToUpper(c.LogLevel)
}

// -----------------------------------------------------------------------------

// Validate performs configuration validation
func (c *Config) Validate() error {
	if err := validator.New().Struct(c.MConfig); err != nil {
		return err
	}

	if _, err := c.AnchorDate(); err != nil {
		return fmt.Errorf("invalid anchor date '%s': %w", c.Anchor.Date, err)
	}

	if _, err := time.ParseDuration(c.Dataset.RequestTimeout); err != nil {
		return fmt.Errorf("invalid dataset request timeout '%s': %w", c.Dataset.RequestTimeout, err)
	}

	if c.DefaultRange != "" && !models.ParseRange(c.DefaultRange).IsKnown() {
		return fmt.Errorf("default range '%s' is not one of %v", c.DefaultRange, models.KnownRanges)
	}

	if c.Analysis.Enabled {
		if c.Analysis.APIKey == "" {
			return fmt.Errorf("analysis is enabled but no API key is set (analysis.api_key or %s)", EnvGeminiAPIKey)
		}
		if _, err := time.ParseDuration(c.Analysis.Timeout); err != nil {
			return fmt.Errorf("invalid analysis timeout '%s': %w", c.Analysis.Timeout, err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// AnchorDate returns the configured anchor as a UTC calendar date.
func (c *Config) AnchorDate() (time.Time, error) {
	return time.ParseInLocation(AnchorLayout, c.Anchor.Date, time.UTC)
}

// -----------------------------------------------------------------------------

// Range returns the configured default range selector.
func (c *Config) Range() models.MRange {
	if c.DefaultRange == "" {
		return models.Range1M
	}
	return models.ParseRange(c.DefaultRange)
}

// -----------------------------------------------------------------------------

// AnalysisTimeout returns the parsed analysis timeout.
func (c *Config) AnalysisTimeout() time.Duration {
	d, err := time.ParseDuration(c.Analysis.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// -----------------------------------------------------------------------------

// RequestTimeout returns the parsed timeout for remote dataset downloads.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Dataset.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
