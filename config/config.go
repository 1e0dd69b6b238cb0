package config

import (
	"fmt"

	"github.com/kbukum/grangerbatch/batch"
	"github.com/kbukum/grangerbatch/logger"
	"github.com/kbukum/grangerbatch/validation"
)

// Config is the full configuration of the batch CLI. Values come from an
// optional config.yml, a .env file, and the process environment; command
// line flags override the batch section afterwards.
type Config struct {
	Name        string          `yaml:"name" mapstructure:"name"`
	Environment string          `yaml:"environment" mapstructure:"environment"`
	Version     string          `yaml:"version" mapstructure:"version"`
	Debug       bool            `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Batch       BatchConfig     `yaml:"batch" mapstructure:"batch"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// BatchConfig holds the analysis run settings.
type BatchConfig struct {
	// InputDir is the directory holding the source connectivity data.
	InputDir string `yaml:"input_dir" mapstructure:"input_dir"`
	// OutputDir is where analysis results are written.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	// MaxConcurrent bounds how many jobs run at once.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// Jobs preselects job types to run when no flags are given.
	Jobs []string `yaml:"jobs" mapstructure:"jobs"`
	// ManifestFile optionally points at a YAML manifest of extra job types.
	ManifestFile string `yaml:"manifest_file" mapstructure:"manifest_file"`
}

// TelemetryConfig controls OpenTelemetry trace and metric export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows plain HTTP export, which is what local collectors use.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0). Zero means 1.0.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults fills in missing values.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "grangerbatch"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Batch.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// ApplyDefaults fills in missing batch settings.
func (c *BatchConfig) ApplyDefaults() {
	if c.InputDir == "" {
		c.InputDir = "input"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = batch.DefaultConcurrency
	}
}

// ApplyDefaults fills in missing telemetry settings.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Validate checks the configuration, returning an INVALID_CONFIGURATION
// error describing every offending field.
func (c *Config) Validate() error {
	v := validation.New()
	v.Required("name", c.Name)
	v.Required("environment", c.Environment)
	v.OneOf("environment", c.Environment, []string{"development", "staging", "production"})
	v.Required("batch.input_dir", c.Batch.InputDir)
	v.Required("batch.output_dir", c.Batch.OutputDir)
	v.Min("batch.max_concurrent", c.Batch.MaxConcurrent, 1)
	if c.Telemetry.Enabled {
		v.Required("telemetry.endpoint", c.Telemetry.Endpoint)
		v.Custom(c.Telemetry.SampleRate >= 0 && c.Telemetry.SampleRate <= 1,
			"telemetry.sample_rate", "must be between 0.0 and 1.0")
	}
	if err := v.Validate(); err != nil {
		return err
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
