// Package config provides configuration loading and management for semnif.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/semnif/export"
	ssconfig "github.com/c360studio/semstreams/config"
	"gopkg.in/yaml.v3"
)

// Config represents the complete semnif configuration
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Input   InputConfig   `yaml:"input"`
	NATS    NATSConfig    `yaml:"nats"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ExportConfig configures rendering
type ExportConfig struct {
	// Format is the output syntax (rdfxml, ntriples, turtle)
	Format string `yaml:"format"`
	// Output is the file to write (empty = stdout)
	Output string `yaml:"output"`
}

// InputConfig configures record file discovery
type InputConfig struct {
	// Patterns are file paths or doublestar globs of record files
	Patterns []string `yaml:"patterns"`
	// Debounce is how long watch mode waits for further changes
	Debounce time.Duration `yaml:"debounce"`
}

// NATSConfig configures the NATS connection for serve mode
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// InputSubject carries annotation batches
	InputSubject string `yaml:"input_subject"`
	// OutputSubject receives serialized documents
	OutputSubject string `yaml:"output_subject"`
	// QueueGroup load-balances batches across instances (empty = none)
	QueueGroup string `yaml:"queue_group"`
	// IngestSubject receives one graph entity message per subject (empty = off)
	IngestSubject string `yaml:"ingest_subject"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Export: ExportConfig{
			Format: string(export.FormatTurtle),
		},
		Input: InputConfig{
			Debounce: 200 * time.Millisecond,
		},
		NATS: NATSConfig{
			URL:           "nats://127.0.0.1:4222",
			InputSubject:  "annotation.batch",
			OutputSubject: "annotation.export.rdf",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if c.Input.Debounce < 0 {
		return fmt.Errorf("input.debounce must not be negative")
	}
	if c.NATS.InputSubject == "" {
		return fmt.Errorf("nats.input_subject is required")
	}
	if c.NATS.OutputSubject == "" {
		return fmt.Errorf("nats.output_subject is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Format returns the parsed export format. Call Validate first.
func (c *Config) Format() export.Format {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.FormatTurtle
	}
	return f
}

// LoadFromFile loads configuration from a YAML file. Environment references
// of the form ${VAR} and ${VAR:-default} are expanded before parsing.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := ssconfig.ExpandEnvWithDefaults(string(data))

	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Output != "" {
		c.Export.Output = other.Export.Output
	}

	// Input
	if len(other.Input.Patterns) > 0 {
		c.Input.Patterns = other.Input.Patterns
	}
	if other.Input.Debounce != 0 {
		c.Input.Debounce = other.Input.Debounce
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.InputSubject != "" {
		c.NATS.InputSubject = other.NATS.InputSubject
	}
	if other.NATS.OutputSubject != "" {
		c.NATS.OutputSubject = other.NATS.OutputSubject
	}
	if other.NATS.QueueGroup != "" {
		c.NATS.QueueGroup = other.NATS.QueueGroup
	}
	if other.NATS.IngestSubject != "" {
		c.NATS.IngestSubject = other.NATS.IngestSubject
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// Metrics
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
