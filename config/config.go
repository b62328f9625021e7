// Package config provides configuration loading and management for semshacl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semshacl/validation"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

// Config represents the complete semshacl configuration
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Shapes     ShapesConfig     `yaml:"shapes"`
	Output     OutputConfig     `yaml:"output"`
	Service    ServiceConfig    `yaml:"service"`
}

// ValidationConfig configures the validation engine
type ValidationConfig struct {
	// MaxDepth is the maximum shape nesting depth before validation aborts
	MaxDepth int `yaml:"max_depth"`
	// MaxResults caps the number of results collected in a single run
	MaxResults int `yaml:"max_results"`
	// Workers is the number of concurrent validation workers
	Workers int `yaml:"workers"`
	// SeverityThreshold is the lowest severity that fails validation
	// ("info", "warning" or "violation")
	SeverityThreshold string `yaml:"severity_threshold"`
	// OnRecursion selects how recursive shape references are handled
	// ("conform" treats them as passing, "warn" emits an info result)
	OnRecursion string `yaml:"on_recursion"`
}

// ShapesConfig configures shapes graph parsing
type ShapesConfig struct {
	// Strict rejects shapes graphs containing unknown sh: parameters
	Strict bool `yaml:"strict"`
	// Paths are default shapes files used when none are given on the command line
	Paths []string `yaml:"paths"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	// Format is the default report format ("text", "json", "turtle" or "jsonld")
	Format string `yaml:"format"`
}

// ServiceConfig configures the NATS validation service
type ServiceConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// SubjectPrefix prefixes the service subjects (default "shacl")
	SubjectPrefix string `yaml:"subject_prefix"`
	// MetricsAddr is the listen address for the Prometheus metrics endpoint
	// (empty = metrics disabled)
	MetricsAddr string `yaml:"metrics_addr"`
	// ShapesBucket is the NATS KV bucket for registered shapes graphs
	// (empty = registry disabled)
	ShapesBucket string `yaml:"shapes_bucket"`
	// RequestTimeout bounds a single validation request
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			MaxDepth:          50,
			MaxResults:        10000,
			Workers:           4,
			SeverityThreshold: "info",
			OnRecursion:       "conform",
		},
		Shapes: ShapesConfig{
			Strict: false,
			Paths:  nil,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Service: ServiceConfig{
			URL:            "nats://localhost:4222",
			SubjectPrefix:  "shacl",
			MetricsAddr:    "",
			RequestTimeout: 30 * time.Second,
		},
	}
}

var severityIRIs = map[string]string{
	"info":      sh.Info,
	"warning":   sh.Warning,
	"violation": sh.Violation,
}

var recursionPolicies = map[string]validation.RecursionPolicy{
	"conform": validation.RecursionConform,
	"warn":    validation.RecursionWarn,
}

var outputFormats = map[string]bool{
	"text":   true,
	"json":   true,
	"turtle": true,
	"jsonld": true,
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Validation.MaxDepth <= 0 {
		return fmt.Errorf("validation.max_depth must be positive")
	}
	if c.Validation.MaxResults <= 0 {
		return fmt.Errorf("validation.max_results must be positive")
	}
	if c.Validation.Workers <= 0 {
		return fmt.Errorf("validation.workers must be positive")
	}
	if _, ok := severityIRIs[c.Validation.SeverityThreshold]; !ok {
		return fmt.Errorf("validation.severity_threshold must be info, warning or violation")
	}
	if _, ok := recursionPolicies[c.Validation.OnRecursion]; !ok {
		return fmt.Errorf("validation.on_recursion must be conform or warn")
	}
	if !outputFormats[c.Output.Format] {
		return fmt.Errorf("output.format must be text, json, turtle or jsonld")
	}
	if c.Service.SubjectPrefix == "" {
		return fmt.Errorf("service.subject_prefix is required")
	}
	return nil
}

// ValidatorOptions translates the validation section into engine options.
func (c *Config) ValidatorOptions() validation.Options {
	return validation.Options{
		MaxDepth:          c.Validation.MaxDepth,
		MaxResults:        c.Validation.MaxResults,
		Workers:           c.Validation.Workers,
		SeverityThreshold: severityIRIs[c.Validation.SeverityThreshold],
		RecursionPolicy:   recursionPolicies[c.Validation.OnRecursion],
	}
}

// LoadFromFile loads configuration from a YAML file
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

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
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

	// Validation
	if other.Validation.MaxDepth != 0 {
		c.Validation.MaxDepth = other.Validation.MaxDepth
	}
	if other.Validation.MaxResults != 0 {
		c.Validation.MaxResults = other.Validation.MaxResults
	}
	if other.Validation.Workers != 0 {
		c.Validation.Workers = other.Validation.Workers
	}
	if other.Validation.SeverityThreshold != "" {
		c.Validation.SeverityThreshold = other.Validation.SeverityThreshold
	}
	if other.Validation.OnRecursion != "" {
		c.Validation.OnRecursion = other.Validation.OnRecursion
	}

	// Shapes
	if other.Shapes.Strict {
		c.Shapes.Strict = true
	}
	if len(other.Shapes.Paths) > 0 {
		c.Shapes.Paths = other.Shapes.Paths
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	// Service
	if other.Service.URL != "" {
		c.Service.URL = other.Service.URL
	}
	if other.Service.SubjectPrefix != "" {
		c.Service.SubjectPrefix = other.Service.SubjectPrefix
	}
	if other.Service.MetricsAddr != "" {
		c.Service.MetricsAddr = other.Service.MetricsAddr
	}
	if other.Service.ShapesBucket != "" {
		c.Service.ShapesBucket = other.Service.ShapesBucket
	}
	if other.Service.RequestTimeout != 0 {
		c.Service.RequestTimeout = other.Service.RequestTimeout
	}
}
