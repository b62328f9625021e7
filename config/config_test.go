package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/c360studio/semshacl/validation"
	"github.com/c360studio/semshacl/vocabulary/sh"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Validation.MaxDepth != 50 {
		t.Errorf("expected default max depth 50, got %d", cfg.Validation.MaxDepth)
	}
	if cfg.Validation.MaxResults != 10000 {
		t.Errorf("expected default max results 10000, got %d", cfg.Validation.MaxResults)
	}
	if cfg.Validation.SeverityThreshold != "info" {
		t.Errorf("expected default severity threshold info, got %s", cfg.Validation.SeverityThreshold)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected default output format text, got %s", cfg.Output.Format)
	}
	if cfg.Service.SubjectPrefix != "shacl" {
		t.Errorf("expected default subject prefix shacl, got %s", cfg.Service.SubjectPrefix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "zero max depth",
			modify:  func(c *Config) { c.Validation.MaxDepth = 0 },
			wantErr: true,
		},
		{
			name:    "negative max results",
			modify:  func(c *Config) { c.Validation.MaxResults = -1 },
			wantErr: true,
		},
		{
			name:    "zero workers",
			modify:  func(c *Config) { c.Validation.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "unknown severity threshold",
			modify:  func(c *Config) { c.Validation.SeverityThreshold = "fatal" },
			wantErr: true,
		},
		{
			name:    "unknown recursion policy",
			modify:  func(c *Config) { c.Validation.OnRecursion = "panic" },
			wantErr: true,
		},
		{
			name:    "unknown output format",
			modify:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "empty subject prefix",
			modify:  func(c *Config) { c.Service.SubjectPrefix = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
validation:
  max_depth: 25
  max_results: 500
  workers: 8
  severity_threshold: warning
  on_recursion: warn
shapes:
  strict: true
  paths:
    - shapes/*.ttl
output:
  format: json
service:
  url: "nats://test:4222"
  subject_prefix: validator
  metrics_addr: ":9102"
  request_timeout: 10s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Validation.MaxDepth != 25 {
		t.Errorf("expected max depth 25, got %d", cfg.Validation.MaxDepth)
	}
	if cfg.Validation.SeverityThreshold != "warning" {
		t.Errorf("expected severity threshold warning, got %s", cfg.Validation.SeverityThreshold)
	}
	if !cfg.Shapes.Strict {
		t.Error("expected strict shapes parsing")
	}
	if len(cfg.Shapes.Paths) != 1 || cfg.Shapes.Paths[0] != "shapes/*.ttl" {
		t.Errorf("expected shapes paths [shapes/*.ttl], got %v", cfg.Shapes.Paths)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected output format json, got %s", cfg.Output.Format)
	}
	if cfg.Service.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.Service.URL)
	}
	if cfg.Service.RequestTimeout != 10*time.Second {
		t.Errorf("expected request timeout 10s, got %v", cfg.Service.RequestTimeout)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Validation: ValidationConfig{
			MaxDepth:          10,
			SeverityThreshold: "violation",
		},
		Output: OutputConfig{
			Format: "turtle",
		},
	}

	base.Merge(override)

	if base.Validation.MaxDepth != 10 {
		t.Errorf("expected max depth 10, got %d", base.Validation.MaxDepth)
	}
	if base.Validation.SeverityThreshold != "violation" {
		t.Errorf("expected severity threshold violation, got %s", base.Validation.SeverityThreshold)
	}
	// MaxResults should remain from base since override didn't set it
	if base.Validation.MaxResults != 10000 {
		t.Errorf("expected max results to remain default, got %d", base.Validation.MaxResults)
	}
	if base.Output.Format != "turtle" {
		t.Errorf("expected output format turtle, got %s", base.Output.Format)
	}
	if base.Service.SubjectPrefix != "shacl" {
		t.Errorf("expected subject prefix to remain default, got %s", base.Service.SubjectPrefix)
	}
}

func TestValidatorOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Validation.SeverityThreshold = "warning"
	cfg.Validation.OnRecursion = "warn"

	opts := cfg.ValidatorOptions()

	if opts.MaxDepth != 50 {
		t.Errorf("expected max depth 50, got %d", opts.MaxDepth)
	}
	if opts.SeverityThreshold != sh.Warning {
		t.Errorf("expected severity threshold %s, got %s", sh.Warning, opts.SeverityThreshold)
	}
	if opts.RecursionPolicy != validation.RecursionWarn {
		t.Errorf("expected recursion policy warn, got %v", opts.RecursionPolicy)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.Format = "jsonld"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Output.Format != "jsonld" {
		t.Errorf("expected output format jsonld, got %s", loaded.Output.Format)
	}
}
