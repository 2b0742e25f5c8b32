package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Navigation.StageTimeout != 15*time.Second {
		t.Errorf("StageTimeout = %v, want 15s", cfg.Navigation.StageTimeout)
	}
	if cfg.Navigation.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.Navigation.MaxRetries)
	}
	if cfg.Download.RetryAttempts != 2 {
		t.Errorf("RetryAttempts = %d, want 2", cfg.Download.RetryAttempts)
	}
	if cfg.Download.PolitenessDelay != time.Second {
		t.Errorf("PolitenessDelay = %v, want 1s", cfg.Download.PolitenessDelay)
	}
	if cfg.Download.MinDocumentSize != 1024 {
		t.Errorf("MinDocumentSize = %d, want 1024", cfg.Download.MinDocumentSize)
	}
	if !cfg.Portal.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.Download.StrictErrors {
		t.Error("StrictErrors should default to false")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("COURTSCRAPER_OUTPUT_DIR", "/tmp/cases")
	t.Setenv("COURTSCRAPER_LOG_LEVEL", "debug")
	t.Setenv("COURTSCRAPER_HEADLESS", "false")
	t.Setenv("COURTSCRAPER_MAX_RETRIES", "5")

	cfg := DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output.BaseDirectory != "/tmp/cases" {
		t.Errorf("BaseDirectory = %q", cfg.Output.BaseDirectory)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	if cfg.Portal.Headless {
		t.Error("Headless should be false")
	}
	if cfg.Navigation.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Navigation.MaxRetries)
	}
}

func TestLoadFromEnvIgnoresMalformedRetries(t *testing.T) {
	t.Setenv("COURTSCRAPER_MAX_RETRIES", "abc")

	cfg := DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Navigation.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want default 2", cfg.Navigation.MaxRetries)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
output:
  base_directory: /srv/court-docs
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.BaseDirectory != "/srv/court-docs" {
		t.Errorf("BaseDirectory = %q", cfg.Output.BaseDirectory)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
	// Untouched settings keep their defaults.
	if cfg.Navigation.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", cfg.Navigation.MaxRetries)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Portal.BaseURL = "" }},
		{"base url without trailing slash", func(c *Config) { c.Portal.BaseURL = "https://example.com/portal" }},
		{"zero stage timeout", func(c *Config) { c.Navigation.StageTimeout = 0 }},
		{"negative retries", func(c *Config) { c.Navigation.MaxRetries = -1 }},
		{"zero download timeout", func(c *Config) { c.Download.Timeout = 0 }},
		{"empty output dir", func(c *Config) { c.Output.BaseDirectory = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			test.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"output":        "/data/out",
		"headless":      false,
		"max-retries":   4,
		"strict-errors": true,
	})

	if cfg.Output.BaseDirectory != "/data/out" {
		t.Errorf("BaseDirectory = %q", cfg.Output.BaseDirectory)
	}
	if cfg.Portal.Headless {
		t.Error("Headless should be false")
	}
	if cfg.Navigation.MaxRetries != 4 {
		t.Errorf("MaxRetries = %d, want 4", cfg.Navigation.MaxRetries)
	}
	if !cfg.Download.StrictErrors {
		t.Error("StrictErrors should be true")
	}
}
