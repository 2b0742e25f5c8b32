package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the court records scraper.
type Config struct {
	Portal     PortalConfig     `yaml:"portal" json:"portal"`
	Navigation NavigationConfig `yaml:"navigation" json:"navigation"`
	Download   DownloadConfig   `yaml:"download" json:"download"`
	Output     OutputConfig     `yaml:"output" json:"output"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
}

// PortalConfig holds portal and browser settings.
type PortalConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
	Headless  bool   `yaml:"headless" json:"headless"`
}

// NavigationConfig holds the timing of the portal navigation sequence.
type NavigationConfig struct {
	// StageTimeout bounds each navigation wait.
	StageTimeout time.Duration `yaml:"stage_timeout" json:"stage_timeout"`
	// ShortStageTimeout bounds lighter page transitions.
	ShortStageTimeout time.Duration `yaml:"short_stage_timeout" json:"short_stage_timeout"`
	// MaxRetries is the number of additional full-sequence attempts after
	// the first one fails.
	MaxRetries int `yaml:"max_retries" json:"max_retries"`
	// RetryCooldown separates attempts so the portal is not hammered.
	RetryCooldown time.Duration `yaml:"retry_cooldown" json:"retry_cooldown"`
}

// DownloadConfig holds document fetch settings.
type DownloadConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// RetryAttempts is the number of extra fetch attempts per document.
	RetryAttempts int           `yaml:"retry_attempts" json:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay" json:"retry_delay"`
	// PolitenessDelay is applied between documents regardless of outcome.
	PolitenessDelay time.Duration `yaml:"politeness_delay" json:"politeness_delay"`
	// MinDocumentSize is the byte threshold below which a payload is
	// treated as a likely error page.
	MinDocumentSize int `yaml:"min_document_size" json:"min_document_size"`
	// StrictErrors tightens the classifier: ambiguous HTML payloads
	// become errors instead of defaulting to secured.
	StrictErrors bool `yaml:"strict_errors" json:"strict_errors"`
}

// OutputConfig holds output directory settings.
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	WriteManifest bool   `yaml:"write_manifest" json:"write_manifest"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config with the portal's expected defaults.
func DefaultConfig() *Config {
	return &Config{
		Portal: PortalConfig{
			BaseURL:   "https://publicaccess.galvestoncountytx.gov/PublicAccess/",
			UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Headless:  true,
		},
		Navigation: NavigationConfig{
			StageTimeout:      15 * time.Second,
			ShortStageTimeout: 10 * time.Second,
			MaxRetries:        2,
			RetryCooldown:     2 * time.Second,
		},
		Download: DownloadConfig{
			Timeout:         30 * time.Second,
			RetryAttempts:   2,
			RetryDelay:      2 * time.Second,
			PolitenessDelay: 1 * time.Second,
			MinDocumentSize: 1024,
			StrictErrors:    false,
		},
		Output: OutputConfig{
			BaseDirectory: "./downloads",
			WriteManifest: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv overrides configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("COURTSCRAPER_BASE_URL"); baseURL != "" {
		c.Portal.BaseURL = baseURL
	}
	if userAgent := os.Getenv("COURTSCRAPER_USER_AGENT"); userAgent != "" {
		c.Portal.UserAgent = userAgent
	}
	if headless := os.Getenv("COURTSCRAPER_HEADLESS"); headless != "" {
		c.Portal.Headless = strings.ToLower(headless) != "false"
	}
	if retries := os.Getenv("COURTSCRAPER_MAX_RETRIES"); retries != "" {
		if val, err := strconv.Atoi(retries); err == nil && val >= 0 {
			c.Navigation.MaxRetries = val
		}
	}
	if outputDir := os.Getenv("COURTSCRAPER_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if logLevel := os.Getenv("COURTSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. An empty path falls
// back to the standard locations; a missing file is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// findConfigFile searches the standard config locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".courtscraper.yaml",
		".courtscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "courtscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".courtscraper.yaml"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	var errs []error

	if c.Portal.BaseURL == "" {
		errs = append(errs, errors.New("portal base URL is required"))
	}
	if !strings.HasSuffix(c.Portal.BaseURL, "/") {
		errs = append(errs, errors.New("portal base URL must end with a slash"))
	}
	if c.Navigation.StageTimeout <= 0 {
		errs = append(errs, errors.New("navigation stage timeout must be positive"))
	}
	if c.Navigation.ShortStageTimeout <= 0 {
		errs = append(errs, errors.New("navigation short stage timeout must be positive"))
	}
	if c.Navigation.MaxRetries < 0 {
		errs = append(errs, errors.New("navigation max retries cannot be negative"))
	}
	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.Download.RetryAttempts < 0 {
		errs = append(errs, errors.New("download retry attempts cannot be negative"))
	}
	if c.Download.PolitenessDelay < 0 {
		errs = append(errs, errors.New("politeness delay cannot be negative"))
	}
	if c.Download.MinDocumentSize < 0 {
		errs = append(errs, errors.New("minimum document size cannot be negative"))
	}
	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// MergeCommandLineFlags merges CLI flag values into the configuration.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Portal.Headless = headless
	}
	if maxRetries, ok := flags["max-retries"].(int); ok && maxRetries >= 0 {
		c.Navigation.MaxRetries = maxRetries
	}
	if strict, ok := flags["strict-errors"].(bool); ok {
		c.Download.StrictErrors = strict
	}
	if manifest, ok := flags["manifest"].(bool); ok {
		c.Output.WriteManifest = manifest
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load builds the configuration from all sources. Precedence:
// flags > environment (including .env) > config file > defaults.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".courtscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}
