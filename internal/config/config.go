// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Output configuration
	Output OutputConfig `yaml:"output"`

	// Scan configuration
	Scan ScanConfig `yaml:"scan"`

	// Limit configuration
	Limit LimitConfig `yaml:"limit"`

	// Security configuration
	Security SecurityConfig `yaml:"security"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// OutputConfig holds output rendering settings.
type OutputConfig struct {
	Path            string `envconfig:"REPOPACK_OUTPUT" yaml:"path"`
	Style           string `envconfig:"REPOPACK_STYLE" yaml:"style"`
	ShowLineNumbers bool   `envconfig:"REPOPACK_LINE_NUMBERS" yaml:"show_line_numbers"`
	CopyToClipboard bool   `envconfig:"REPOPACK_COPY" yaml:"copy_to_clipboard"`
	HeaderText      string `envconfig:"REPOPACK_HEADER_TEXT" yaml:"header_text"`
	IncludeSummary  bool   `envconfig:"REPOPACK_SUMMARY" yaml:"include_summary"`
	IncludeTree     bool   `envconfig:"REPOPACK_DIRECTORY_STRUCTURE" yaml:"include_directory_structure"`

	// Content transforms applied to each file before the line limit.
	RemoveComments   bool `envconfig:"REPOPACK_REMOVE_COMMENTS" yaml:"remove_comments"`
	RemoveEmptyLines bool `envconfig:"REPOPACK_REMOVE_EMPTY_LINES" yaml:"remove_empty_lines"`
}

// ScanConfig holds file discovery settings.
type ScanConfig struct {
	IncludePatterns  []string `yaml:"include_patterns"`
	IgnorePatterns   []string `yaml:"ignore_patterns"`
	UseGitignore     bool     `envconfig:"REPOPACK_USE_GITIGNORE" yaml:"use_gitignore"`
	UseDefaultIgnore bool     `envconfig:"REPOPACK_USE_DEFAULT_IGNORE" yaml:"use_default_ignore"`
	MaxFileSize      int64    `envconfig:"REPOPACK_MAX_FILE_SIZE" yaml:"max_file_size"` // bytes
	Workers          int      `envconfig:"REPOPACK_WORKERS" yaml:"workers"`
}

// LimitConfig holds line-limiting settings.
type LimitConfig struct {
	LineLimit            int  `envconfig:"REPOPACK_LINE_LIMIT" yaml:"line_limit"` // 0 = disabled
	PreserveStructure    bool `envconfig:"REPOPACK_PRESERVE_STRUCTURE" yaml:"preserve_structure"`
	TruncationIndicators bool `envconfig:"REPOPACK_TRUNCATION_INDICATORS" yaml:"truncation_indicators"`
	EnableCaching        bool `envconfig:"REPOPACK_PARSE_CACHE" yaml:"enable_caching"`
	CacheTTL             int  `envconfig:"REPOPACK_PARSE_CACHE_TTL" yaml:"cache_ttl"` // seconds
}

// SecurityConfig holds secret scanning settings.
type SecurityConfig struct {
	EnableCheck    bool     `envconfig:"REPOPACK_SECURITY_CHECK" yaml:"enable_check"`
	ExcludePattern []string `yaml:"exclude_patterns"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"REPOPACK_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"REPOPACK_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from environment variables and optional config file.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Set defaults first
	setDefaults(cfg)

	// Load from YAML file if provided (overrides defaults)
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Output = OutputConfig{
		Path:           "repopack-output.xml",
		Style:          "xml",
		IncludeSummary: true,
		IncludeTree:    true,
	}

	cfg.Scan = ScanConfig{
		UseGitignore:     true,
		UseDefaultIgnore: true,
		MaxFileSize:      50 * 1024 * 1024,
		Workers:          4,
	}

	cfg.Limit = LimitConfig{
		LineLimit:            0,
		PreserveStructure:    true,
		TruncationIndicators: true,
		EnableCaching:        true,
		CacheTTL:             300,
	}

	cfg.Security = SecurityConfig{
		EnableCheck: true,
	}

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	// Output validation
	validStyles := map[string]bool{"xml": true, "markdown": true, "plain": true, "json": true}
	if !validStyles[c.Output.Style] {
		errs = append(errs, fmt.Sprintf("invalid output style: %s (must be xml, markdown, plain, or json)", c.Output.Style))
	}

	// Scan validation
	if c.Scan.MaxFileSize < 1 {
		errs = append(errs, "max_file_size must be positive")
	}

	if c.Scan.Workers < 1 {
		errs = append(errs, "workers must be positive")
	}

	// Limit validation
	if c.Limit.LineLimit < 0 {
		errs = append(errs, "line_limit must not be negative")
	}

	if c.Limit.CacheTTL < 0 {
		errs = append(errs, "cache_ttl must not be negative")
	}

	// Log validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// LimitEnabled returns true when a line limit should be applied.
func (c *Config) LimitEnabled() bool {
	return c.Limit.LineLimit > 0
}

// CacheTTLDuration returns the parse cache TTL as a duration.
func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.Limit.CacheTTL) * time.Second
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Log.Level == "debug"
}
