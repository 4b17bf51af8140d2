package intakekit

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultIgnorePatterns are skipped by drop-folder watching when no
// patterns are configured: hidden files and in-flight downloads
var DefaultIgnorePatterns = []string{".*", "*.tmp", "*.part", "*.crdownload"}

type Config struct {
	// Validation policy
	MaxFileSize  int64  `env:"INTAKE_MAX_FILE_SIZE,default:10485760"` // 10MB default
	AllowedTypes string `env:"INTAKE_ALLOWED_TYPES,default:image/"`  // comma-separated MIME prefixes

	// Simulated progress
	ProgressIntervalMS int `env:"INTAKE_PROGRESS_INTERVAL_MS,default:100"`
	ProgressStep       int `env:"INTAKE_PROGRESS_STEP,default:10"`

	// Banner lifetimes
	ErrorNoticeMS   int `env:"INTAKE_ERROR_NOTICE_MS,default:5000"`
	SuccessNoticeMS int `env:"INTAKE_SUCCESS_NOTICE_MS,default:3000"`

	// Preview
	PreviewMaxBytes int64 `env:"INTAKE_PREVIEW_MAX_BYTES,default:0"` // 0 = unlimited

	// Drop-folder watching
	IgnorePatterns string `env:"INTAKE_IGNORE_PATTERNS"` // comma-separated globs

	// Logging
	LogLevel string `env:"INTAKE_LOG_LEVEL,default:info"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigWithPrefix returns config loaded from environment variables
// carrying the given prefix instead of the default one
func GetConfigWithPrefix(prefix string) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Policy returns the validation policy described by the config
func (c *Config) Policy() Policy {
	return Policy{
		MaxFileSize:  c.MaxFileSize,
		AllowedTypes: splitList(c.AllowedTypes),
	}
}

// ProgressInterval returns the progress cadence
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMS) * time.Millisecond
}

// ErrorNoticeTTL returns how long error banners stay visible
func (c *Config) ErrorNoticeTTL() time.Duration {
	if c.ErrorNoticeMS <= 0 {
		return DefaultErrorNoticeTTL
	}
	return time.Duration(c.ErrorNoticeMS) * time.Millisecond
}

// SuccessNoticeTTL returns how long success banners stay visible
func (c *Config) SuccessNoticeTTL() time.Duration {
	if c.SuccessNoticeMS <= 0 {
		return DefaultSuccessNoticeTTL
	}
	return time.Duration(c.SuccessNoticeMS) * time.Millisecond
}

// Ignore returns the configured ignore globs, or DefaultIgnorePatterns
func (c *Config) Ignore() []string {
	if patterns := splitList(c.IgnorePatterns); len(patterns) > 0 {
		return patterns
	}
	return DefaultIgnorePatterns
}

// Level parses LogLevel, defaulting to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// LoadPolicyFile reads a YAML policy, starting from base so that fields
// missing from the file keep their configured values
func LoadPolicyFile(path string, base Policy) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read policy file: %w", err)
	}

	policy := base
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return base, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return policy, nil
}

func validateConfig(cfg *Config) error {
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max file size must not be negative: %d", cfg.MaxFileSize)
	}
	if cfg.ProgressIntervalMS <= 0 {
		return fmt.Errorf("progress interval must be positive: %d", cfg.ProgressIntervalMS)
	}
	if cfg.ProgressStep <= 0 || cfg.ProgressStep > 100 {
		return fmt.Errorf("progress step must be between 1 and 100: %d", cfg.ProgressStep)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
