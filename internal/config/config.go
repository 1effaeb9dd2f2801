// Package config provides configuration types, defaults, and persistence for vimotion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/vimotion/internal/log"
	"github.com/zjrosen/vimotion/internal/motion"
	"github.com/zjrosen/vimotion/internal/textscan"
	"github.com/zjrosen/vimotion/internal/tracing"
)

// Config holds all configuration options for vimotion.
type Config struct {
	Motion  MotionConfig   `mapstructure:"motion"`
	Log     LogConfig      `mapstructure:"log"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// MotionConfig tunes motion resolution.
type MotionConfig struct {
	TabWidth    int           `mapstructure:"tab_width"`     // Tab stop used to measure indentation (1-16)
	IndentMode  string        `mapstructure:"indent_mode"`   // "same" (default) or "nested"
	TagCacheTTL time.Duration `mapstructure:"tag_cache_ttl"` // How long parsed markup is reused; 0 disables
}

// LogConfig holds debug log options. Logging itself is enabled by --debug.
type LogConfig struct {
	Level string `mapstructure:"level"` // "debug" (default), "info", "warn", "error"
	Path  string `mapstructure:"path"`  // Log file; default debug.log in the working directory
}

const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/vimotion/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vimotion", "traces", "traces.jsonl")
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		Motion: MotionConfig{
			TabWidth:    4,
			IndentMode:  textscan.IndentSame.String(),
			TagCacheTTL: 0,
		},
		Log: LogConfig{
			Level: "debug",
			Path:  "debug.log",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks every section of cfg.
func Validate(cfg Config) error {
	if err := ValidateMotion(cfg.Motion); err != nil {
		return err
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateMotion checks motion configuration for errors.
func ValidateMotion(m MotionConfig) error {
	if m.TabWidth < MinTabWidth || m.TabWidth > MaxTabWidth {
		return fmt.Errorf("motion.tab_width must be between %d and %d, got %d", MinTabWidth, MaxTabWidth, m.TabWidth)
	}
	if _, ok := textscan.ParseIndentMode(m.IndentMode); !ok {
		return fmt.Errorf("motion.indent_mode must be \"same\" or \"nested\", got %q", m.IndentMode)
	}
	if m.TagCacheTTL < 0 {
		return fmt.Errorf("motion.tag_cache_ttl must not be negative, got %s", m.TagCacheTTL)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" {
		switch t.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if t.Enabled {
		if t.Exporter == "file" && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == "otlp" && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// MotionOptions converts the motion section into resolver options. The
// config is assumed valid; an unknown indent mode falls back to same.
func (c Config) MotionOptions() motion.Options {
	mode, ok := textscan.ParseIndentMode(c.Motion.IndentMode)
	if !ok {
		mode = textscan.IndentSame
	}
	return motion.Options{TabWidth: c.Motion.TabWidth, IndentMode: mode}
}

// TracingConfig returns the tracing section with a default file path
// filled in.
func (c Config) TracingConfig() tracing.Config {
	t := c.Tracing
	if t.FilePath == "" {
		t.FilePath = DefaultTracesFilePath()
	}
	return t
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# vimotion configuration

motion:
  tab_width: 4          # Tab stop used when measuring indentation (1-16)
  indent_mode: same     # "same": ii selects lines at the cursor's level
                        # "nested": ii also takes deeper-indented lines
  tag_cache_ttl: 0s     # Set e.g. 5m to reuse parsed markup for unchanged
                        # documents; 0s parses on every resolution

# Debug log, written only with --debug or VIMOTION_DEBUG=1
log:
  level: debug          # debug, info, warn, error
  path: debug.log

# OpenTelemetry tracing of motion resolution
tracing:
  enabled: false
  exporter: file        # none, file, stdout, otlp
  # file_path: ~/.config/vimotion/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
