// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ValentineStone/cjc/internal/interp"
	"github.com/ValentineStone/cjc/internal/payload"

	"github.com/charmbracelet/log"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LogLevelDebug logs every bootstrap step.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs the launch summary.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs child failures and worse.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs launch failures only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the palette for rendered output.
	ColorScheme string

	// LogLevel is the minimum severity written to the log sink.
	LogLevel string

	// InvalidConfigError collects every field-level problem found by Validate.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// LogConfig controls internal diagnostics. The launcher is silent unless
	// Verbose is set (stderr) or File names a log file.
	LogConfig struct {
		Verbose bool     `json:"verbose" yaml:"verbose" toml:"verbose" mapstructure:"verbose"`
		File    string   `json:"file" yaml:"file" toml:"file" mapstructure:"file"`
		Level   LogLevel `json:"level" yaml:"level" toml:"level" mapstructure:"level"`
	}

	// UIConfig configures rendered CLI output.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" yaml:"color_scheme" toml:"color_scheme" mapstructure:"color_scheme"`
	}

	// Config holds the launcher configuration.
	Config struct {
		// Interpreters is the ordered candidate list; the last entry is the unprobed fallback.
		Interpreters []string `json:"interpreters" yaml:"interpreters" toml:"interpreters" mapstructure:"interpreters"`
		// ProbeArgs are passed to each probed candidate.
		ProbeArgs []string `json:"probe_args" yaml:"probe_args" toml:"probe_args" mapstructure:"probe_args"`
		// ChunkSize is the forwarding unit in bytes.
		ChunkSize int `json:"chunk_size" yaml:"chunk_size" toml:"chunk_size" mapstructure:"chunk_size"`
		// ScriptPath replaces the bundled script when non-empty.
		ScriptPath string `json:"script_path" yaml:"script_path" toml:"script_path" mapstructure:"script_path"`
		// Strict propagates launch failures and child exit codes.
		Strict bool `json:"strict" yaml:"strict" toml:"strict" mapstructure:"strict"`
		// Log configures internal diagnostics.
		Log LogConfig `json:"log" yaml:"log" toml:"log" mapstructure:"log"`
		// UI configures rendered output.
		UI UIConfig `json:"ui" yaml:"ui" toml:"ui" mapstructure:"ui"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Interpreters: []string{"python3", "python"},
		ProbeArgs:    interp.DefaultProbeArgs(),
		ChunkSize:    int(payload.DefaultChunkSize),
		ScriptPath:   "",
		Strict:       false,
		Log: LogConfig{
			Verbose: false,
			File:    "",
			Level:   LogLevelInfo,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// Validate checks the configuration, including values that arrived through
// environment overrides and so bypassed the CUE schema.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Candidates(); err != nil {
		errs = append(errs, fmt.Errorf("interpreters: %w", err))
	}
	if err := payload.ChunkSize(c.ChunkSize).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chunk_size: %w", err))
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Candidates parses Interpreters into interpreter candidates.
func (c *Config) Candidates() ([]interp.Candidate, error) {
	return interp.ParseCandidates(c.Interpreters)
}

// Validate returns an error if the color scheme is not recognized.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, string(s))
	}
}

// GlamourStyle returns the glamour style name for this scheme.
func (s ColorScheme) GlamourStyle() string {
	switch s {
	case ColorSchemeDark:
		return "dark"
	case ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// Validate returns an error if the log level is not recognized.
func (l LogLevel) Validate() error {
	_, err := l.Level()
	return err
}

// Level converts to a charmbracelet/log level. The empty level means info.
func (l LogLevel) Level() (log.Level, error) {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel, nil
	case LogLevelInfo, "":
		return log.InfoLevel, nil
	case LogLevelWarn:
		return log.WarnLevel, nil
	case LogLevelError:
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, string(l))
	}
}
