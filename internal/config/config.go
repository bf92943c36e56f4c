package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/leaksplit/leaksplit/internal/filter"
	"github.com/leaksplit/leaksplit/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "leaksplit"

	// DefaultFormat prints one fingerprint per line.
	DefaultFormat = "text"

	// DefaultLogFormat writes human-readable diagnostics.
	DefaultLogFormat = "text"

	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "LEAKSPLIT_"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options for leaksplit.
// It is populated from defaults, a configuration file, the environment and
// CLI flags, in that order, and then passed through the application.
type Config struct {
	// ReportPath is the gitleaks JSON report to split.
	// It always comes from the positional argument.
	ReportPath string `koanf:"-" yaml:"-"`

	// Unique selects the unique group instead of the duplicate group.
	Unique bool `koanf:"unique" yaml:"unique"`

	// Format is the output format name: text, json or markdown.
	Format string `koanf:"format" yaml:"format"`

	// KeepOrder disables fingerprint sorting in text output.
	KeepOrder bool `koanf:"keep_order" yaml:"keep_order"`

	// Summary adds per-rule counts to Markdown output.
	Summary bool `koanf:"summary" yaml:"summary"`

	// Filter restricts the findings that take part in the split.
	Filter filter.Filter `koanf:"filter" yaml:"filter"`

	// Verbose enables debug log output.
	Verbose bool `koanf:"verbose" yaml:"verbose"`

	// Quiet limits log output to warnings and errors.
	Quiet bool `koanf:"quiet" yaml:"quiet"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format" yaml:"log_format"`

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string `koanf:"-" yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:    DefaultFormat,
		LogFormat: DefaultLogFormat,
	}
}

// Group returns the group selected by the configuration.
func (c *Config) Group() model.Group {
	if c.Unique {
		return model.GroupUnique
	}
	return model.GroupDuplicates
}

// OutputFormat parses Format.
func (c *Config) OutputFormat() (model.Format, error) {
	f, err := model.ParseFormat(c.Format)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return f, nil
}

// XDGConfigDir returns the XDG config directory for leaksplit.
// On Linux: ~/.config/leaksplit
// On macOS: ~/Library/Application Support/leaksplit
// On Windows: %APPDATA%\leaksplit
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the configuration file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), XDGConfigFileName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.ReportPath == "" {
		return ErrNoReport
	}

	if _, err := c.OutputFormat(); err != nil {
		return err
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	if c.Verbose && c.Quiet {
		return ErrConflictingVerbosity
	}

	return c.Filter.Validate()
}
