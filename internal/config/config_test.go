package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/leaksplit/leaksplit/internal/filter"
	"github.com/leaksplit/leaksplit/internal/model"
)

// noEnv is an empty environment for Load.
func noEnv() []string { return nil }

// writeFile writes content to name inside a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestNewConfig verifies that NewConfig returns the documented defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Format is text", func(t *testing.T) {
		t.Parallel()
		if cfg.Format != "text" {
			t.Errorf("expected Format to be 'text', got '%s'", cfg.Format)
		}
	})

	t.Run("default LogFormat is text", func(t *testing.T) {
		t.Parallel()
		if cfg.LogFormat != "text" {
			t.Errorf("expected LogFormat to be 'text', got '%s'", cfg.LogFormat)
		}
	})

	t.Run("default group is duplicates", func(t *testing.T) {
		t.Parallel()
		if cfg.Group() != model.GroupDuplicates {
			t.Errorf("expected duplicates group, got %v", cfg.Group())
		}
	})

	t.Run("default filter is empty", func(t *testing.T) {
		t.Parallel()
		if !cfg.Filter.IsEmpty() {
			t.Error("expected empty filter")
		}
	})
}

// TestConfigValidate tests the Validate method.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.ReportPath = "report.json"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "valid config returns nil",
			modify: func(*Config) {},
		},
		{
			name:   "markdown format is valid",
			modify: func(c *Config) { c.Format = "markdown" },
		},
		{
			name:   "json log format is valid",
			modify: func(c *Config) { c.LogFormat = "json" },
		},
		{
			name:    "missing report",
			modify:  func(c *Config) { c.ReportPath = "" },
			wantErr: ErrNoReport,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Format = "xml" },
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.LogFormat = "logfmt" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name: "verbose and quiet together",
			modify: func(c *Config) {
				c.Verbose = true
				c.Quiet = true
			},
			wantErr: ErrConflictingVerbosity,
		},
		{
			name:    "malformed filter pattern",
			modify:  func(c *Config) { c.Filter.IncludePaths = []string{"src/[a-"} },
			wantErr: filter.ErrBadPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigGroupAndFormat tests the derived enum accessors.
func TestConfigGroupAndFormat(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Unique = true
	cfg.Format = "JSON"

	if cfg.Group() != model.GroupUnique {
		t.Errorf("expected unique group, got %v", cfg.Group())
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != model.FormatJSON {
		t.Errorf("expected json format, got %v", format)
	}
}

// TestLoad tests configuration layering.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults only", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "empty.yaml", "")
		cfg, err := Load(LoadOptions{ConfigPath: path, Environ: noEnv})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Format != DefaultFormat || cfg.LogFormat != DefaultLogFormat {
			t.Errorf("expected defaults, got format=%q log_format=%q", cfg.Format, cfg.LogFormat)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected ConfigFilePath %q, got %q", path, cfg.ConfigFilePath)
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "leaksplit.yaml", `unique: true
format: json
keep_order: true
log_format: json
filter:
  exclude_paths:
    - "vendor/**"
  include_rules:
    - "aws-*"
`)
		cfg, err := Load(LoadOptions{ConfigPath: path, Environ: noEnv})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.Unique || cfg.Format != "json" || !cfg.KeepOrder || cfg.LogFormat != "json" {
			t.Errorf("unexpected config: %+v", cfg)
		}
		if !reflect.DeepEqual(cfg.Filter.ExcludePaths, []string{"vendor/**"}) {
			t.Errorf("unexpected exclude paths: %v", cfg.Filter.ExcludePaths)
		}
		if !reflect.DeepEqual(cfg.Filter.IncludeRules, []string{"aws-*"}) {
			t.Errorf("unexpected include rules: %v", cfg.Filter.IncludeRules)
		}
	})

	t.Run("json file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "leaksplit.json", `{"format": "markdown", "summary": true}`)
		cfg, err := Load(LoadOptions{ConfigPath: path, Environ: noEnv})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Format != "markdown" || !cfg.Summary {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "leaksplit.yaml", "format: json\n")
		environ := func() []string {
			return []string{
				"LEAKSPLIT_FORMAT=markdown",
				"LEAKSPLIT_UNIQUE=true",
				"LEAKSPLIT_FILTER_EXCLUDE_RULES=generic-*, test-*",
				"UNRELATED=1",
			}
		}

		cfg, err := Load(LoadOptions{ConfigPath: path, Environ: environ})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Format != "markdown" {
			t.Errorf("expected env format, got %q", cfg.Format)
		}
		if !cfg.Unique {
			t.Error("expected unique from env")
		}
		if !reflect.DeepEqual(cfg.Filter.ExcludeRules, []string{"generic-*", "test-*"}) {
			t.Errorf("unexpected exclude rules: %v", cfg.Filter.ExcludeRules)
		}
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "leaksplit.yaml", "")
		environ := func() []string { return []string{"LEAKSPLIT_FORMAT=markdown"} }

		cfg, err := Load(LoadOptions{
			ConfigPath: path,
			Environ:    environ,
			Flags: map[string]any{
				"format":               "text",
				"filter.include_paths": []string{"src/**"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Format != "text" {
			t.Errorf("expected flag format, got %q", cfg.Format)
		}
		if !reflect.DeepEqual(cfg.Filter.IncludePaths, []string{"src/**"}) {
			t.Errorf("unexpected include paths: %v", cfg.Filter.IncludePaths)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(LoadOptions{
			ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
			Environ:    noEnv,
		})
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "bad.yaml", "format: [unclosed\n")
		_, err := Load(LoadOptions{ConfigPath: path, Environ: noEnv})
		if err == nil {
			t.Fatal("expected error for malformed yaml")
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("expected error to name the file, got %v", err)
		}
	})
}

// TestTransformEnv tests environment key mapping.
func TestTransformEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key       string
		value     string
		wantKey   string
		wantValue any
	}{
		{key: "LEAKSPLIT_FORMAT", value: "json", wantKey: "format", wantValue: "json"},
		{key: "LEAKSPLIT_LOG_FORMAT", value: "json", wantKey: "log_format", wantValue: "json"},
		{key: "LEAKSPLIT_KEEP_ORDER", value: "true", wantKey: "keep_order", wantValue: "true"},
		{key: "LEAKSPLIT_FILTER_INCLUDE_PATHS", value: "a/**,,b/**", wantKey: "filter.include_paths", wantValue: []string{"a/**", "b/**"}},
		{key: "LEAKSPLIT_", value: "x", wantKey: "", wantValue: nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			gotKey, gotValue := transformEnv(tt.key, tt.value)
			if gotKey != tt.wantKey {
				t.Errorf("key = %q, want %q", gotKey, tt.wantKey)
			}
			if !reflect.DeepEqual(gotValue, tt.wantValue) {
				t.Errorf("value = %#v, want %#v", gotValue, tt.wantValue)
			}
		})
	}
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path that exists", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "custom.yaml", "format: json\n")
		got, err := FindConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("explicit path that does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("first existing default wins", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := filepath.Join(dir, "missing.yaml")
		second := writeFile(t, "second.yaml", "")
		third := writeFile(t, "third.yaml", "")

		if got := firstExisting([]string{first, second, third}); got != second {
			t.Errorf("expected %s, got %s", second, got)
		}
		if got := firstExisting([]string{first, dir}); got != "" {
			t.Errorf("expected no match for directories, got %s", got)
		}
	})
}

// TestXDGDirs tests XDG path helpers.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("expected XDGConfigDir to end with %s, got %s", AppName, XDGConfigDir())
	}
	if filepath.Base(XDGConfigFile()) != XDGConfigFileName {
		t.Errorf("unexpected XDGConfigFile %s", XDGConfigFile())
	}
}

// TestYAMLParser tests the koanf YAML parser adapter.
func TestYAMLParser(t *testing.T) {
	t.Parallel()

	p := NewYAMLParser()

	out, err := p.Unmarshal([]byte("filter:\n  include_rules: [a]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	section, ok := out["filter"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", out["filter"])
	}
	if _, ok := section["include_rules"]; !ok {
		t.Error("expected include_rules key")
	}

	empty, err := p.Unmarshal(nil)
	if err != nil || empty == nil {
		t.Errorf("expected empty map, got %v, %v", empty, err)
	}

	data, err := p.Marshal(map[string]any{"format": "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "format: json\n" {
		t.Errorf("unexpected yaml %q", data)
	}
}
