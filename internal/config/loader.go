package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultConfigFile is the configuration file name searched for in the
	// current directory and the home directory.
	DefaultConfigFile = ".leaksplit.yaml"

	// XDGConfigFileName is the configuration file name inside XDGConfigDir.
	XDGConfigFileName = "config.yaml"
)

// filterPrefix is the koanf key prefix of the filter section.
const filterPrefix = "filter."

// LoadOptions controls the layers read by Load.
type LoadOptions struct {
	// ConfigPath is an explicit configuration file. When set, a missing
	// file is an error; when empty, the default locations are searched.
	ConfigPath string

	// Flags holds explicitly set command-line flags keyed by koanf path
	// (for example "format" or "filter.include_paths").
	Flags map[string]any

	// Environ returns the environment as "KEY=value" pairs.
	// Defaults to os.Environ.
	Environ func() []string
}

// defaults returns the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"unique":     false,
		"format":     DefaultFormat,
		"keep_order": false,
		"summary":    false,
		"verbose":    false,
		"quiet":      false,
		"log_format": DefaultLogFormat,
	}
}

// Load builds a Config from defaults, the configuration file, LEAKSPLIT_*
// environment variables and opts.Flags, each layer overriding the previous.
// The result is not validated; callers set ReportPath and call Validate.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path, err := FindConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	envProvider := env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   environ,
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := NewConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	cfg.ConfigFilePath = path

	return cfg, nil
}

// transformEnv maps LEAKSPLIT_LOG_FORMAT to log_format and
// LEAKSPLIT_FILTER_INCLUDE_PATHS to filter.include_paths. Filter values
// are comma-separated lists.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "" {
		return "", nil
	}

	if rest, ok := strings.CutPrefix(key, "filter_"); ok {
		return filterPrefix + rest, splitList(value)
	}
	return key, value
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parserFor returns the koanf parser for a configuration file.
// Files ending in .json use the JSON parser; everything else is YAML.
func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return NewYAMLParser()
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if specified (missing is ErrConfigNotFound)
//  2. .leaksplit.yaml in the current directory
//  3. config.yaml in the XDG config directory
//  4. .leaksplit.yaml in the user's home directory
//
// Returns an empty path when no default file exists.
func FindConfigFile(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
			}
			return "", fmt.Errorf("stat config file %s: %w", configPath, err)
		}
		return configPath, nil
	}

	return firstExisting(SearchPaths()), nil
}

// SearchPaths returns the default configuration file locations in the order
// FindConfigFile tries them.
func SearchPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}

	paths = append(paths, XDGConfigFile())

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}

	return paths
}

// firstExisting returns the first path that names a regular file.
func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
