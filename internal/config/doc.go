// Package config provides the leaksplit configuration and the layered loader
// that fills it from defaults, a YAML or JSON file, LEAKSPLIT_* environment
// variables and command-line flags.
package config
