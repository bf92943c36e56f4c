package config

import "errors"

// Configuration errors.
// These are returned by Config.Validate and Load so callers can use
// errors.Is for programmatic handling.
var (
	// ErrNoReport is returned when no report path is given.
	ErrNoReport = errors.New("no report specified: provide the path to a gitleaks JSON report")

	// ErrInvalidFormat is returned when the output format is not text, json or markdown.
	ErrInvalidFormat = errors.New("invalid format: must be text, json or markdown")

	// ErrInvalidLogFormat is returned when the log format is not text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConflictingVerbosity is returned when both --verbose and --quiet are set.
	ErrConflictingVerbosity = errors.New("conflicting verbosity: --verbose and --quiet cannot be used together")

	// ErrConfigNotFound is returned when an explicitly requested
	// configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
