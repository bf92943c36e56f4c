package model

import "errors"

// Error kinds shared by the loader and the report writers.
// Concrete errors wrap one of these together with the underlying cause,
// e.g. fmt.Errorf("%w: open %s: %w", ErrIO, path, err).
var (
	// ErrIO is returned when the report cannot be opened or read, or when
	// the output stream rejects a write.
	ErrIO = errors.New("i/o error")

	// ErrDecode is returned when the report is not a well-formed JSON array
	// of findings, or when an element is missing a required field or has a
	// field of the wrong type.
	ErrDecode = errors.New("decode error")

	// ErrSerialize is returned when a finding cannot be encoded for the
	// structured output modes.
	ErrSerialize = errors.New("serialize error")
)
