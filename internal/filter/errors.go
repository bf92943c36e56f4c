package filter

import "errors"

// ErrBadPattern is returned by Validate when a pattern is not a valid glob.
var ErrBadPattern = errors.New("invalid glob pattern")
