package registry

import "errors"

// ErrNoBackends is returned by New when given an empty backend list.
var ErrNoBackends = errors.New("no backends configured")

// ErrInvalidPriority is returned by New when a backend's priority is not
// a positive integer.
var ErrInvalidPriority = errors.New("priority must be >= 1")
