package transport

import (
	"fmt"

	"github.com/aoai-lb/aoai-lb/pkg/registry"
)

// ConfigError wraps a configuration failure raised at construction time.
// It is never produced once a Transport is successfully built.
type ConfigError struct {
	err error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("aoai-lb: %v", e.err) }
func (e *ConfigError) Unwrap() error { return e.err }

func newConfigError(err error) *ConfigError {
	return &ConfigError{err: err}
}

// Re-exported so callers can errors.Is against the same sentinels the
// registry package defines, without importing it directly.
var (
	ErrNoBackends      = registry.ErrNoBackends
	ErrInvalidPriority = registry.ErrInvalidPriority
)
