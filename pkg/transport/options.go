package transport

import (
	"net/http"

	"github.com/go-logr/logr"
)

// config collects the constructor options for New.
type config struct {
	logger     logr.Logger
	recorder   Recorder
	underlying http.RoundTripper
	seed       int64
}

// Option configures a Transport or AsyncTransport at construction time.
// Options are the only configuration surface: there are no environment
// variables, config files, or CLI flags.
type Option func(*config)

// WithLogger injects a logr.Logger for INFO-level observability events.
// The default is logr.Discard(), so omitting this option never changes
// behavior.
func WithLogger(logger logr.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRecorder injects a Recorder for metrics-style observability. The
// default is a no-op.
func WithRecorder(recorder Recorder) Option {
	return func(c *config) { c.recorder = recorder }
}

// WithUnderlyingTransport sets the http.RoundTripper used for the actual
// network dispatch. The default is internal/httpdefault.NewTransport().
func WithUnderlyingTransport(rt http.RoundTripper) Option {
	return func(c *config) { c.underlying = rt }
}

// WithSeed sets the seed for the Selector's private PRNG. Mainly useful
// for deterministic tests; production callers should leave this unset.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}
