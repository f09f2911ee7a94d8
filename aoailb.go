// Package aoailb re-exports the public surface of pkg/transport and
// pkg/registry at the module root, so callers depend on a single package
// path for the common case instead of reaching into pkg/transport and
// pkg/registry directly.
package aoailb

import (
	"github.com/aoai-lb/aoai-lb/pkg/registry"
	"github.com/aoai-lb/aoai-lb/pkg/transport"
)

// Backend describes one upstream endpoint.
type Backend = registry.Backend

// BackendStat is a point-in-time view of one backend's state.
type BackendStat = registry.BackendStat

// Transport is the blocking http.RoundTripper variant.
type Transport = transport.Transport

// AsyncTransport is the cooperative-suspension variant.
type AsyncTransport = transport.AsyncTransport

// Future is the pending result of an AsyncTransport.Submit call.
type Future = transport.Future

// Recorder receives observability events from the state machine.
type Recorder = transport.Recorder

// ConfigError wraps a configuration failure raised at construction time.
type ConfigError = transport.ConfigError

// Option configures a Transport or AsyncTransport at construction time.
type Option = transport.Option

var (
	// ErrNoBackends is returned by New when given an empty backend list.
	ErrNoBackends = transport.ErrNoBackends
	// ErrInvalidPriority is returned by New when a backend's priority is
	// not a positive integer.
	ErrInvalidPriority = transport.ErrInvalidPriority
)

// WithLogger injects a logr.Logger for observability events.
var WithLogger = transport.WithLogger

// WithRecorder injects a Recorder for metrics-style observability.
var WithRecorder = transport.WithRecorder

// WithUnderlyingTransport sets the http.RoundTripper used for dispatch.
var WithUnderlyingTransport = transport.WithUnderlyingTransport

// WithSeed sets the seed for the selector's private PRNG.
var WithSeed = transport.WithSeed

// New constructs a Transport over backends.
func New(backends []Backend, opts ...Option) (*Transport, error) {
	return transport.New(backends, opts...)
}

// NewAsync constructs an AsyncTransport over backends.
func NewAsync(backends []Backend, opts ...Option) (*AsyncTransport, error) {
	return transport.NewAsync(backends, opts...)
}
