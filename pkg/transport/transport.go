// Package transport implements an http.RoundTripper that retargets each
// request to one of several priority-ordered backends, retrying across
// backends on 429 and retriable 5xx responses and synthesizing a 429 when
// the pool is exhausted.
package transport

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/aoai-lb/aoai-lb/internal/httpdefault"
	"github.com/aoai-lb/aoai-lb/pkg/registry"
	"github.com/aoai-lb/aoai-lb/pkg/selector"
)

// Transport is the blocking variant: it implements http.RoundTripper and
// composes directly into an *http.Client. It also exposes Do with the same
// signature, so it satisfies
// github.com/Azure/azure-sdk-for-go/sdk/azcore/policy.Transporter and can
// be handed to an Azure SDK client's transport option unmodified.
type Transport struct {
	core       *core
	underlying http.RoundTripper
}

// New constructs a Transport over backends. Construction fails if backends
// is empty or any priority is not positive.
func New(backends []registry.Backend, opts ...Option) (*Transport, error) {
	reg, err := registry.New(backends)
	if err != nil {
		return nil, newConfigError(err)
	}

	cfg := config{
		logger:     logr.Discard(),
		recorder:   noopRecorder{},
		underlying: httpdefault.NewTransport(),
		seed:       time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	recorder := cfg.recorder
	reg.OnRecovered = func(host string) {
		recorder.OnRecovered(host)
		cfg.logger.Info("backend recovered", "host", host)
	}

	return &Transport{
		core: &core{
			registry: reg,
			selector: selector.New(reg, cfg.seed),
			logger:   cfg.logger,
			recorder: recorder,
		},
		underlying: cfg.underlying,
	}, nil
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.core.attempt(req, t.underlying.RoundTrip)
}

// Do is an alias for RoundTrip with the signature expected by
// azcore/policy.Transporter and similar single-method HTTP abstractions.
func (t *Transport) Do(req *http.Request) (*http.Response, error) {
	return t.RoundTrip(req)
}

// Snapshot exposes the current state of every configured backend, for
// diagnostics or health endpoints.
func (t *Transport) Snapshot() []registry.BackendStat {
	return t.core.registry.Snapshot()
}
