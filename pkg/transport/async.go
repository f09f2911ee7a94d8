package transport

import (
	"context"
	"net/http"

	"github.com/aoai-lb/aoai-lb/pkg/registry"
)

// AsyncTransport is the cooperative-suspension variant: Submit returns
// immediately, and the SELECT/DISPATCH/INTERPRET loop runs on its own
// goroutine, which is where the one suspension point per attempt -- the
// underlying dispatch call -- actually parks. It shares its state machine
// and registry discipline with Transport via the same unexported core
// type; only the dispatch primitive differs.
type AsyncTransport struct {
	core       *core
	underlying http.RoundTripper
}

// NewAsync constructs an AsyncTransport over backends, with the same
// construction contract as New.
func NewAsync(backends []registry.Backend, opts ...Option) (*AsyncTransport, error) {
	t, err := New(backends, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncTransport{core: t.core, underlying: t.underlying}, nil
}

// Future is the pending result of a Submit call.
type Future struct {
	done chan struct{}
	resp *http.Response
	err  error
}

// Done returns a channel that is closed once the attempt completes.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the attempt completes or ctx is done, whichever comes
// first. A ctx cancellation here does not affect the in-flight attempt:
// cancellation of the dispatch itself is delegated to the request's own
// context, set at Submit time.
func (f *Future) Wait(ctx context.Context) (*http.Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Submit starts the attempt on a new goroutine and returns immediately.
// req's context governs cancellation of the in-flight dispatch, exactly as
// it would for a direct RoundTrip call -- the core never installs its own
// timers.
func (t *AsyncTransport) Submit(req *http.Request) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.resp, f.err = t.core.attempt(req, t.underlying.RoundTrip)
	}()
	return f
}
