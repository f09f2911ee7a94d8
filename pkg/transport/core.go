package transport

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/aoai-lb/aoai-lb/pkg/registry"
	"github.com/aoai-lb/aoai-lb/pkg/selector"
)

// dispatchFunc is the one suspension/blocking point per attempt: a call
// into the underlying HTTP transport. Both the blocking Transport and the
// cooperative-suspension AsyncTransport funnel through the same attempt
// loop, differing only in how -- and on what goroutine -- this function is
// invoked.
type dispatchFunc func(req *http.Request) (*http.Response, error)

// core holds everything the state machine needs and is shared, unexported,
// by both public transport flavors.
type core struct {
	registry *registry.Registry
	selector *selector.Selector
	logger   logr.Logger
	recorder Recorder
}

// attempt runs the SELECT -> DISPATCH -> INTERPRET -> (SELECT | RETURN)
// loop. It terminates because every retriable failure marks at least one
// backend throttled, monotonically shrinking the available set until
// SELECT synthesizes a 429; with N backends, at most N calls to dispatch
// occur.
func (c *core) attempt(req *http.Request, dispatch dispatchFunc) (*http.Response, error) {
	for {
		a, none := c.selector.Select(time.Now())
		if none != nil {
			c.recorder.OnExhausted(none.RetryAfterSeconds)
			c.logger.Info("no backend available",
				"soonestHost", none.SoonestHost,
				"retryAfterSeconds", none.RetryAfterSeconds)
			return synthesizeExhaustedResponse(req, none.RetryAfterSeconds), nil
		}

		backend := c.registry.Backend(a.Index)
		c.registry.RecordAttempt(a.Index)
		outReq := rewriteRequest(req, backend)
		c.logger.V(1).Info("rewrote request", "host", backend.Host, "path", outReq.URL.Path, "apiKeySet", backend.APIKey != "")

		resp, err := dispatch(outReq)
		if err != nil {
			// Transport-layer failure: terminal and non-retriable,
			// propagated unchanged.
			return nil, err
		}

		c.logger.Info("attempt dispatched", "host", backend.Host, "status", resp.StatusCode)
		c.recorder.OnAttempt(backend.Host, resp.StatusCode)

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			c.registry.RecordSuccess(a.Index)
			return resp, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			retryAfter := parseRetryAfterSeconds(resp.Header.Get("Retry-After"), retriableDefaultRetryAfterSeconds)
			c.registry.MarkThrottled(a.Index, retryAfter, time.Now())
			c.recorder.OnThrottled(backend.Host, retryAfter)
			c.logger.Info("backend throttled", "host", backend.Host, "retryAfterSeconds", retryAfter)

		case retriable5xx[resp.StatusCode]:
			c.registry.MarkThrottled(a.Index, retriableDefaultRetryAfterSeconds, time.Now())
			c.recorder.OnThrottled(backend.Host, retriableDefaultRetryAfterSeconds)
			c.logger.Info("backend returned retriable error", "host", backend.Host, "status", resp.StatusCode)

		default:
			return resp, nil
		}
	}
}
