package transport

import (
	"net/http"

	"github.com/aoai-lb/aoai-lb/pkg/registry"
)

// rewriteRequest returns a clone of req retargeted at backend: scheme
// forced to https, host replaced, path/query/fragment preserved
// unchanged. req itself is left untouched so it can be rewritten again
// against a different backend on retry.
func rewriteRequest(req *http.Request, backend registry.Backend) *http.Request {
	out := req.Clone(req.Context())

	u := *req.URL
	u.Scheme = "https"
	u.Host = backend.Host
	out.URL = &u
	out.Host = backend.Host

	if backend.APIKey != "" {
		out.Header.Set("api-key", backend.APIKey)
		out.Header.Del("Authorization")
	}

	return out
}
