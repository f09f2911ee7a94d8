// Package httpdefault builds the http.RoundTripper used when a caller of
// transport.New does not supply one via WithUnderlyingTransport. Nothing
// here is configured from environment variables or config files -- the
// only configuration surface is the Option values passed at construction
// time.
package httpdefault

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// NewTransport returns an *http.Transport with a 30s dial timeout, 10s TLS
// handshake timeout, TLS 1.2 as the floor, and the environment's proxy
// settings honored. It does not impose a timeout on the client itself:
// cancellation is delegated to the caller's request context.
func NewTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}
