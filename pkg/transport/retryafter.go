package transport

import (
	"io"
	"net/http"
	"strconv"
	"strings"
)

const retriableDefaultRetryAfterSeconds = 10

// parseRetryAfterSeconds reads the Retry-After header from a 429 response.
// Only the integer-seconds form is accepted; the Azure OpenAI-style
// endpoints this package targets always send seconds, not an HTTP-date.
// A missing or unparsable header defaults to defaultSeconds.
func parseRetryAfterSeconds(header string, defaultSeconds float64) float64 {
	header = strings.TrimSpace(header)
	if header == "" {
		return defaultSeconds
	}
	n, err := strconv.Atoi(header)
	if err != nil || n < 0 {
		return defaultSeconds
	}
	return float64(n)
}

var retriable5xx = map[int]bool{
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// synthesizeExhaustedResponse builds the 429 returned when every backend
// is throttled: status, Retry-After, and Content-Type only, no other
// headers.
func synthesizeExhaustedResponse(req *http.Request, retryAfterSeconds int) *http.Response {
	body := "Too Many Requests"
	resp := &http.Response{
		Status:     "429 Too Many Requests",
		StatusCode: http.StatusTooManyRequests,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
	resp.Header.Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.ContentLength = int64(len(body))
	return resp
}
