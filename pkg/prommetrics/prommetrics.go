// Package prommetrics implements transport.Recorder on top of
// github.com/prometheus/client_golang, using the conventional
// Namespace/Name/Help CounterVec/GaugeVec idiom.
package prommetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace is the Prometheus metric namespace used by Recorder.
const DefaultNamespace = "aoailb"

var (
	attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "attempts_total",
			Help:      "Total number of requests dispatched to a backend, labeled by host and response status class.",
		},
		[]string{"host", "status"},
	)
	throttledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "throttled_total",
			Help:      "Total number of times a backend transitioned into throttling.",
		},
		[]string{"host"},
	)
	recoveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "recovered_total",
			Help:      "Total number of times a backend's throttling deadline passed and it became available again.",
		},
		[]string{"host"},
	)
	exhaustedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: DefaultNamespace,
			Name:      "exhausted_total",
			Help:      "Total number of requests for which every configured backend was throttled.",
		},
	)
	backendAvailable = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: DefaultNamespace,
			Name:      "backend_available",
			Help:      "Whether a backend is currently available (1) or throttled (0).",
		},
		[]string{"host"},
	)
)

func init() {
	prometheus.MustRegister(attemptsTotal, throttledTotal, recoveredTotal, exhaustedTotal, backendAvailable)
}

// Recorder implements transport.Recorder by incrementing this package's
// registered Prometheus collectors. All methods are safe for concurrent
// use, since the underlying collectors are.
type Recorder struct{}

// NewRecorder returns a Recorder backed by the metrics registered in this
// package's init.
func NewRecorder() Recorder { return Recorder{} }

func (Recorder) OnAttempt(host string, statusCode int) {
	attemptsTotal.WithLabelValues(host, statusClass(statusCode)).Inc()
	backendAvailable.WithLabelValues(host).Set(1)
}

func (Recorder) OnThrottled(host string, _ float64) {
	throttledTotal.WithLabelValues(host).Inc()
	backendAvailable.WithLabelValues(host).Set(0)
}

func (Recorder) OnRecovered(host string) {
	recoveredTotal.WithLabelValues(host).Inc()
	backendAvailable.WithLabelValues(host).Set(1)
}

func (Recorder) OnExhausted(int) {
	exhaustedTotal.Inc()
}

func statusClass(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
