package prommetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderIncrementsCounters(t *testing.T) {
	r := NewRecorder()

	r.OnAttempt("a.example.com", 200)
	r.OnThrottled("a.example.com", 5)
	r.OnRecovered("a.example.com")
	r.OnExhausted(4)

	assert.Equal(t, float64(1), testutil.ToFloat64(attemptsTotal.WithLabelValues("a.example.com", "2xx")))
	assert.Equal(t, float64(1), testutil.ToFloat64(throttledTotal.WithLabelValues("a.example.com")))
	assert.Equal(t, float64(1), testutil.ToFloat64(recoveredTotal.WithLabelValues("a.example.com")))
	assert.Equal(t, float64(1), testutil.ToFloat64(exhaustedTotal))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(204))
	assert.Equal(t, "3xx", statusClass(301))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "5xx", statusClass(503))
}
