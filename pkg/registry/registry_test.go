package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNoBackends)
}

func TestNewRejectsNonPositivePriority(t *testing.T) {
	_, err := New([]Backend{{Host: "a", Priority: 0}})
	require.ErrorIs(t, err, ErrInvalidPriority)
}

func TestSnapshotAvailableAllAvailable(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}, {Host: "b", Priority: 2}})
	require.NoError(t, err)

	available, _, _, anyThrottled := r.SnapshotAvailable(time.Now())
	assert.False(t, anyThrottled)
	assert.Len(t, available, 2)
}

func TestMarkThrottledExcludesFromAvailable(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}, {Host: "b", Priority: 1}})
	require.NoError(t, err)

	now := time.Now()
	r.MarkThrottled(0, 5, now)

	available, _, _, _ := r.SnapshotAvailable(now)
	require.Len(t, available, 1)
	assert.Equal(t, 1, available[0].Index)
}

func TestSnapshotAvailableRecoversAfterDeadline(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}})
	require.NoError(t, err)

	now := time.Now()
	r.MarkThrottled(0, 5, now)

	available, _, _, anyThrottled := r.SnapshotAvailable(now.Add(4 * time.Second))
	assert.Empty(t, available)
	assert.True(t, anyThrottled)

	available, _, _, anyThrottled = r.SnapshotAvailable(now.Add(5 * time.Second))
	assert.Len(t, available, 1)
	assert.False(t, anyThrottled)
}

func TestSnapshotAvailableSoonestRetryAfter(t *testing.T) {
	r, err := New([]Backend{
		{Host: "a", Priority: 1},
		{Host: "b", Priority: 1},
		{Host: "c", Priority: 1},
	})
	require.NoError(t, err)

	now := time.Now()
	r.MarkThrottled(0, 44, now)
	r.MarkThrottled(1, 4, now)
	r.MarkThrottled(2, 7, now)

	available, soonest, _, anyThrottled := r.SnapshotAvailable(now)
	assert.Empty(t, available)
	require.True(t, anyThrottled)
	assert.WithinDuration(t, now.Add(4*time.Second), soonest, time.Millisecond)
}

func TestMarkThrottledIsIdempotentLatestWins(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}})
	require.NoError(t, err)

	now := time.Now()
	r.MarkThrottled(0, 30, now)
	r.MarkThrottled(0, 5, now)

	_, soonest, _, anyThrottled := r.SnapshotAvailable(now)
	require.True(t, anyThrottled)
	assert.WithinDuration(t, now.Add(5*time.Second), soonest, time.Millisecond)
}

func TestRecordSuccessClearsThrottlingAndIncrements(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}})
	require.NoError(t, err)

	now := time.Now()
	r.MarkThrottled(0, 30, now)
	r.RecordSuccess(0)

	available, _, _, anyThrottled := r.SnapshotAvailable(now)
	assert.Len(t, available, 1)
	assert.False(t, anyThrottled)

	stats := r.Snapshot()
	assert.Equal(t, uint64(1), stats[0].SuccessfulCallCount)
}

func TestRecordAttemptIncrements(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}})
	require.NoError(t, err)

	r.RecordAttempt(0)
	r.RecordAttempt(0)

	stats := r.Snapshot()
	assert.Equal(t, uint64(2), stats[0].Attempts)
}

func TestSnapshotAvailableEmitsOnRecovered(t *testing.T) {
	r, err := New([]Backend{{Host: "a", Priority: 1}})
	require.NoError(t, err)

	var recovered []string
	r.OnRecovered = func(host string) { recovered = append(recovered, host) }

	now := time.Now()
	r.MarkThrottled(0, 1, now)
	r.SnapshotAvailable(now.Add(2 * time.Second))

	assert.Equal(t, []string{"a"}, recovered)
}
