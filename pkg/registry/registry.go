// Package registry holds the static list of backend descriptors used by
// the load balancer along with their mutable throttling state.
package registry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Backend is an immutable-at-runtime descriptor of one upstream endpoint.
type Backend struct {
	// Host is the DNS name of the upstream endpoint: no scheme, no path.
	Host string
	// Priority orders backends; lower is more preferred. 1 is highest.
	Priority int
	// APIKey, when set, replaces the outbound api-key header and removes
	// any Authorization header for requests routed to this backend.
	APIKey string
}

// entry is the mutable state tracked per backend, guarded by Registry.mu.
type entry struct {
	backend      Backend
	isThrottling bool
	retryAfter   time.Time

	// attempts and successfulCallCount are monotonic counters used only
	// for observability; they are updated and read with atomic operations,
	// so Snapshot loads them after releasing the registry lock.
	attempts            atomic.Uint64
	successfulCallCount atomic.Uint64
}

// AvailableBackend is one non-throttled candidate returned by
// SnapshotAvailable, carrying just what the selector needs.
type AvailableBackend struct {
	Index    int
	Priority int
}

// BackendStat is a point-in-time, read-only view of one backend, suitable
// for logging or metrics export.
type BackendStat struct {
	Host                string
	Priority            int
	IsThrottling        bool
	RetryAfter          time.Time
	Attempts            uint64
	SuccessfulCallCount uint64
}

// Registry is the ordered collection of configured backends and their
// throttling state. All mutations and consistent reads of the throttling
// pair (isThrottling, retryAfter) go through a single mutex: the critical
// sections are O(N) over a small N, so finer-grained locking buys nothing
// and would complicate reasoning about the "available" snapshot.
type Registry struct {
	mu      sync.Mutex
	entries []*entry

	// OnRecovered, when set, is invoked (outside the lock) whenever
	// SnapshotAvailable clears throttling on a backend because its
	// retry-after deadline has passed. It exists so callers (the
	// transport) can emit an observability event without the registry
	// importing a logging package itself.
	OnRecovered func(host string)
}

// New constructs a Registry from an ordered list of backend descriptors.
// Construction fails if backends is empty or any priority is not positive;
// this is the one place the core rejects configuration outright, as opposed
// to the transient per-request failures handled by MarkThrottled.
func New(backends []Backend) (*Registry, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("registry: %w", ErrNoBackends)
	}
	entries := make([]*entry, len(backends))
	for i, b := range backends {
		if b.Priority < 1 {
			return nil, fmt.Errorf("registry: backend %q: %w", b.Host, ErrInvalidPriority)
		}
		entries[i] = &entry{backend: b}
	}
	return &Registry{entries: entries}, nil
}

// Len returns the number of configured backends.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Backend returns the immutable descriptor for the backend at index i.
func (r *Registry) Backend(i int) Backend {
	return r.entries[i].backend
}

// SnapshotAvailable clears expired throttling (is_throttling: true -> false
// may only happen here when now >= retry_after, or via RecordSuccess) and
// returns the indices/priorities of all currently non-throttled backends.
// If none are available, soonestRetryAfter holds the minimum retry_after
// across throttled backends and anyThrottled is true; if the registry is
// empty of throttled backends too (a pathological, fully-unconfigured-like
// state), anyThrottled is false and the caller must fall back to a fixed
// sentinel retry-after.
func (r *Registry) SnapshotAvailable(now time.Time) (available []AvailableBackend, soonestRetryAfter time.Time, soonestHost string, anyThrottled bool) {
	r.mu.Lock()
	var recovered []string
	for i, e := range r.entries {
		if e.isThrottling && !now.Before(e.retryAfter) {
			e.isThrottling = false
			recovered = append(recovered, e.backend.Host)
		}
		if !e.isThrottling {
			available = append(available, AvailableBackend{Index: i, Priority: e.backend.Priority})
			continue
		}
		if !anyThrottled || e.retryAfter.Before(soonestRetryAfter) {
			soonestRetryAfter = e.retryAfter
			soonestHost = e.backend.Host
			anyThrottled = true
		}
	}
	r.mu.Unlock()

	if r.OnRecovered != nil {
		for _, host := range recovered {
			r.OnRecovered(host)
		}
	}
	return available, soonestRetryAfter, soonestHost, anyThrottled
}

// MarkThrottled sets is_throttling=true and retry_after=now+retryAfterSeconds
// for the backend at index i. It is idempotent with respect to repeated
// 429s/5xxs: the most recent call wins, even if its deadline is earlier
// than the one it replaces, since each call simply overwrites retryAfter.
func (r *Registry) MarkThrottled(i int, retryAfterSeconds float64, now time.Time) {
	r.mu.Lock()
	e := r.entries[i]
	e.isThrottling = true
	e.retryAfter = now.Add(time.Duration(retryAfterSeconds * float64(time.Second)))
	r.mu.Unlock()
}

// RecordSuccess clears throttling for the backend at index i and
// increments its successful-call counter. A success is the other legal
// path (besides clock advancement past the retry deadline) by which
// throttling clears.
func (r *Registry) RecordSuccess(i int) {
	r.mu.Lock()
	r.entries[i].isThrottling = false
	r.mu.Unlock()
	r.entries[i].successfulCallCount.Add(1)
}

// RecordAttempt increments the attempt counter for the backend at index i.
func (r *Registry) RecordAttempt(i int) {
	r.entries[i].attempts.Add(1)
}

// Snapshot returns a point-in-time view of every backend, for logging or
// metrics export. It takes the lock only long enough to copy the
// throttling pair, so a reader never observes isThrottling and retryAfter
// from two different moments in time; counters are read separately via
// atomic loads.
func (r *Registry) Snapshot() []BackendStat {
	r.mu.Lock()
	stats := make([]BackendStat, len(r.entries))
	for i, e := range r.entries {
		stats[i] = BackendStat{
			Host:         e.backend.Host,
			Priority:     e.backend.Priority,
			IsThrottling: e.isThrottling,
			RetryAfter:   e.retryAfter,
		}
	}
	r.mu.Unlock()
	for i, e := range r.entries {
		stats[i].Attempts = e.attempts.Load()
		stats[i].SuccessfulCallCount = e.successfulCallCount.Load()
	}
	return stats
}
