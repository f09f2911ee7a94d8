// Package selector implements the policy that picks which backend an
// attempt should target, given the registry's current state and the
// current wall clock.
package selector

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aoai-lb/aoai-lb/pkg/registry"
)

// defaultEmptyConfigRetryAfter is the sentinel retry-after, in seconds,
// returned when the registry reports no available backends and no
// throttled ones either -- the pathological "nothing is configured" case.
const defaultEmptyConfigRetryAfter = 10

// Attempt is the outcome of a successful selection: the index of the
// backend to dispatch to.
type Attempt struct {
	Index int
}

// NoneAvailable is returned when every backend is throttled (or none are
// configured); RetryAfterSeconds is the caller's best estimate of how long
// to wait before trying again. SoonestHost names the backend that will
// recover first, for observability; it is empty in the pathological
// "nothing configured, nothing throttled" sentinel case.
type NoneAvailable struct {
	RetryAfterSeconds int
	SoonestHost       string
}

// Selector chooses a backend among those a Registry reports as available,
// preferring the lowest-numbered priority tier that still has a candidate
// and randomizing within that tier.
type Selector struct {
	registry *registry.Registry

	// mu guards rnd: math/rand.Rand is not safe for concurrent use, and
	// Select is expected to be called from many goroutines at once.
	mu  sync.Mutex
	rnd *rand.Rand
}

// New constructs a Selector over reg, seeding its private PRNG from seed.
// Each Selector owns its own PRNG rather than sharing the package-level
// global, so that selection history never leaks between independently
// configured load balancer instances.
func New(reg *registry.Registry, seed int64) *Selector {
	return &Selector{
		registry: reg,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

// Select snapshots the registry, and either returns an Attempt naming a
// backend to dispatch to, or reports that none are available along with
// how long to wait.
func (s *Selector) Select(now time.Time) (Attempt, *NoneAvailable) {
	available, soonestRetryAfter, soonestHost, anyThrottled := s.registry.SnapshotAvailable(now)

	if len(available) == 0 {
		if !anyThrottled {
			return Attempt{}, &NoneAvailable{RetryAfterSeconds: defaultEmptyConfigRetryAfter}
		}
		wait := soonestRetryAfter.Sub(now)
		secs := int(wait.Seconds())
		if wait > time.Duration(secs)*time.Second {
			secs++ // round up (ceil)
		}
		if secs < 1 {
			secs = 1
		}
		return Attempt{}, &NoneAvailable{RetryAfterSeconds: secs, SoonestHost: soonestHost}
	}

	minPriority := available[0].Priority
	for _, a := range available[1:] {
		if a.Priority < minPriority {
			minPriority = a.Priority
		}
	}

	var tier []registry.AvailableBackend
	for _, a := range available {
		if a.Priority == minPriority {
			tier = append(tier, a)
		}
	}

	s.mu.Lock()
	choice := tier[s.rnd.Intn(len(tier))]
	s.mu.Unlock()

	return Attempt{Index: choice.Index}, nil
}
