// Package ratelimit decides whether a client may make another request.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter consumes one unit of a per-subject budget.
type Limiter interface {
	// Allow reports whether subject may proceed. When it may not, retryAfter
	// is the suggested wait.
	Allow(ctx context.Context, subject string) (ok bool, retryAfter time.Duration, err error)
}

// idleTTL is how long an untouched bucket is kept before it is evicted.
const idleTTL = 10 * time.Minute

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// Memory is a per-process token bucket limiter keyed by subject.
type Memory struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	now     func() time.Time
	buckets map[string]*bucket
	sweptAt time.Time
}

// NewMemory allows perMinute requests per subject with a burst of the same size.
func NewMemory(perMinute int) *Memory {
	return &Memory{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   perMinute,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (m *Memory) Allow(_ context.Context, subject string) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweepLocked(now)
	b, ok := m.buckets[subject]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[subject] = b
	}
	b.seen = now
	r := b.lim.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute, nil
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, roundUpSecond(d), nil
	}
	return true, 0, nil
}

// sweepLocked drops idle buckets at most once per idleTTL.
func (m *Memory) sweepLocked(now time.Time) {
	if now.Sub(m.sweptAt) < idleTTL {
		return
	}
	for k, b := range m.buckets {
		if now.Sub(b.seen) >= idleTTL {
			delete(m.buckets, k)
		}
	}
	m.sweptAt = now
}

func roundUpSecond(d time.Duration) time.Duration {
	s := math.Ceil(d.Seconds())
	if s < 1 {
		s = 1
	}
	return time.Duration(s) * time.Second
}
