package security

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultRateLimitWindow is the trailing window a client is measured over.
	DefaultRateLimitWindow = 60 * time.Second
	// DefaultRateLimitMax is the request ceiling inside one window.
	DefaultRateLimitMax = 30
)

// SlidingWindowLimiter is a best-effort, process-local rate limiter keyed by
// (client identity, route). State does not survive restarts and is not
// shared between instances; multi-instance deployments should use the
// Redis-backed limiter instead.
type SlidingWindowLimiter struct {
	window time.Duration
	max    int

	mu   sync.Mutex
	hits map[string][]time.Time

	now func() time.Time
}

// NewSlidingWindowLimiter builds a limiter with explicit configuration.
// Non-positive arguments fall back to the defaults.
func NewSlidingWindowLimiter(window time.Duration, max int) *SlidingWindowLimiter {
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	if max <= 0 {
		max = DefaultRateLimitMax
	}
	return &SlidingWindowLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow prunes timestamps older than the window, rejects when the remaining
// count is at the ceiling, and otherwise records the request. It never fails.
func (l *SlidingWindowLimiter) Allow(_ context.Context, clientID, route string) bool {
	key := clientID + ":" + route
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.hits[key]
	for len(recent) > 0 && !recent[0].After(cutoff) {
		recent = recent[1:]
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}
