package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlidingWindowLimiter implements the rate-limit contract on a Redis sorted
// set per (client, route), scored by request time. Unlike the in-memory
// limiter, its state is shared across instances and survives restarts.
//
// Key format: ratelimit:<client_id>:<route>
type SlidingWindowLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64

	seq atomic.Uint64
}

// NewSlidingWindowLimiter wraps the given Redis client.
func NewSlidingWindowLimiter(client *redis.Client, window time.Duration, max int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{client: client, window: window, max: int64(max)}
}

// Allow prunes expired entries, checks the ceiling and records the request.
// Redis failures admit the request: the limiter is best-effort and must not
// take the API down with it.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, clientID, route string) bool {
	key := fmt.Sprintf("ratelimit:%s:%s", clientID, route)
	now := time.Now()
	cutoff := now.Add(-l.window).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}

	if countCmd.Val() >= l.max {
		return false
	}

	// The sequence number keeps members unique when two requests land on
	// the same nanosecond.
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatUint(l.seq.Add(1), 10)

	pipe = l.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, key, l.window)
	_, _ = pipe.Exec(ctx)

	return true
}
