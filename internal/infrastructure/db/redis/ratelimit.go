package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const windowTTL = time.Minute

// RateLimiter implements a fixed one-minute window counter per caller,
// backed by Redis so the limit holds across replicas.
// Key format: ratelimit:<ip>:<unix_minute>
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow increments the caller's counter for the current window and reports
// whether the request stays within limit.
func (l *RateLimiter) Allow(ctx context.Context, ip string, limit int) (bool, error) {
	key := l.key(ip, time.Now())

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		// First hit in this window; bound the key's lifetime.
		if err := l.client.Expire(ctx, key, windowTTL).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(limit), nil
}

func (l *RateLimiter) key(ip string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", ip, now.Unix()/60)
}
