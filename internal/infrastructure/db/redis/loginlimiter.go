package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAttemptLimit  = 10
	defaultAttemptWindow = 5 * time.Minute
)

// LoginLimiter throttles login attempts per email using a Redis fixed-window
// counter. Key format: login_attempts:<email>, expiring after the window.
type LoginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive limit or window fall back to the defaults.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = defaultAttemptLimit
	}
	if window <= 0 {
		window = defaultAttemptWindow
	}
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts one attempt for the email and reports whether it is still
// within the window's limit. The first attempt of a window sets the expiry.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := l.key(email)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("login limiter expire: %w", err)
		}
	}

	return n <= l.limit, nil
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}
