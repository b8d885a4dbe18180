package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per identifier using a fixed
// window on Redis. A nil client disables throttling so the login flow
// never depends on Redis being reachable.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter builds a limiter.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records an attempt and reports whether it is within the limit.
// INCR plus a first-attempt EXPIRE keeps the counter atomic across
// concurrent logins for the same identifier.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	key := fmt.Sprintf("login_attempts:%s", identifier)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down must not lock users out.
		return true, err
	}
	if count == 1 {
		_ = l.client.Expire(ctx, key, l.window).Err()
	}
	return count <= int64(l.maxAttempts), nil
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Del(ctx, fmt.Sprintf("login_attempts:%s", identifier)).Err()
}
