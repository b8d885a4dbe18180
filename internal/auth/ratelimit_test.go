package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewLoginLimiter(nil, 3, 0)

	// no client configured: every attempt passes, reset is a no-op
	for i := 0; i < 10; i++ {
		ok, err := limiter.Allow(context.Background(), "ana@example.com")
		assert.NoError(t, err)
		assert.True(t, ok)
	}
	limiter.Reset(context.Background(), "ana@example.com")
}

func TestLoginLimiterNilReceiver(t *testing.T) {
	var limiter *LoginLimiter

	ok, err := limiter.Allow(context.Background(), "ana@example.com")
	assert.NoError(t, err)
	assert.True(t, ok)
	limiter.Reset(context.Background(), "ana@example.com")
}
