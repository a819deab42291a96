package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewSlidingWindowLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "key1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "key1")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(ctx, "key2")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(ctx, "key1")
	assert.False(t, allowed)
}

func TestSlidingWindowLimiter_WindowExpires(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	allowed, _ := limiter.Allow(ctx, "key1")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow(ctx, "key1")
	assert.False(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = limiter.Allow(ctx, "key1")
	assert.True(t, allowed)
}

func TestSlidingWindowLimiter_Reset(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	ctx := context.Background()

	_, _ = limiter.Allow(ctx, "key1")
	require.NoError(t, limiter.Reset(ctx, "key1"))

	allowed, _ := limiter.Allow(ctx, "key1")
	assert.True(t, allowed)
}

func TestIPAndUserLimitersUseSeparateKeyspaces(t *testing.T) {
	ctx := context.Background()

	ipLimiter := NewIPRateLimiter(1)
	userLimiter := NewUserRateLimiter(1)

	allowed, _ := ipLimiter.Allow(ctx, "203.0.113.9")
	assert.True(t, allowed)
	allowed, _ = ipLimiter.Allow(ctx, "203.0.113.9")
	assert.False(t, allowed)

	allowed, _ = userLimiter.Allow(ctx, "203.0.113.9")
	assert.True(t, allowed)
}
