package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	defer Close(client)

	ctx := context.Background()
	require.NoError(t, Ping(ctx, client))

	limiter := NewRedisRateLimiter(client, 2, time.Minute)

	t.Run("WithinLimit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			allowed, err := limiter.Allow(ctx, "user:1")
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		assert.Equal(t, time.Minute, s.TTL("rate_limit:user:1"))
	})

	t.Run("OverLimit", func(t *testing.T) {
		allowed, err := limiter.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		allowed, err := limiter.Allow(ctx, "user:2")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		s.FastForward(time.Minute + time.Second)
		allowed, err := limiter.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestRedisRateLimiter_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("NilClient", func(t *testing.T) {
		_, err := NewRedisRateLimiter(nil, 1, time.Minute).Allow(ctx, "k")
		assert.Error(t, err)
	})

	t.Run("ServerDown", func(t *testing.T) {
		s, err := miniredis.Run()
		require.NoError(t, err)
		client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
		defer client.Close()
		s.Close()

		_, err = NewRedisRateLimiter(client, 1, time.Minute).Allow(ctx, "k")
		assert.Error(t, err)
		assert.Error(t, Ping(ctx, client))
	})

	t.Run("CloseNil", func(t *testing.T) {
		assert.NoError(t, Close(nil))
	})
}
