package ratelimiter_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrahq/registra/pkg/ratelimiter"
)

// redisStore connects to the Redis named by TEST_REDIS_URL, skipping
// the test when none is configured.
func redisStore(t *testing.T, now func() time.Time) *ratelimiter.RedisStore {
	t.Helper()

	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { client.Close() })

	return ratelimiter.NewRedisStore(client, "test:"+t.Name(),
		ratelimiter.WithRedisClock(now),
	)
}

func TestRedisStore_FractionalBalanceStillDenies(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := redisStore(t, func() time.Time { return now })

	ctx := context.Background()
	cfg := ratelimiter.Config{
		Capacity:       5,
		RefillRate:     5,
		RefillInterval: time.Minute,
	}
	require.NoError(t, store.Reset(ctx, "k"))

	for range 5 {
		remaining, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
		require.NoError(t, err)
		require.GreaterOrEqual(t, remaining, 0)
	}

	// Half a token refilled; a whole token is still unavailable, so
	// repeated attempts deny without consuming the balance.
	now = now.Add(6 * time.Second)
	for i := range 20 {
		remaining, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
		require.NoError(t, err)
		assert.Negative(t, remaining, "attempt %d passed with a fractional balance", i+1)
	}

	// The first whole token completes; exactly one attempt goes
	// through.
	now = now.Add(6 * time.Second)
	remaining, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	remaining, _, err = store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)
	assert.Negative(t, remaining)
}

func TestRedisStore_BurstAndReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := redisStore(t, func() time.Time { return now })

	ctx := context.Background()
	cfg := ratelimiter.Config{
		Capacity:       2,
		RefillRate:     1,
		RefillInterval: time.Hour,
	}
	require.NoError(t, store.Reset(ctx, "k"))

	for range 2 {
		remaining, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
		require.NoError(t, err)
		require.GreaterOrEqual(t, remaining, 0)
	}

	remaining, _, err := store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)
	assert.Negative(t, remaining)

	require.NoError(t, store.Reset(ctx, "k"))

	remaining, _, err = store.ConsumeTokens(ctx, "k", 1, cfg)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, remaining, 0)
}
