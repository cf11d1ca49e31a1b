package ratelimiter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps bucket state in Redis so every portal instance sees
// the same counters. The refill-and-consume step runs as a single Lua
// script, so concurrent logins cannot interleave between read and
// write.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisClock overrides the time source fed to the Lua script, for
// tests.
func WithRedisClock(now func() time.Time) RedisStoreOption {
	return func(s *RedisStore) { s.now = now }
}

// NewRedisStore wraps an existing Redis client. Keys are namespaced
// under the given prefix.
func NewRedisStore(client *redis.Client, prefix string, opts ...RedisStoreOption) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	s := &RedisStore{client: client, prefix: prefix, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// consumeScript refills the bucket from elapsed time, consumes the
// requested tokens and returns the remaining count. State lives in a
// hash {tokens, last_refill_ms} expiring after two idle refill
// intervals.
var consumeScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local refill_interval_ms = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local now_ms = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill_ms = tonumber(state[2])

if tokens == nil then
  tokens = capacity
  last_refill_ms = now_ms
else
  local elapsed_ms = now_ms - last_refill_ms
  if elapsed_ms > 0 then
    tokens = math.min(tokens + refill_rate * elapsed_ms / refill_interval_ms, capacity)
    last_refill_ms = now_ms
  end
end

local remaining = tokens - requested
if remaining >= 0 then
  tokens = remaining
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill_ms)
redis.call('PEXPIRE', key, refill_interval_ms * 2)

-- Floor before returning so a fractional deficit stays negative; a
-- denied request must never round up to zero remaining.
return tostring(math.floor(remaining))
`)

func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	now := s.now()

	raw, err := consumeScript.Run(ctx, s.client,
		[]string{s.prefix + ":" + key},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		tokens,
		now.UnixMilli(),
	).Text()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}

	// The script floors its result, but Lua serializes numbers as
	// floats, so parse as one and truncate after.
	remaining, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}

	return int(remaining), now.Add(config.RefillInterval), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+":"+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
