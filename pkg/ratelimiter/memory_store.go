package ratelimiter

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucketState struct {
	tokens     float64
	lastRefill time.Time
}

// MemoryStore keeps bucket state in process memory. Suitable for tests
// and single-instance deployments; multi-instance portals share state
// through the Redis store instead.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock overrides the time source, for tests.
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		buckets: make(map[string]*bucketState),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return 0, time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	state, ok := s.buckets[key]
	if !ok {
		state = &bucketState{tokens: float64(config.Capacity), lastRefill: now}
		s.buckets[key] = state
	} else {
		// Refill proportionally to elapsed time, capped at capacity.
		elapsed := now.Sub(state.lastRefill)
		refill := float64(config.RefillRate) * elapsed.Seconds() / config.RefillInterval.Seconds()
		state.tokens = min(state.tokens+refill, float64(config.Capacity))
		state.lastRefill = now
	}

	// A denied request consumes nothing. Flooring keeps a fractional
	// deficit negative: a balance of 0.5 minus one token denies as -1,
	// never reads as 0.
	remaining := state.tokens - float64(tokens)
	if remaining >= 0 {
		state.tokens = remaining
	}

	resetAt := now.Add(config.RefillInterval)
	return int(math.Floor(remaining)), resetAt, nil
}

func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}
