package ratelimiter

import (
	"context"
	"time"
)

// Config defines the token bucket parameters.
type Config struct {
	Capacity       int           // maximum tokens (burst limit)
	RefillRate     int           // tokens added per interval
	RefillInterval time.Duration // how often tokens are added
}

// Result is the outcome of a rate limit check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before retrying, zero when the
// request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Store is the state backend for buckets.
type Store interface {
	// ConsumeTokens takes tokens from the key's bucket, refilling it
	// according to config first. A negative remaining count means the
	// request must be denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears the bucket state for the key.
	Reset(ctx context.Context, key string) error
}
