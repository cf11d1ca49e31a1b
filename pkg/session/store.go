package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists session records. Implementations must honor context
// cancellation on every call; each operation is a single atomic write or
// read, so a cancelled call never leaves a session half-mutated.
//
// Updates are last-write-wins. Sessions are per-user and per-device, so
// the only realistic race is two tabs renewing the same session, and
// both compute near-identical expiries.
type Store interface {
	// Create persists a new session. The record arrives fully formed
	// (token, expiry and device metadata already set).
	Create(ctx context.Context, s *Session) error

	// FindValidByToken returns the session with the exact token whose
	// ExpiresAt is after now. An expired or unknown token returns
	// ErrSessionNotFound; expiry is not an error condition.
	FindValidByToken(ctx context.Context, token string, now time.Time) (*Session, error)

	// RenewExpiry moves the session's expiry forward and bumps
	// UpdatedAt. Returns ErrSessionNotFound for an unknown id.
	RenewExpiry(ctx context.Context, id uuid.UUID, expiresAt, updatedAt time.Time) (*Session, error)

	// Invalidate backdates the session's expiry to one day before its
	// CreatedAt, a fixed point in the past that reads as expired under
	// any clock. The row is kept. Returns ErrSessionNotFound for an
	// unknown id.
	Invalidate(ctx context.Context, id uuid.UUID, updatedAt time.Time) (*Session, error)

	// ListByUser returns the user's sessions ordered by UpdatedAt
	// descending, most recently active first. Tokens are omitted.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)
}
