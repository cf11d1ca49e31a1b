package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/registrahq/registra/pkg/useragent"
)

// Session is one login's server-side record. The token proves ownership
// and travels only in the session cookie; listings omit it.
//
// Sessions are soft-expired: logout and natural expiry both leave the
// row in place for audit history, they only move ExpiresAt into the
// past.
type Session struct {
	ID        uuid.UUID            `json:"id"`
	Token     string               `json:"-"`
	UserID    uuid.UUID            `json:"user_id"`
	Device    useragent.DeviceInfo `json:"device"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

// Active reports whether the session is valid for authentication at the
// given instant. Expiry is exclusive: a session whose ExpiresAt equals
// now is already expired.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.ExpiresAt.After(now)
}
