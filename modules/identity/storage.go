package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore persists portal accounts. Implementations return
// ErrUserNotFound when no row matches and ErrEmailTaken on a duplicate
// email at creation.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Approve moves a pending user to approved and installs the role
	// and capability grants decided by the administrator.
	Approve(ctx context.Context, id uuid.UUID, role string, capabilities []string, updatedAt time.Time) (*User, error)

	// Reject marks a pending user rejected. The row is kept so repeat
	// registrations with the same email surface as conflicts.
	Reject(ctx context.Context, id uuid.UUID, updatedAt time.Time) (*User, error)

	// ListPending returns users awaiting review, oldest first.
	ListPending(ctx context.Context) ([]User, error)
}
