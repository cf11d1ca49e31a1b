package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/registrahq/registra/pkg/authz"
)

// Status tracks where a registration sits in the approval flow. New
// accounts start pending and cannot log in until an administrator
// approves them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// User is a portal account. Role is coarse (admin vs everyone else)
// while Capabilities carry the fine-grained grants checked per route.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Capabilities []string  `json:"capabilities"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Can reports whether the user holds the exact capability. There is no
// hierarchy or wildcard matching; a capability either appears in the
// grant list or it does not.
func (u *User) Can(capability string) bool {
	return authz.Can(u.Capabilities, capability)
}

// IsAdmin reports whether the user carries the admin role. Admin status
// is independent of the capability list.
func (u *User) IsAdmin() bool {
	return authz.IsAdmin(u.Role)
}
