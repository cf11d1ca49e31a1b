package identity

import (
	"context"

	"github.com/registrahq/registra/pkg/session"
)

// Identity is the authenticated principal attached to a request: the
// account plus the session that proved it.
type Identity struct {
	User    *User
	Session *session.Session
}

type identityContextKey struct{}

// SetIdentityToContext stores the authenticated identity for downstream
// handlers in the middleware chain.
func SetIdentityToContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// GetIdentityFromContext retrieves the authenticated identity.
// Returns nil when the request did not pass authentication.
func GetIdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
