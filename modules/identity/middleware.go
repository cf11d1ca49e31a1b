package identity

import (
	"net/http"

	"github.com/registrahq/registra/core"
	"github.com/registrahq/registra/pkg/session"
)

// Authenticate resolves the session cookie to a user and attaches the
// identity to the request context. Any failure, whether a missing
// cookie, a dead session or a vanished user, yields 401 and clears the
// cookie so the client stops presenting the token. Session renewal
// happens here as a side effect of resolution.
func Authenticate(sessions *session.Manager, users UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := sessions.ReadToken(r)
			if err != nil {
				unauthorized(w, sessions)
				return
			}

			sess, err := sessions.Resolve(r.Context(), w, tok)
			if err != nil {
				unauthorized(w, sessions)
				return
			}

			user, err := users.FindByID(r.Context(), sess.UserID)
			if err != nil || user.Status != StatusApproved {
				unauthorized(w, sessions)
				return
			}

			ctx := SetIdentityToContext(r.Context(), &Identity{User: user, Session: sess})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability forbids requests whose user lacks the exact
// capability. A 403 never touches the cookie; the session stays valid,
// the user just cannot act here.
func RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentityFromContext(r.Context())
			if id == nil {
				core.WriteError(w, core.ErrUnauthorized)
				return
			}
			if !id.User.Can(capability) {
				core.WriteError(w, core.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin forbids non-admin users. Role is checked directly; admin
// access does not flow through the capability list.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentityFromContext(r.Context())
			if id == nil {
				core.WriteError(w, core.ErrUnauthorized)
				return
			}
			if !id.User.IsAdmin() {
				core.WriteError(w, core.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, sessions *session.Manager) {
	sessions.ClearCookie(w)
	core.WriteError(w, core.ErrUnauthorized)
}
