package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrahq/registra/modules/identity"
	"github.com/registrahq/registra/pkg/authz"
)

// loginUser runs a real login and returns the issued session cookie.
func loginUser(t *testing.T, f *fixture, emailAddr, password string) *http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	_, _, err := f.svc.Login(context.Background(), w, identity.LoginParams{
		Email: emailAddr, Password: password, UserAgent: testUA,
	})
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// okHandler records whether it ran and what identity it saw.
type okHandler struct {
	called bool
	id     *identity.Identity
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.id = identity.GetIdentityFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func assertCookieCleared(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionToken", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid session attaches identity", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		user := f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		next := &okHandler{}
		handler := identity.Authenticate(f.mgr, f.users)(next)

		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.AddCookie(c)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, next.called)
		require.NotNil(t, next.id)
		assert.Equal(t, user.ID, next.id.User.ID)
		assert.Equal(t, user.ID, next.id.Session.UserID)
		// No renewal needed, so no cookie re-issue.
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		next := &okHandler{}
		handler := identity.Authenticate(f.mgr, f.users)(next)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
		assertCookieCleared(t, w)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		next := &okHandler{}
		handler := identity.Authenticate(f.mgr, f.users)(next)

		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.AddCookie(&http.Cookie{Name: "sessionToken", Value: "garbage-not-a-valid-token"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
		assertCookieCleared(t, w)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		f.clock.Advance(31 * 24 * time.Hour)

		next := &okHandler{}
		handler := identity.Authenticate(f.mgr, f.users)(next)

		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.AddCookie(c)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, next.called)
		assertCookieCleared(t, w)
	})

	t.Run("renewal re-issues cookie with same token", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		// Inside the final tenth of the 30 day window.
		f.clock.Advance(27*24*time.Hour + time.Second)

		next := &okHandler{}
		handler := identity.Authenticate(f.mgr, f.users)(next)

		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.AddCookie(c)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, c.Value, cookies[0].Value)
		assert.Positive(t, cookies[0].MaxAge)
	})
}

func TestRequireCapability(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, f *fixture, capability string, c *http.Cookie) (*httptest.ResponseRecorder, *okHandler) {
		t.Helper()
		next := &okHandler{}
		handler := identity.Authenticate(f.mgr, f.users)(
			identity.RequireCapability(capability)(next),
		)
		r := httptest.NewRequest(http.MethodGet, "/companies", nil)
		r.AddCookie(c)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w, next
	}

	t.Run("granted capability passes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		w, next := serve(t, f, "read:company", c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, next.called)
	})

	t.Run("missing capability forbidden without cookie clear", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		w, next := serve(t, f, "edit:company", c)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, next.called)
		// The session survives a 403; only 401 clears the cookie.
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("exact match only", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		// read:company does not imply read:company:reports.
		w, _ := serve(t, f, "read:company:reports", c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, f *fixture, c *http.Cookie) *httptest.ResponseRecorder {
		t.Helper()
		handler := identity.Authenticate(f.mgr, f.users)(
			identity.RequireAdmin()(&okHandler{}),
		)
		r := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		r.AddCookie(c)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "admin@example.com", "longenough", authz.RoleAdmin)
		c := loginUser(t, f, "admin@example.com", "longenough")

		assert.Equal(t, http.StatusOK, serve(t, f, c).Code)
	})

	t.Run("member forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
		c := loginUser(t, f, "member@example.com", "longenough")

		w := serve(t, f, c)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}
