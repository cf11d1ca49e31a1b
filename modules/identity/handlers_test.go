package identity_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrahq/registra/core"
	"github.com/registrahq/registra/modules/identity"
	"github.com/registrahq/registra/pkg/authz"
)

func decodeData(t *testing.T, body io.Reader, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func errorCode(t *testing.T, body io.Reader) string {
	t.Helper()
	var envelope core.JSONResponse
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error.Code
}

func TestHandler_RegistrationFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerApproved(t, "admin@example.com", "longenough", authz.RoleAdmin)
	adminCookie := loginUser(t, f, "admin@example.com", "longenough")

	srv := httptest.NewServer(identity.NewHandler(identity.NewService(
		f.users, f.mgr, mustRoles(t), f.mailer,
		identity.WithServiceClock(f.clock.Now),
	)).Router())
	defer srv.Close()

	client := srv.Client()

	// Register a new account.
	resp, err := client.Post(srv.URL+"/auth/register", "application/json",
		strings.NewReader(`{"email":"new@example.com","name":"New User","password":"longenough"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created identity.User
	decodeData(t, resp.Body, &created)
	resp.Body.Close()
	assert.Equal(t, identity.StatusPending, created.Status)

	// Login is refused while pending.
	resp, err = client.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"new@example.com","password":"longenough"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "account_pending", errorCode(t, resp.Body))
	resp.Body.Close()

	// Admin sees the pending registration.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/admin/users/", nil)
	require.NoError(t, err)
	req.AddCookie(adminCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pending []identity.User
	decodeData(t, resp.Body, &pending)
	resp.Body.Close()
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	// Admin approves.
	req, err = http.NewRequest(http.MethodPost,
		fmt.Sprintf("%s/admin/users/%s/approve", srv.URL, created.ID),
		strings.NewReader(`{"role":"MEMBER"}`))
	require.NoError(t, err)
	req.AddCookie(adminCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Login now succeeds and sets the session cookie.
	resp, err = client.Post(srv.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"new@example.com","password":"longenough"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "sessionToken" {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	// /me reflects the approved account.
	req, err = http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	require.NoError(t, err)
	req.AddCookie(sessionCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me identity.User
	decodeData(t, resp.Body, &me)
	resp.Body.Close()
	assert.Equal(t, created.ID, me.ID)
	assert.Equal(t, []string{"read:company"}, me.Capabilities)

	// Session list never exposes tokens.
	req, err = http.NewRequest(http.MethodGet, srv.URL+"/me/sessions", nil)
	require.NoError(t, err)
	req.AddCookie(sessionCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotContains(t, string(raw), sessionCookie.Value)

	// Logout kills the session.
	req, err = http.NewRequest(http.MethodPost, srv.URL+"/auth/logout", nil)
	require.NoError(t, err)
	req.AddCookie(sessionCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req, err = http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	require.NoError(t, err)
	req.AddCookie(sessionCookie)
	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestHandler_AdminRoutesForbiddenForMembers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)
	memberCookie := loginUser(t, f, "member@example.com", "longenough")

	srv := httptest.NewServer(identity.NewHandler(identity.NewService(
		f.users, f.mgr, mustRoles(t), f.mailer,
		identity.WithServiceClock(f.clock.Now),
	)).Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/admin/users/", nil)
	require.NoError(t, err)
	req.AddCookie(memberCookie)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden", errorCode(t, resp.Body))
	// No Set-Cookie on 403; the session stays usable.
	assert.Empty(t, resp.Cookies())
}

func TestHandler_LoginValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	srv := httptest.NewServer(identity.NewHandler(identity.NewService(
		f.users, f.mgr, mustRoles(t), f.mailer,
		identity.WithServiceClock(f.clock.Now),
	)).Router())
	defer srv.Close()

	t.Run("malformed body", func(t *testing.T) {
		resp, err := srv.Client().Post(srv.URL+"/auth/login", "application/json",
			strings.NewReader(`{not json`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown account", func(t *testing.T) {
		resp, err := srv.Client().Post(srv.URL+"/auth/login", "application/json",
			strings.NewReader(`{"email":"ghost@example.com","password":"whatever1"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "invalid_credentials", errorCode(t, resp.Body))
	})
}

func TestHandler_FailedLoginClearsCookie(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.registerApproved(t, "member@example.com", "longenough", authz.RoleMember)

	srv := httptest.NewServer(identity.NewHandler(identity.NewService(
		f.users, f.mgr, mustRoles(t), f.mailer,
		identity.WithServiceClock(f.clock.Now),
	)).Router())
	defer srv.Close()

	// A client retrying with a stale cookie and a wrong password must
	// be told to drop the cookie along with the 401.
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/login",
		strings.NewReader(`{"email":"member@example.com","password":"wrong password"}`))
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "sessionToken", Value: "stale"})

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", errorCode(t, resp.Body))

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionToken", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func mustRoles(t *testing.T) *authz.RoleSource {
	t.Helper()
	roles, err := authz.ParseRoleSource(strings.NewReader(testRoles))
	require.NoError(t, err)
	return roles
}
