package company_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrahq/registra/modules/company"
	"github.com/registrahq/registra/modules/identity"
	"github.com/registrahq/registra/pkg/authz"
	"github.com/registrahq/registra/pkg/cookie"
	"github.com/registrahq/registra/pkg/email"
	"github.com/registrahq/registra/pkg/session"
)

const testRoles = `
ADMIN:
  - read:company
  - edit:company
MEMBER:
  - read:company
`

type noopMailer struct{}

func (noopMailer) Send(context.Context, email.SendParams) error { return nil }

type gateway struct {
	srv      *httptest.Server
	identity *identity.Service
}

// newGateway wires the company routes behind the authentication gate
// the way the application does.
func newGateway(t *testing.T) *gateway {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	users := identity.NewMemoryUserStore()
	mgr := session.NewManager(session.NewMemoryStore(), cookie.New(), session.WithClock(clock))

	roles, err := authz.ParseRoleSource(strings.NewReader(testRoles))
	require.NoError(t, err)

	identitySvc := identity.NewService(users, mgr, roles, noopMailer{},
		identity.WithServiceClock(clock),
	)
	companySvc := company.NewService(company.NewMemoryCompanyStore(),
		company.WithServiceClock(clock),
	)

	r := chi.NewRouter()
	r.Group(func(private chi.Router) {
		private.Use(identity.Authenticate(mgr, users))
		private.Mount("/companies", company.NewHandler(companySvc).Router())
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &gateway{srv: srv, identity: identitySvc}
}

// loginAs creates an approved account with the given role and returns
// its session cookie.
func (g *gateway) loginAs(t *testing.T, emailAddr, role string) *http.Cookie {
	t.Helper()

	user, err := g.identity.Register(context.Background(), identity.RegisterParams{
		Email: emailAddr, Name: "Test User", Password: "longenough",
	})
	require.NoError(t, err)
	_, err = g.identity.Approve(context.Background(), user.ID, role)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	_, _, err = g.identity.Login(context.Background(), w, identity.LoginParams{
		Email: emailAddr, Password: "longenough",
	})
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func (g *gateway) do(t *testing.T, method, path string, c *http.Cookie, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, g.srv.URL+path, reader)
	require.NoError(t, err)
	if c != nil {
		req.AddCookie(c)
	}

	resp, err := g.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeData(t *testing.T, body io.Reader, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHandler_CapabilityGating(t *testing.T) {
	t.Parallel()

	g := newGateway(t)
	adminCookie := g.loginAs(t, "admin@example.com", authz.RoleAdmin)
	memberCookie := g.loginAs(t, "member@example.com", authz.RoleMember)

	// Unauthenticated requests get 401 and a cleared cookie.
	resp := g.do(t, http.MethodGet, "/companies/", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Len(t, resp.Cookies(), 1)
	assert.Less(t, resp.Cookies()[0].MaxAge, 0)

	// Members cannot create.
	resp = g.do(t, http.MethodPost, "/companies/", memberCookie,
		`{"name":"Acme","registrationNumber":"REG-001"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, resp.Cookies())

	// Admins can.
	resp = g.do(t, http.MethodPost, "/companies/", adminCookie,
		`{"name":"Acme","registrationNumber":"REG-001"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created company.Company
	decodeData(t, resp.Body, &created)

	// Members can read what admins created.
	resp = g.do(t, http.MethodGet, "/companies/"+created.ID.String(), memberCookie, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched company.Company
	decodeData(t, resp.Body, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Acme", fetched.Name)

	// Members cannot update or delete.
	resp = g.do(t, http.MethodPut, "/companies/"+created.ID.String(), memberCookie,
		`{"name":"Evil Acme","registrationNumber":"REG-001"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = g.do(t, http.MethodDelete, "/companies/"+created.ID.String(), memberCookie, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHandler_CRUD(t *testing.T) {
	t.Parallel()

	g := newGateway(t)
	adminCookie := g.loginAs(t, "admin@example.com", authz.RoleAdmin)

	resp := g.do(t, http.MethodPost, "/companies/", adminCookie,
		`{"name":"Acme","registrationNumber":"REG-001"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created company.Company
	decodeData(t, resp.Body, &created)

	// Duplicate registration number conflicts.
	resp = g.do(t, http.MethodPost, "/companies/", adminCookie,
		`{"name":"Acme Clone","registrationNumber":"REG-001"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Update.
	resp = g.do(t, http.MethodPut, "/companies/"+created.ID.String(), adminCookie,
		`{"name":"Acme Holdings","registrationNumber":"REG-001"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated company.Company
	decodeData(t, resp.Body, &updated)
	assert.Equal(t, "Acme Holdings", updated.Name)

	// Invalid body is unprocessable.
	resp = g.do(t, http.MethodPut, "/companies/"+created.ID.String(), adminCookie,
		`{"name":"","registrationNumber":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Unknown ID is 404, malformed ID is 400.
	resp = g.do(t, http.MethodGet, "/companies/00000000-0000-0000-0000-000000000000", adminCookie, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = g.do(t, http.MethodGet, "/companies/not-a-uuid", adminCookie, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Delete.
	resp = g.do(t, http.MethodDelete, "/companies/"+created.ID.String(), adminCookie, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = g.do(t, http.MethodGet, "/companies/"+created.ID.String(), adminCookie, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
