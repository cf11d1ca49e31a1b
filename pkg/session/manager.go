package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/registrahq/registra/pkg/cookie"
	"github.com/registrahq/registra/pkg/token"
	"github.com/registrahq/registra/pkg/useragent"
)

// Manager owns the session lifecycle: creation at login, validity
// checks, sliding renewal and invalidation at logout. It is explicitly
// constructed once per process with its store and cookie manager; there
// is no package-level state.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	cfg     Config
	now     func() time.Time
}

// NewManager builds a Manager around the given store and cookie manager.
func NewManager(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		cookies: cookies,
		cfg:     DefaultConfig(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start creates a session for the user who just logged in and issues the
// session cookie. Every login gets its own session; concurrent logins
// from the same user are independent rows. The raw User-Agent header is
// parsed into device metadata attached to the record.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, userID uuid.UUID, rawUserAgent string) (*Session, error) {
	tok, err := token.Generate()
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := &Session{
		ID:        uuid.New(),
		Token:     tok,
		UserID:    userID,
		Device:    useragent.Parse(rawUserAgent),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.cfg.Window),
	}

	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	m.setCookie(w, tok)
	return sess, nil
}

// Validate resolves a raw token to its live session. The token format is
// checked first so malformed input is rejected without a store
// round-trip; unknown and expired tokens are indistinguishable from the
// caller's point of view.
func (m *Manager) Validate(ctx context.Context, tok string) (*Session, error) {
	if !token.Valid(tok) {
		return nil, ErrNoActiveSession
	}

	sess, err := m.store.FindValidByToken(ctx, tok, m.now())
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return sess, nil
}

// Resolve is Validate plus opportunistic sliding renewal: when the
// session is inside the trailing renewal threshold of its window, the
// expiry is pushed out to now+window and the cookie is re-issued with
// the same token. The boundary is strict: a session exactly at the
// threshold is not renewed.
//
// Two concurrent renewals of the same session race benignly; both write
// near-identical expiries and the store is last-write-wins.
func (m *Manager) Resolve(ctx context.Context, w http.ResponseWriter, tok string) (*Session, error) {
	sess, err := m.Validate(ctx, tok)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if sess.ExpiresAt.Sub(now) < m.cfg.RenewalThreshold() {
		renewed, err := m.store.RenewExpiry(ctx, sess.ID, now.Add(m.cfg.Window), now)
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				// Invalidated between lookup and renewal.
				return nil, ErrNoActiveSession
			}
			return nil, err
		}
		renewed.Token = sess.Token
		m.setCookie(w, sess.Token)
		return renewed, nil
	}

	return sess, nil
}

// End invalidates the session and clears the cookie. The row stays in
// storage with its expiry pinned a day before creation, so it reads as
// expired under any clock from now on.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if _, err := m.store.Invalidate(ctx, sess.ID, m.now()); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	m.ClearCookie(w)
	return nil
}

// ListForUser returns the user's sessions, most recently active first,
// with tokens omitted.
func (m *Manager) ListForUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	return m.store.ListByUser(ctx, userID)
}

// ReadToken extracts the raw session token from the request cookie.
func (m *Manager) ReadToken(r *http.Request) (string, error) {
	return m.cookies.Get(r, m.cfg.CookieName)
}

// ClearCookie instructs the client to drop the session cookie. Every
// Unauthorized response goes through here so clients stop presenting
// dead tokens.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	m.cookies.Delete(w, m.cfg.CookieName)
}

func (m *Manager) setCookie(w http.ResponseWriter, tok string) {
	m.cookies.Set(w, m.cfg.CookieName, tok,
		cookie.WithMaxAge(int(m.cfg.Window.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithPath("/"),
		cookie.WithSecure(m.cfg.SecureCookies),
	)
}
