package session

import "time"

// Option configures a Manager.
type Option func(*Manager)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.cfg.CookieName = name
	}
}

// WithWindow overrides the session lifetime window.
func WithWindow(window time.Duration) Option {
	return func(m *Manager) {
		m.cfg.Window = window
	}
}

// WithSecureCookies toggles the Secure flag on issued cookies.
func WithSecureCookies(secure bool) Option {
	return func(m *Manager) {
		m.cfg.SecureCookies = secure
	}
}

// WithClock replaces the time source. Tests use this to walk sessions
// across expiry and renewal boundaries deterministically.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
