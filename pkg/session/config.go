package session

import "time"

// Config holds session lifecycle configuration.
type Config struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sessionToken"`

	// Window is the total session lifetime granted at creation and at
	// every renewal (sliding expiration).
	Window time.Duration `env:"SESSION_WINDOW" envDefault:"720h"`

	// SecureCookies enables the Secure flag on the session cookie.
	// Keep it on in production; off allows plain-HTTP development.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the production defaults: a 30-day window under
// the cookie name "sessionToken".
func DefaultConfig() Config {
	return Config{
		CookieName: "sessionToken",
		Window:     30 * 24 * time.Hour,
	}
}

// RenewalThreshold is the trailing fraction of the window within which
// an authenticated request extends the session: one tenth of the total
// window, so 3 days for the default 30-day window.
func (c Config) RenewalThreshold() time.Duration {
	return c.Window / 10
}
