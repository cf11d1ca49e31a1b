package cookie

import (
	"errors"
	"net/http"
	"time"
)

// clearedValue is written when a cookie is deleted so that clients which
// ignore Max-Age still stop presenting a usable value.
const clearedValue = "deleted"

// Manager writes and reads cookies with a shared set of default
// attributes. Construct one per process and pass it to every component
// that touches cookies; per-call options override the defaults.
type Manager struct {
	defaults Options
}

// New returns a Manager with secure-by-default attributes: Path=/,
// HttpOnly, SameSite=Lax. The Secure flag is left to the caller since it
// depends on the deployment environment.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	defaults = applyOptions(defaults, opts)

	return &Manager{defaults: defaults}
}

// Set writes a cookie to the response using the manager defaults merged
// with any per-call options.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the value of the named cookie from the request.
// Returns ErrCookieNotFound when the request carries no such cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete instructs the client to drop the named cookie immediately: a
// sentinel value with MaxAge=-1 and an Expires in the past.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    clearedValue,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}
