package session

import "errors"

var (
	// ErrNoActiveSession indicates the presented token does not resolve
	// to a live session: missing cookie, malformed token, unknown token
	// or expired session all collapse into this one error so callers
	// leak nothing about which check failed.
	ErrNoActiveSession = errors.New("session.no_active_session")

	// ErrSessionNotFound indicates a store lookup by id or token found
	// no matching row.
	ErrSessionNotFound = errors.New("session.not_found")
)
