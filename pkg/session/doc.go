// Package session implements the portal's session lifecycle: opaque
// high-entropy tokens bound to an HTTP cookie, a sliding 30-day expiry
// window renewed when a request lands inside the trailing tenth of the
// window, and soft invalidation that keeps expired rows for audit
// history.
//
// The Manager is the single entry point. It validates token format
// before any store round-trip, treats unknown and expired tokens
// identically, never rotates a token on renewal, and re-validates
// against the store on every request rather than caching validity
// in-process, so an invalidation is visible immediately everywhere.
package session
