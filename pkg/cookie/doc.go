// Package cookie provides a small cookie manager with shared default
// attributes and functional per-call overrides.
//
// The manager is explicitly constructed and passed to components that
// need it; there is no package-level state. Defaults are secure for a
// browser-facing portal (Path=/, HttpOnly, SameSite=Lax) and deletion
// always writes a sentinel value with a negative Max-Age so stale
// clients stop presenting dead values.
package cookie
