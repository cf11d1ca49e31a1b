// Package authz evaluates authorization along the portal's two
// independent axes: a capability set checked by flat exact-string
// membership, and a role field with exactly one distinguished admin
// role. Both functions are pure booleans; converting a false into a
// Forbidden response is the HTTP layer's job.
//
// Default capability sets per role come from a YAML definitions file
// loaded once at startup via RoleSource.
package authz
