// Package token generates and format-checks opaque session tokens.
//
// A token is 48 bytes of crypto/rand entropy hex-encoded to a fixed
// 96-character lowercase string. The fixed shape lets callers reject
// malformed input with Valid before spending a round-trip on a store
// lookup.
package token
