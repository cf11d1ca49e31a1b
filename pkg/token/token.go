package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

const (
	// Length is the number of characters in a session token.
	Length = 96

	// entropyBytes is the number of random bytes behind a token.
	// 48 bytes hex-encode to exactly Length characters.
	entropyBytes = Length / 2
)

// Generate returns a cryptographically secure random session token.
// Tokens are lowercase hex, always exactly Length characters long.
//
// An unavailable entropy source is not recoverable: issuing predictable
// session tokens would be worse than crashing, so the error is surfaced
// and callers are expected to treat it as fatal.
func Generate() (string, error) {
	b := make([]byte, entropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrEntropyUnavailable, err)
	}
	return hex.EncodeToString(b), nil
}

// Valid reports whether s has the exact shape of a generated token:
// Length characters, all from the lowercase hex alphabet. It is a cheap
// format check meant to run before any store lookup, so malformed input
// never costs a round-trip.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
