package identity

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hash time against brute-force resistance. The
// default cost is fine for an internal portal; raise it only with a
// latency budget in hand.
const bcryptCost = bcrypt.DefaultCost

// minPasswordLength is enforced at registration, not at login, so
// existing accounts keep working if the policy tightens.
const minPasswordLength = 8

// HashPassword derives a bcrypt hash for storage. bcrypt truncates at
// 72 bytes; longer inputs are rejected rather than silently clipped.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidParams, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return string(hash), nil
}

// VerifyPassword checks a candidate password against a stored hash.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}
