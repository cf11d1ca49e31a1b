package token

import "errors"

var (
	// ErrEntropyUnavailable indicates the system entropy source failed.
	ErrEntropyUnavailable = errors.New("token: entropy source unavailable")
)
