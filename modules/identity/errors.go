package identity

import "errors"

var (
	ErrUserNotFound       = errors.New("identity.user_not_found")
	ErrEmailTaken         = errors.New("identity.email_taken")
	ErrInvalidCredentials = errors.New("identity.invalid_credentials")
	ErrAccountPending     = errors.New("identity.account_pending")
	ErrAccountRejected    = errors.New("identity.account_rejected")
	ErrNotPending         = errors.New("identity.not_pending")
	ErrInvalidParams      = errors.New("identity.invalid_params")
	ErrTooManyAttempts    = errors.New("identity.too_many_attempts")
)
