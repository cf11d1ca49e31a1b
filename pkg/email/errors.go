package email

import "errors"

var (
	// ErrInvalidConfig indicates missing or malformed sender configuration.
	ErrInvalidConfig = errors.New("email: invalid configuration")

	// ErrInvalidParams indicates undeliverable message parameters.
	ErrInvalidParams = errors.New("email: invalid send parameters")

	// ErrSendFailed indicates the provider rejected or failed delivery.
	ErrSendFailed = errors.New("email: send failed")
)
