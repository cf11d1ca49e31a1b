package company

import "errors"

var (
	ErrCompanyNotFound        = errors.New("company.not_found")
	ErrRegistrationNumberUsed = errors.New("company.registration_number_used")
	ErrInvalidParams          = errors.New("company.invalid_params")
)
