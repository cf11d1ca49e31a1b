package authz

import "errors"

var (
	// ErrRoleDefinitions indicates the role definitions file could not
	// be read or contained an unknown role.
	ErrRoleDefinitions = errors.New("authz: invalid role definitions")
)
