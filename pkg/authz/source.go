package authz

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RoleSource provides the default capability set granted to a user when
// their account is approved under a given role.
type RoleSource struct {
	defaults map[string][]string
}

// LoadRoleSource reads role definitions from a YAML file of the shape:
//
//	ADMIN:
//	  - read:users
//	  - edit:users
//	MEMBER:
//	  - read:company
func LoadRoleSource(path string) (*RoleSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrRoleDefinitions, err)
	}
	defer f.Close()

	return ParseRoleSource(f)
}

// ParseRoleSource decodes role definitions from YAML.
func ParseRoleSource(r io.Reader) (*RoleSource, error) {
	var defs map[string][]string
	if err := yaml.NewDecoder(r).Decode(&defs); err != nil {
		return nil, errors.Join(ErrRoleDefinitions, err)
	}

	for role := range defs {
		if !KnownRole(role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrRoleDefinitions, role)
		}
		defs[role] = Normalize(defs[role])
	}

	return &RoleSource{defaults: defs}, nil
}

// DefaultCapabilities returns the capability set granted with the role.
// Unknown roles get an empty set rather than an error: a role without
// definitions simply grants nothing.
func (s *RoleSource) DefaultCapabilities(role string) []string {
	caps := s.defaults[role]
	out := make([]string, len(caps))
	copy(out, caps)
	return out
}
