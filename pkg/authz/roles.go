package authz

// Roles are a second authorization axis, independent of capability
// sets: some endpoints gate on role, others on capabilities. Exactly
// one role carries administrative power.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
)

// IsAdmin reports whether the role is the distinguished admin role.
// The comparison is exact; there is no role hierarchy beyond this one
// distinction.
func IsAdmin(role string) bool {
	return role == RoleAdmin
}

// KnownRole reports whether the role is one this system assigns.
func KnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	default:
		return false
	}
}
