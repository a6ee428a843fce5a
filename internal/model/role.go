package model

// Role is the single authorization category assigned to a principal.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleTeacher    Role = "TEACHER"
	RoleStaff      Role = "STAFF"
	RoleParent     Role = "PARENT"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"

	// RoleUser is the implicit guest role. Unauthenticated principals and any
	// unrecognized role value are treated as USER.
	RoleUser Role = "USER"
)

// AssignableRoles lists the roles a user account can be stored with.
func AssignableRoles() []Role {
	return []Role{RoleStudent, RoleTeacher, RoleStaff, RoleParent, RoleAdmin, RoleSuperAdmin}
}

// AllRoles lists every role known to the system, including the guest role.
func AllRoles() []Role {
	return append(AssignableRoles(), RoleUser)
}

// ParseRole maps a raw role value (from a session, a token or a database row)
// onto the closed role set. Anything unrecognized becomes RoleUser.
func ParseRole(raw string) Role {
	switch r := Role(raw); r {
	case RoleStudent, RoleTeacher, RoleStaff, RoleParent, RoleAdmin, RoleSuperAdmin, RoleUser:
		return r
	default:
		return RoleUser
	}
}

// IsKnown reports whether r is one of the closed set of roles.
func (r Role) IsKnown() bool {
	return ParseRole(string(r)) == r
}

// IsAssignable reports whether r can be stored on a user account.
func (r Role) IsAssignable() bool {
	return r.IsKnown() && r != RoleUser
}

// IsPrivileged reports whether r is an administrative role whose accounts may
// only be managed by holders of PermissionAdminsManage.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) String() string {
	return string(r)
}
