package rbac

import "github.com/stemsi/sekolah-backend/internal/model"

// HasPermission reports whether p is in set.
func HasPermission(set PermissionSet, p model.Permission) bool {
	return set.Has(p)
}

// HasAllPermissions reports whether every one of perms is in set. It is
// vacuously true when perms is empty.
func HasAllPermissions(set PermissionSet, perms ...model.Permission) bool {
	for _, p := range perms {
		if !set.Has(p) {
			return false
		}
	}
	return true
}

// HasAnyPermission reports whether at least one of perms is in set. It is
// vacuously false when perms is empty.
func HasAnyPermission(set PermissionSet, perms ...model.Permission) bool {
	for _, p := range perms {
		if set.Has(p) {
			return true
		}
	}
	return false
}

// HasRole reports whether role is one of allowed. SUPER_ADMIN always passes,
// whether or not it is listed. An unrecognized role is treated as USER, the
// same as Resolve does.
func HasRole(role model.Role, allowed ...model.Role) bool {
	role = model.ParseRole(string(role))
	if IsSuperAdmin(role) {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// IsAdmin reports whether role is ADMIN or SUPER_ADMIN.
func IsAdmin(role model.Role) bool {
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

// IsSuperAdmin reports whether role is SUPER_ADMIN.
func IsSuperAdmin(role model.Role) bool {
	return role == model.RoleSuperAdmin
}
