package rbac

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/sekolah-backend/internal/model"
)

// ErrForbidden is matched (errors.Is) by every authorization denial.
var ErrForbidden = errors.New("forbidden")

// Requirement describes how a guard combined its inputs.
type Requirement string

const (
	RequirePermission Requirement = "permission"
	RequireAll        Requirement = "all"
	RequireAny        Requirement = "any"
	RequireRole       Requirement = "role"
)

// ForbiddenError carries the details of a denial for logging. Its message is
// never shown to clients.
type ForbiddenError struct {
	Role        model.Role
	Requirement Requirement
	Permissions []model.Permission
	Roles       []model.Role
}

func (e *ForbiddenError) Error() string {
	var want []string
	if e.Requirement == RequireRole {
		for _, r := range e.Roles {
			want = append(want, string(r))
		}
	} else {
		for _, p := range e.Permissions {
			want = append(want, string(p))
		}
	}
	return fmt.Sprintf("forbidden: role %s does not satisfy %s [%s]", e.Role, e.Requirement, strings.Join(want, ", "))
}

// Is makes errors.Is(err, ErrForbidden) hold for every *ForbiddenError.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// Authorize returns nil if role holds p, a *ForbiddenError otherwise.
func (r *Resolver) Authorize(role model.Role, p model.Permission) error {
	if HasPermission(r.Resolve(role), p) {
		return nil
	}
	return r.deny(role, RequirePermission, []model.Permission{p}, nil)
}

// AuthorizeAll returns nil if role holds every one of perms.
func (r *Resolver) AuthorizeAll(role model.Role, perms ...model.Permission) error {
	if HasAllPermissions(r.Resolve(role), perms...) {
		return nil
	}
	return r.deny(role, RequireAll, perms, nil)
}

// AuthorizeAny returns nil if role holds at least one of perms. An empty perms
// list always denies.
func (r *Resolver) AuthorizeAny(role model.Role, perms ...model.Permission) error {
	if HasAnyPermission(r.Resolve(role), perms...) {
		return nil
	}
	return r.deny(role, RequireAny, perms, nil)
}

// AuthorizeRole returns nil if role is one of allowed or is SUPER_ADMIN.
func (r *Resolver) AuthorizeRole(role model.Role, allowed ...model.Role) error {
	if HasRole(role, allowed...) {
		return nil
	}
	return r.deny(role, RequireRole, nil, allowed)
}

func (r *Resolver) deny(role model.Role, req Requirement, perms []model.Permission, roles []model.Role) error {
	return &ForbiddenError{
		Role:        model.ParseRole(string(role)),
		Requirement: req,
		Permissions: append([]model.Permission(nil), perms...),
		Roles:       append([]model.Role(nil), roles...),
	}
}
