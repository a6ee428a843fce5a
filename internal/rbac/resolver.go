package rbac

import (
	"errors"
	"fmt"
	"sync"

	"github.com/stemsi/sekolah-backend/internal/model"
)

// ErrInvalidTable is returned by NewResolver when a role table breaks one of
// the authorization invariants.
var ErrInvalidTable = errors.New("invalid role permission table")

// selfScopedRoles may only hold permissions that reach their own data.
var selfScopedRoles = []model.Role{model.RoleUser, model.RoleStudent, model.RoleTeacher, model.RoleParent}

// Resolver answers "what may this role do" from a frozen role table.
type Resolver struct {
	sets map[model.Role]PermissionSet
}

// RoleGrant pairs a role with its resolved permissions.
type RoleGrant struct {
	Role        model.Role    `json:"role"`
	Permissions PermissionSet `json:"permissions"`
}

// NewResolver validates table and freezes it. The table must only name known
// roles and catalogued permissions, SUPER_ADMIN must hold every permission any
// other role holds, and self-scoped roles must not hold administrative ones.
func NewResolver(table Table) (*Resolver, error) {
	sets := make(map[model.Role]PermissionSet, len(table))
	for role, perms := range table {
		if !role.IsKnown() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidTable, role)
		}
		for _, p := range perms {
			if !p.IsValid() {
				return nil, fmt.Errorf("%w: role %s grants uncatalogued permission %q", ErrInvalidTable, role, p)
			}
		}
		sets[role] = NewPermissionSet(perms...)
	}

	super := sets[model.RoleSuperAdmin]
	for role, set := range sets {
		if !set.IsSubsetOf(super) {
			return nil, fmt.Errorf("%w: %s holds permissions %s does not", ErrInvalidTable, role, model.RoleSuperAdmin)
		}
	}

	for _, role := range selfScopedRoles {
		for _, p := range sets[role].List() {
			if info, _ := model.LookupPermission(p); !info.SelfScoped() {
				return nil, fmt.Errorf("%w: self-scoped role %s holds administrative permission %s", ErrInvalidTable, role, p)
			}
		}
	}

	return &Resolver{sets: sets}, nil
}

// MustNewResolver is NewResolver for startup code: it panics on an invalid table.
func MustNewResolver(table Table) *Resolver {
	r, err := NewResolver(table)
	if err != nil {
		panic(err)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the process-wide resolver built from DefaultTable. Prefer
// injecting a *Resolver; this accessor exists for command-line tools.
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = MustNewResolver(DefaultTable())
	})
	return defaultResolver
}

// Resolve returns the permissions granted to role. Unrecognized roles resolve
// to the USER set; a known role missing from the table resolves to the empty
// set.
func (r *Resolver) Resolve(role model.Role) PermissionSet {
	return r.sets[model.ParseRole(string(role))]
}

// ResolveString is Resolve for a raw, untrusted role value.
func (r *Resolver) ResolveString(raw string) PermissionSet {
	return r.Resolve(model.ParseRole(raw))
}

// Grants lists every known role with its permissions, in model.AllRoles order.
func (r *Resolver) Grants() []RoleGrant {
	roles := model.AllRoles()
	out := make([]RoleGrant, 0, len(roles))
	for _, role := range roles {
		out = append(out, RoleGrant{Role: role, Permissions: r.Resolve(role)})
	}
	return out
}
