// Package rbac resolves a principal's role into the set of permissions it is
// granted and turns permission requirements into allow/forbid decisions.
//
// The role table is built once at startup and never mutated afterwards, so a
// *Resolver can be shared by every request handler without locking. Query
// functions are pure; only the Authorize* guards produce errors, and only
// after a definitive negative decision.
package rbac

import (
	"encoding/json"
	"sort"

	"github.com/stemsi/sekolah-backend/internal/model"
)

// PermissionSet is an immutable set of permissions. The zero value is the
// empty set.
type PermissionSet struct {
	perms map[model.Permission]struct{}
}

// NewPermissionSet builds a set from the given permissions. Duplicates collapse.
func NewPermissionSet(perms ...model.Permission) PermissionSet {
	m := make(map[model.Permission]struct{}, len(perms))
	for _, p := range perms {
		m[p] = struct{}{}
	}
	return PermissionSet{perms: m}
}

// Has reports whether p is a member of the set.
func (s PermissionSet) Has(p model.Permission) bool {
	_, ok := s.perms[p]
	return ok
}

// Len returns the number of permissions in the set.
func (s PermissionSet) Len() int {
	return len(s.perms)
}

// List returns the members sorted by identifier. The slice is a fresh copy and
// is never nil.
func (s PermissionSet) List() []model.Permission {
	out := make([]model.Permission, 0, len(s.perms))
	for p := range s.perms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the members as plain strings, sorted.
func (s PermissionSet) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = string(p)
	}
	return out
}

// IsSubsetOf reports whether every member of s is also a member of other.
func (s PermissionSet) IsSubsetOf(other PermissionSet) bool {
	for p := range s.perms {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same permissions.
func (s PermissionSet) Equal(other PermissionSet) bool {
	return s.Len() == other.Len() && s.IsSubsetOf(other)
}

// MarshalJSON encodes the set as a sorted array of permission identifiers.
func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}
