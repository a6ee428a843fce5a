package rbac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sekolah-backend/internal/model"
)

func TestAuthorizeScenarios(t *testing.T) {
	r := MustNewResolver(DefaultTable())

	// Teacher may not touch system settings.
	err := r.Authorize(model.RoleTeacher, model.PermissionSystemManage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))

	// Admin may list users.
	assert.NoError(t, r.Authorize(model.RoleAdmin, model.PermissionUsersView))

	// Admin may not manage admins, super admin may.
	assert.ErrorIs(t, r.Authorize(model.RoleAdmin, model.PermissionAdminsManage), ErrForbidden)
	assert.NoError(t, r.Authorize(model.RoleSuperAdmin, model.PermissionAdminsManage))
}

func TestAuthorizeUnknownRoleUsesGuestSet(t *testing.T) {
	r := MustNewResolver(DefaultTable())

	assert.NoError(t, r.Authorize(model.Role("hacker"), model.PermissionAnnouncementsView))
	err := r.Authorize(model.Role("hacker"), model.PermissionUsersView)

	var fe *ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, model.RoleUser, fe.Role)
	assert.Equal(t, RequirePermission, fe.Requirement)
	assert.Equal(t, []model.Permission{model.PermissionUsersView}, fe.Permissions)
}

func TestAuthorizeAllAndAny(t *testing.T) {
	r := MustNewResolver(DefaultTable())

	assert.NoError(t, r.AuthorizeAll(model.RoleAdmin))
	assert.NoError(t, r.AuthorizeAll(model.RoleAdmin, model.PermissionUsersCreate, model.PermissionUsersView))
	assert.ErrorIs(t, r.AuthorizeAll(model.RoleAdmin, model.PermissionUsersCreate, model.PermissionAdminsManage), ErrForbidden)

	assert.ErrorIs(t, r.AuthorizeAny(model.RoleAdmin), ErrForbidden)
	assert.NoError(t, r.AuthorizeAny(model.RoleStaff, model.PermissionFinanceManage, model.PermissionFinanceView))
	assert.ErrorIs(t, r.AuthorizeAny(model.RoleParent, model.PermissionFinanceManage, model.PermissionFinanceView), ErrForbidden)
}

func TestAuthorizeRole(t *testing.T) {
	r := MustNewResolver(DefaultTable())

	assert.NoError(t, r.AuthorizeRole(model.RoleSuperAdmin, model.RoleAdmin))
	assert.NoError(t, r.AuthorizeRole(model.RoleStaff, model.RoleStaff, model.RoleAdmin))

	err := r.AuthorizeRole(model.RoleStudent, model.RoleAdmin)
	var fe *ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, RequireRole, fe.Requirement)
	assert.Equal(t, []model.Role{model.RoleAdmin}, fe.Roles)
	assert.Contains(t, fe.Error(), "ADMIN")
}

func TestForbiddenErrorDoesNotAliasCallerSlice(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	perms := []model.Permission{model.PermissionSystemManage}

	err := r.AuthorizeAll(model.RoleStudent, perms...)
	perms[0] = model.PermissionDashboardView

	var fe *ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, model.PermissionSystemManage, fe.Permissions[0])
}

func TestForbiddenErrorWrapsThroughLayers(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	inner := r.Authorize(model.RoleParent, model.PermissionUsersDelete)
	wrapped := errors.Join(errors.New("delete user 7"), inner)

	assert.ErrorIs(t, wrapped, ErrForbidden)
	assert.Contains(t, inner.Error(), "users:delete")
}
