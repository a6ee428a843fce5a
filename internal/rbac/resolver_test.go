package rbac

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sekolah-backend/internal/model"
)

func TestDefaultTableIsValid(t *testing.T) {
	_, err := NewResolver(DefaultTable())
	require.NoError(t, err)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	for _, role := range model.AllRoles() {
		first := r.Resolve(role)
		second := r.Resolve(role)
		assert.True(t, first.Equal(second), "role %s resolved differently", role)
		assert.Equal(t, first.List(), second.List())
	}
}

func TestSuperAdminIsSupersetOfEveryRole(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	super := r.Resolve(model.RoleSuperAdmin)

	assert.Equal(t, len(model.AllPermissions()), super.Len(), "super admin should hold the whole catalog")
	for _, role := range model.AllRoles() {
		assert.True(t, r.Resolve(role).IsSubsetOf(super), "%s is not a subset of SUPER_ADMIN", role)
	}
}

func TestSelfScopedRolesHoldOnlySelfPermissions(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	for _, role := range []model.Role{model.RoleStudent, model.RoleTeacher, model.RoleParent, model.RoleUser} {
		for _, p := range r.Resolve(role).List() {
			info, ok := model.LookupPermission(p)
			require.True(t, ok)
			assert.True(t, info.SelfScoped(), "%s holds administrative permission %s", role, p)
		}
	}
}

func TestUnknownRoleFailsClosedToUser(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	user := r.Resolve(model.RoleUser)
	require.NotZero(t, user.Len())

	for _, raw := range []string{"not-a-real-role", "", "admin", "SUPER_ADMIN ", "Super_Admin"} {
		got := r.ResolveString(raw)
		assert.True(t, got.Equal(user), "raw role %q should resolve to USER", raw)
		assert.False(t, got.Has(model.PermissionSystemManage))
	}
	assert.True(t, r.Resolve(model.Role("ROOT")).Equal(user))
}

func TestKnownRoleMissingFromTableResolvesEmpty(t *testing.T) {
	table := DefaultTable()
	delete(table, model.RoleTeacher)
	r := MustNewResolver(table)

	got := r.Resolve(model.RoleTeacher)
	assert.Zero(t, got.Len())
	assert.Empty(t, got.List())
	assert.False(t, got.Has(model.PermissionSystemManage))
}

func TestNewResolverRejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Table)
	}{
		{
			name: "uncatalogued permission",
			mutate: func(tb Table) {
				tb[model.RoleStaff] = append(tb[model.RoleStaff], model.Permission("timetable:generate"))
			},
		},
		{
			name: "student holding an administrative permission",
			mutate: func(tb Table) {
				tb[model.RoleStudent] = append(tb[model.RoleStudent], model.PermissionUsersView)
			},
		},
		{
			name: "guest holding an administrative permission",
			mutate: func(tb Table) {
				tb[model.RoleUser] = append(tb[model.RoleUser], model.PermissionStudentsView)
			},
		},
		{
			name: "teacher holding the school dashboard",
			mutate: func(tb Table) {
				tb[model.RoleTeacher] = append(tb[model.RoleTeacher], model.PermissionDashboardView)
			},
		},
		{
			name: "super admin missing a permission another role holds",
			mutate: func(tb Table) {
				tb[model.RoleSuperAdmin] = []model.Permission{model.PermissionDashboardView}
			},
		},
		{
			name: "unknown role key",
			mutate: func(tb Table) {
				tb[model.Role("JANITOR")] = []model.Permission{model.PermissionDashboardView}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DefaultTable()
			tt.mutate(table)
			r, err := NewResolver(table)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, ErrInvalidTable), "got %v", err)
		})
	}
}

func TestMustNewResolverPanicsOnInvalidTable(t *testing.T) {
	assert.Panics(t, func() {
		MustNewResolver(Table{model.RoleParent: {model.PermissionFinanceManage}})
	})
}

func TestDefaultTableReturnsFreshCopies(t *testing.T) {
	a := DefaultTable()
	a[model.RoleStudent] = nil
	b := DefaultTable()
	assert.NotEmpty(t, b[model.RoleStudent])
}

func TestDefaultResolverIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.True(t, Default().Resolve(model.RoleAdmin).Has(model.PermissionUsersView))
}

func TestResolveIsSafeForConcurrentReaders(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	want := r.Resolve(model.RoleAdmin).List()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if !HasPermission(r.Resolve(model.RoleAdmin), model.PermissionUsersView) {
					t.Error("admin lost users:view")
					return
				}
				_ = r.ResolveString("garbage").List()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, want, r.Resolve(model.RoleAdmin).List())
}

func TestGrantsListsEveryRole(t *testing.T) {
	r := MustNewResolver(DefaultTable())
	grants := r.Grants()
	require.Len(t, grants, len(model.AllRoles()))
	for i, role := range model.AllRoles() {
		assert.Equal(t, role, grants[i].Role)
		assert.True(t, grants[i].Permissions.Equal(r.Resolve(role)))
	}
}
