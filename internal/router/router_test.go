package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/handler"
	"github.com/stemsi/sekolah-backend/internal/metrics"
	"github.com/stemsi/sekolah-backend/internal/middleware"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/repository"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
	"github.com/stemsi/sekolah-backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// ─── Fakes ─────────────────────────────────────────────────────────────

type memUsers struct {
	mu     sync.Mutex
	users  map[int]*model.User
	nextID int
	writes int
}

func (r *memUsers) ListPaginated(_ context.Context, _ model.ListQuery) ([]model.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *memUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUsers) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	r.writes++
	return nil
}

func (r *memUsers) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	r.writes++
	return nil
}

func (r *memUsers) TouchLastLogin(_ context.Context, _ int) error { return nil }

func (r *memUsers) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	r.writes++
	return nil
}

func (r *memUsers) CountByRole(_ context.Context) (map[string]int, error) {
	return map[string]int{}, nil
}

type memSettings struct {
	mu      sync.Mutex
	values  map[string]string
	upserts int
}

func (r *memSettings) GetAll(_ context.Context) ([]model.AppSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.AppSetting{}
	for k, v := range r.values {
		out = append(out, model.AppSetting{Key: k, Value: v})
	}
	return out, nil
}

func (r *memSettings) GetByKey(_ context.Context, key string) (*model.AppSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.AppSetting{Key: key, Value: v}, nil
}

func (r *memSettings) UpsertMany(_ context.Context, settings map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range settings {
		r.values[k] = v
	}
	r.upserts++
	return nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

var errStoreOffline = errors.New("store offline")

// countingDB stands in for Postgres behind every catalog repository. It
// records each call and fails it, so an allowed request surfaces as a 500
// and a denied one must leave calls at zero.
type countingDB struct {
	mu    sync.Mutex
	calls int
}

func (d *countingDB) hit() {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
}

func (d *countingDB) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *countingDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	d.hit()
	return pgconn.CommandTag{}, errStoreOffline
}

func (d *countingDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	d.hit()
	return nil, errStoreOffline
}

func (d *countingDB) QueryRow(context.Context, string, ...any) pgx.Row {
	d.hit()
	return failedRow{}
}

func (d *countingDB) Begin(context.Context) (pgx.Tx, error) {
	d.hit()
	return nil, errStoreOffline
}

type failedRow struct{}

func (failedRow) Scan(...any) error { return errStoreOffline }

type memDashboard struct {
	mu    sync.Mutex
	calls int
}

func (r *memDashboard) GetStats(_ context.Context, _ int) (*model.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return &model.DashboardStats{
		Schools:     7,
		Students:    900,
		UsersByRole: map[model.Role]int{model.RoleAdmin: 3, model.RoleSuperAdmin: 1},
	}, nil
}

// ─── Harness ───────────────────────────────────────────────────────────

type testApp struct {
	engine    *gin.Engine
	auth      *service.AuthService
	users     *memUsers
	settings  *memSettings
	store     *countingDB
	dashboard *memDashboard
	metrics   *metrics.Metrics
}

var (
	superAdmin = &model.User{ID: 1, Email: "root@sekolah.sch.id", Name: "Root", Role: model.RoleSuperAdmin, IsActive: true}
	admin      = &model.User{ID: 2, Email: "tu@sekolah.sch.id", Name: "Tata Usaha", Role: model.RoleAdmin, IsActive: true}
	teacher    = &model.User{ID: 3, Email: "guru@sekolah.sch.id", Name: "Bu Sari", Role: model.RoleTeacher, IsActive: true}
	staff      = &model.User{ID: 4, Email: "tu.keuangan@sekolah.sch.id", Name: "Pak Budi", Role: model.RoleStaff, IsActive: true}
	student    = &model.User{ID: 5, Email: "andi@siswa.sch.id", Name: "Andi", Role: model.RoleStudent, IsActive: true}
	parent     = &model.User{ID: 6, Email: "ortu.andi@mail.id", Name: "Ibu Andi", Role: model.RoleParent, IsActive: true}
)

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		GinMode:             gin.TestMode,
		JWTSecret:           "router-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          4,
		LoginRatePerSec:     1,
		LoginBurst:          5,
		CompressionMinBytes: 1024,
	}
	log := zerolog.Nop()
	m := metrics.New()
	resolver := rbac.MustNewResolver(rbac.DefaultTable())

	users := &memUsers{users: map[int]*model.User{}, nextID: 100}
	for _, u := range []*model.User{superAdmin, admin, teacher, staff, student, parent} {
		cp := *u
		users.users[u.ID] = &cp
	}
	settings := &memSettings{values: map[string]string{"school_name": "SMK Negeri 1"}}

	store := &countingDB{}
	dashboardRepo := &memDashboard{}

	dashboardService := service.NewDashboardService(dashboardRepo, rdb, time.Minute, log)
	authService := service.NewAuthService(cfg, rdb, users, resolver, log)
	userService := service.NewUserService(users, authService, authService, resolver, nil, log)
	settingService := service.NewSettingService(settings, log)
	schoolService := service.NewSchoolService(repository.NewSchoolRepository(store), dashboardService, log)
	yearService := service.NewAcademicYearService(repository.NewAcademicYearRepository(store), dashboardService, log)

	handlers := &Handlers{
		Auth:       handler.NewAuthHandler(authService, m),
		User:       handler.NewUserHandler(userService),
		RBAC:       handler.NewRBACHandler(resolver),
		Setting:    handler.NewSettingHandler(settingService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		School:     handler.NewSchoolHandler(schoolService, yearService),
		Major:      handler.NewMajorHandler(service.NewMajorService(repository.NewMajorRepository(store))),
		Department: handler.NewDepartmentHandler(service.NewDepartmentService(repository.NewDepartmentRepository(store))),
		Class:      handler.NewClassHandler(service.NewClassService(repository.NewClassRepository(store), dashboardService)),
		Rombel:     handler.NewRombelHandler(service.NewRombelService(repository.NewRombelRepository(store), dashboardService, log)),
		Subject:    handler.NewSubjectHandler(service.NewSubjectService(repository.NewSubjectRepository(store), dashboardService)),
		Teacher:    handler.NewTeacherHandler(service.NewTeacherService(repository.NewTeacherRepository(store), dashboardService)),
		Student:    handler.NewStudentHandler(service.NewStudentService(repository.NewStudentRepository(store), dashboardService, log)),
		Staff:      handler.NewStaffHandler(service.NewStaffService(repository.NewStaffRepository(store), dashboardService)),
		System:     handler.NewSystemHandler(okPinger{}, rdb, log),
	}
	guard := middleware.NewGuard(resolver, m, log)
	limiter := middleware.NewRateLimiter(rdb, "login", cfg.LoginRatePerSec, cfg.LoginBurst, middleware.LoginKey, m, log)

	return &testApp{
		engine:    SetupRouter(authService, guard, limiter, handlers, cfg, m, log),
		auth:      authService,
		users:     users,
		settings:  settings,
		store:     store,
		dashboard: dashboardRepo,
		metrics:   m,
	}
}

func (a *testApp) tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	token, _, err := a.auth.IssueToken(context.Background(), u)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error, "expected an error envelope, got %s", rec.Body.String())
	return body.Error.Code
}

// ─── Tests ─────────────────────────────────────────────────────────────

func TestTeacherCannotChangeSettings(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, teacher)

	rec := app.do(http.MethodPut, "/api/v1/settings", token, gin.H{"settings": gin.H{"school_name": "Hacked"}})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, response.ErrPermissionDenied, errorCode(t, rec))
	assert.Zero(t, app.settings.upserts, "handler must not run after a denial")
	assert.Equal(t, "SMK Negeri 1", app.settings.values["school_name"])
}

func TestSuperAdminCanChangeSettings(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, superAdmin)

	rec := app.do(http.MethodPut, "/api/v1/settings", token, gin.H{"settings": gin.H{"app_title": "SIAKAD"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.settings.upserts)
}

func TestAdminCanListUsers(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, admin)

	rec := app.do(http.MethodGet, "/api/v1/users", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestSuperAdminCanCreateAdmin(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, superAdmin)

	rec := app.do(http.MethodPost, "/api/v1/users", token, gin.H{
		"email":    "wakasek@sekolah.sch.id",
		"name":     "Wakil Kepala",
		"password": "rahasia-sekali",
		"role":     "ADMIN",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, app.users.writes)
}

func TestAdminCannotCreateAdmin(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, admin)

	rec := app.do(http.MethodPost, "/api/v1/users", token, gin.H{
		"email":    "wakasek@sekolah.sch.id",
		"name":     "Wakil Kepala",
		"password": "rahasia-sekali",
		"role":     "ADMIN",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, response.ErrPermissionDenied, errorCode(t, rec))
	assert.Zero(t, app.users.writes, "no account may be written after a denial")
}

func TestAdminCanCreateTeacherAccount(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, admin)

	rec := app.do(http.MethodPost, "/api/v1/users", token, gin.H{
		"email":    "guru.baru@sekolah.sch.id",
		"name":     "Pak Joko",
		"password": "rahasia-sekali",
		"role":     "TEACHER",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/users", "/api/v1/settings", "/api/v1/rbac/roles", "/api/v1/auth/me"} {
		rec := app.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, response.ErrTokenRequired, errorCode(t, rec), path)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t)
	token := app.tokenFor(t, admin)

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code)

	rec := app.do(http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, response.ErrSessionInvalidated, errorCode(t, rec))
}

func TestRBACIntrospection(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/rbac/roles", app.tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(http.MethodGet, "/api/v1/rbac/roles", app.tokenFor(t, teacher), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicSettingsAndHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/public/settings", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=300")

	rec = app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpointExposesDecisions(t *testing.T) {
	app := newTestApp(t)
	app.do(http.MethodPut, "/api/v1/settings", app.tokenFor(t, teacher), gin.H{"settings": gin.H{"x": "y"}})

	rec := app.do(http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "sekolah_authz_decisions_total")
	assert.Contains(t, body, `outcome="deny"`)
	assert.Contains(t, body, "sekolah_http_requests_total")
}

func TestSelfServiceRolesCannotSeeSchoolDashboard(t *testing.T) {
	app := newTestApp(t)

	for _, u := range []*model.User{student, parent, teacher} {
		token := app.tokenFor(t, u)

		rec := app.do(http.MethodGet, "/api/v1/dashboard", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, u.Role)
		assert.Equal(t, response.ErrPermissionDenied, errorCode(t, rec), u.Role)

		rec = app.do(http.MethodPost, "/api/v1/dashboard/refresh", token, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, u.Role)
	}
	assert.Zero(t, app.dashboard.calls, "counters must not be computed for a denied caller")
}

func TestDashboardRefreshNeedsAnalytics(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/v1/dashboard", app.tokenFor(t, staff), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, app.dashboard.calls)

	// A refresh query parameter on the read route does not bypass the cache.
	rec = app.do(http.MethodGet, "/api/v1/dashboard?refresh=true", app.tokenFor(t, staff), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, app.dashboard.calls)

	rec = app.do(http.MethodPost, "/api/v1/dashboard/refresh", app.tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, app.dashboard.calls)

	rec = app.do(http.MethodPost, "/api/v1/dashboard/refresh", app.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, app.dashboard.calls)
}

func TestMeReportsAdminFlags(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		user       *model.User
		admin      bool
		superAdmin bool
	}{
		{superAdmin, true, true},
		{admin, true, false},
		{staff, false, false},
		{student, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.user.Role), func(t *testing.T) {
			token := app.tokenFor(t, tt.user)

			for _, path := range []string{"/api/v1/auth/me", "/api/v1/auth/me/permissions"} {
				rec := app.do(http.MethodGet, path, token, nil)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

				var body struct {
					Data struct {
						Role         model.Role `json:"role"`
						IsAdmin      bool       `json:"is_admin"`
						IsSuperAdmin bool       `json:"is_super_admin"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.user.Role, body.Data.Role, path)
				assert.Equal(t, tt.admin, body.Data.IsAdmin, path)
				assert.Equal(t, tt.superAdmin, body.Data.IsSuperAdmin, path)
			}
		})
	}
}

func TestRBACCatalogIsAdministratorOnly(t *testing.T) {
	app := newTestApp(t)

	for _, u := range []*model.User{superAdmin, admin} {
		rec := app.do(http.MethodGet, "/api/v1/rbac/permissions", app.tokenFor(t, u), nil)
		assert.Equal(t, http.StatusOK, rec.Code, u.Role)
	}
	for _, u := range []*model.User{staff, teacher, student} {
		rec := app.do(http.MethodGet, "/api/v1/rbac/permissions", app.tokenFor(t, u), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, u.Role)
		assert.Equal(t, response.ErrPermissionDenied, errorCode(t, rec), u.Role)
	}
}

// Every resource route is checked against the role table: a denied call is a
// 403 that never reaches the store, an allowed one reaches it.
func TestRouteGuardsFollowPermissionTable(t *testing.T) {
	tests := []struct {
		user    *model.User
		method  string
		path    string
		allowed bool
	}{
		{staff, http.MethodGet, "/api/v1/schools", true},
		{admin, http.MethodPost, "/api/v1/schools", false},
		{admin, http.MethodDelete, "/api/v1/schools/1", false},
		{superAdmin, http.MethodDelete, "/api/v1/schools/1", true},

		{staff, http.MethodPost, "/api/v1/academic-years", false},
		{staff, http.MethodPost, "/api/v1/academic-years/1/activate", false},
		{admin, http.MethodPost, "/api/v1/academic-years/1/activate", true},

		{teacher, http.MethodGet, "/api/v1/majors", false},
		{staff, http.MethodDelete, "/api/v1/majors/1", false},
		{admin, http.MethodDelete, "/api/v1/majors/1", true},

		{staff, http.MethodPut, "/api/v1/departments/1", false},
		{admin, http.MethodDelete, "/api/v1/departments/1", true},

		{teacher, http.MethodDelete, "/api/v1/classes/1", false},
		{staff, http.MethodPost, "/api/v1/classes", false},
		{staff, http.MethodGet, "/api/v1/classes", true},

		{staff, http.MethodPost, "/api/v1/rombels/1/members", false},
		{teacher, http.MethodGet, "/api/v1/rombels/1/members", false},
		{admin, http.MethodGet, "/api/v1/rombels/1/members", true},

		{parent, http.MethodGet, "/api/v1/subjects", false},
		{staff, http.MethodDelete, "/api/v1/subjects/1", false},
		{admin, http.MethodDelete, "/api/v1/subjects/1", true},

		{staff, http.MethodPost, "/api/v1/teachers", false},
		{student, http.MethodGet, "/api/v1/teachers", false},
		{staff, http.MethodGet, "/api/v1/teachers", true},

		{staff, http.MethodPost, "/api/v1/students", false},
		{student, http.MethodGet, "/api/v1/students", false},
		{parent, http.MethodGet, "/api/v1/students/nisn/0012345678", false},
		{staff, http.MethodGet, "/api/v1/students/nisn/0012345678", true},
		{admin, http.MethodDelete, "/api/v1/students/1", true},

		{teacher, http.MethodGet, "/api/v1/staff", false},
		{staff, http.MethodDelete, "/api/v1/staff/1", false},
		{admin, http.MethodDelete, "/api/v1/staff/1", true},

		{staff, http.MethodGet, "/api/v1/users", false},
		{staff, http.MethodPost, "/api/v1/users/3/revoke-sessions", false},
		{staff, http.MethodGet, "/api/v1/settings", false},
		{admin, http.MethodPut, "/api/v1/settings", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.user.Role)+" "+tt.method+" "+tt.path, func(t *testing.T) {
			app := newTestApp(t)

			rec := app.do(tt.method, tt.path, app.tokenFor(t, tt.user), nil)

			if !tt.allowed {
				assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
				assert.Equal(t, response.ErrPermissionDenied, errorCode(t, rec))
				assert.Zero(t, app.store.count(), "store touched after a denial")
				assert.Zero(t, app.users.writes)
				assert.Zero(t, app.settings.upserts)
				return
			}
			assert.NotEqual(t, http.StatusForbidden, rec.Code, rec.Body.String())
			assert.Positive(t, app.store.count(), "allowed request never reached the store")
		})
	}
}
