package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/handler"
	"github.com/stemsi/sekolah-backend/internal/metrics"
	"github.com/stemsi/sekolah-backend/internal/middleware"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
)

// publicSettingsMaxAge is how long clients may cache the public settings.
const publicSettingsMaxAge = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	RBAC       *handler.RBACHandler
	Setting    *handler.SettingHandler
	Dashboard  *handler.DashboardHandler
	School     *handler.SchoolHandler
	Major      *handler.MajorHandler
	Department *handler.DepartmentHandler
	Class      *handler.ClassHandler
	Rombel     *handler.RombelHandler
	Subject    *handler.SubjectHandler
	Teacher    *handler.TeacherHandler
	Student    *handler.StudentHandler
	Staff      *handler.StaffHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	guard *middleware.Guard,
	loginLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	m *metrics.Metrics,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every response carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log, m))

	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: cfg.CompressionMinBytes,
		Skipper:   middleware.SkipPaths("/metrics"),
	}))

	router.GET("/health", handlers.System.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Session-bound middleware chain shared by every authenticated route.
	authenticated := []gin.HandlerFunc{
		middleware.RequireJWT(authService),
		middleware.RequireActiveSession(authService),
		middleware.NoStore(),
	}

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(publicSettingsMaxAge))
	{
		publicAPI.GET("/settings", handlers.Setting.GetPublicSettings)
	}

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.NoStore(), loginLimiter.Middleware(), handlers.Auth.Login)

		me := auth.Group("")
		me.Use(authenticated...)
		{
			me.POST("/logout", handlers.Auth.Logout)
			me.GET("/me", handlers.Auth.Me)
			me.GET("/me/permissions", handlers.Auth.MyPermissions)
		}
	}

	// ─── 2. Protected Group (JWT + Session + RBAC) ─────────────────────
	api := router.Group("/api/v1")
	api.Use(authenticated...)

	// Dashboard
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("",
			guard.RequireAnyPermission(model.PermissionDashboardView, model.PermissionDashboardViewAnalytics),
			handlers.Dashboard.GetDashboardData,
		)
		// A refresh wipes the shared cache for every reader.
		dashboard.POST("/refresh",
			guard.RequireAllPermissions(model.PermissionDashboardView, model.PermissionDashboardViewAnalytics),
			handlers.Dashboard.RefreshDashboardData,
		)
	}

	// ─── 2a. Institution ───────────────────────────────────────────────
	schools := api.Group("/schools")
	{
		schools.GET("", guard.RequirePermission(model.PermissionSchoolView), handlers.School.ListSchools)
		schools.GET("/:id", guard.RequirePermission(model.PermissionSchoolView), handlers.School.GetSchool)
		schools.POST("", guard.RequirePermission(model.PermissionSchoolCreate), handlers.School.CreateSchool)
		schools.PUT("/:id", guard.RequirePermission(model.PermissionSchoolUpdate), handlers.School.UpdateSchool)
		schools.DELETE("/:id", guard.RequirePermission(model.PermissionSchoolDelete), handlers.School.DeleteSchool)
	}

	years := api.Group("/academic-years")
	{
		years.GET("", guard.RequirePermission(model.PermissionAcademicYearsView), handlers.School.ListAcademicYears)
		years.GET("/:id", guard.RequirePermission(model.PermissionAcademicYearsView), handlers.School.GetAcademicYear)
		years.POST("", guard.RequirePermission(model.PermissionAcademicYearsManage), handlers.School.CreateAcademicYear)
		years.PUT("/:id", guard.RequirePermission(model.PermissionAcademicYearsManage), handlers.School.UpdateAcademicYear)
		years.DELETE("/:id", guard.RequirePermission(model.PermissionAcademicYearsManage), handlers.School.DeleteAcademicYear)
		years.POST("/:id/activate", guard.RequirePermission(model.PermissionAcademicYearsManage), handlers.School.ActivateAcademicYear)
	}

	majors := api.Group("/majors")
	{
		majors.GET("", guard.RequirePermission(model.PermissionMajorsView), handlers.Major.GetAll)
		majors.GET("/:id", guard.RequirePermission(model.PermissionMajorsView), handlers.Major.Get)
		majors.POST("", guard.RequirePermission(model.PermissionMajorsManage), handlers.Major.Create)
		majors.PUT("/:id", guard.RequirePermission(model.PermissionMajorsManage), handlers.Major.Update)
		majors.DELETE("/:id", guard.RequirePermission(model.PermissionMajorsManage), handlers.Major.Delete)
	}

	departments := api.Group("/departments")
	{
		departments.GET("", guard.RequirePermission(model.PermissionDepartmentsView), handlers.Department.ListDepartments)
		departments.GET("/:id", guard.RequirePermission(model.PermissionDepartmentsView), handlers.Department.GetDepartment)
		departments.POST("", guard.RequirePermission(model.PermissionDepartmentsManage), handlers.Department.CreateDepartment)
		departments.PUT("/:id", guard.RequirePermission(model.PermissionDepartmentsManage), handlers.Department.UpdateDepartment)
		departments.DELETE("/:id", guard.RequirePermission(model.PermissionDepartmentsManage), handlers.Department.DeleteDepartment)
	}

	// ─── 2b. Academic ──────────────────────────────────────────────────
	classes := api.Group("/classes")
	{
		classes.GET("", guard.RequirePermission(model.PermissionClassesView), handlers.Class.ListClasses)
		classes.GET("/:id", guard.RequirePermission(model.PermissionClassesView), handlers.Class.GetClass)
		classes.POST("", guard.RequirePermission(model.PermissionClassesCreate), handlers.Class.CreateClass)
		classes.PUT("/:id", guard.RequirePermission(model.PermissionClassesUpdate), handlers.Class.UpdateClass)
		classes.DELETE("/:id", guard.RequirePermission(model.PermissionClassesDelete), handlers.Class.DeleteClass)
	}

	rombels := api.Group("/rombels")
	{
		rombels.GET("", guard.RequirePermission(model.PermissionRombelsView), handlers.Rombel.ListRombels)
		rombels.GET("/:id", guard.RequirePermission(model.PermissionRombelsView), handlers.Rombel.GetRombel)
		rombels.POST("", guard.RequirePermission(model.PermissionRombelsManage), handlers.Rombel.CreateRombel)
		rombels.PUT("/:id", guard.RequirePermission(model.PermissionRombelsManage), handlers.Rombel.UpdateRombel)
		rombels.DELETE("/:id", guard.RequirePermission(model.PermissionRombelsManage), handlers.Rombel.DeleteRombel)
		rombels.GET("/:id/members", guard.RequirePermission(model.PermissionRombelsView), handlers.Rombel.ListMembers)
		rombels.POST("/:id/members", guard.RequirePermission(model.PermissionRombelsManage), handlers.Rombel.AddMembers)
		rombels.DELETE("/:id/members", guard.RequirePermission(model.PermissionRombelsManage), handlers.Rombel.RemoveMembers)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", guard.RequirePermission(model.PermissionSubjectsView), handlers.Subject.GetAllSubjects)
		subjects.GET("/:id", guard.RequirePermission(model.PermissionSubjectsView), handlers.Subject.GetSubject)
		subjects.POST("", guard.RequirePermission(model.PermissionSubjectsCreate), handlers.Subject.CreateSubject)
		subjects.PUT("/:id", guard.RequirePermission(model.PermissionSubjectsUpdate), handlers.Subject.UpdateSubject)
		subjects.DELETE("/:id", guard.RequirePermission(model.PermissionSubjectsDelete), handlers.Subject.DeleteSubject)
	}

	// ─── 2c. People ────────────────────────────────────────────────────
	teachers := api.Group("/teachers")
	{
		teachers.GET("", guard.RequirePermission(model.PermissionTeachersView), handlers.Teacher.List)
		teachers.GET("/:id", guard.RequirePermission(model.PermissionTeachersView), handlers.Teacher.Get)
		teachers.POST("", guard.RequirePermission(model.PermissionTeachersCreate), handlers.Teacher.Create)
		teachers.PUT("/:id", guard.RequirePermission(model.PermissionTeachersUpdate), handlers.Teacher.Update)
		teachers.DELETE("/:id", guard.RequirePermission(model.PermissionTeachersDelete), handlers.Teacher.Delete)
	}

	students := api.Group("/students")
	{
		students.GET("", guard.RequirePermission(model.PermissionStudentsView), handlers.Student.ListStudents)
		students.GET("/nisn/:nisn", guard.RequirePermission(model.PermissionStudentsView), handlers.Student.GetStudentByNISN)
		students.GET("/:id", guard.RequirePermission(model.PermissionStudentsView), handlers.Student.GetStudent)
		students.POST("", guard.RequirePermission(model.PermissionStudentsCreate), handlers.Student.CreateStudent)
		students.PUT("/:id", guard.RequirePermission(model.PermissionStudentsUpdate), handlers.Student.UpdateStudent)
		students.DELETE("/:id", guard.RequirePermission(model.PermissionStudentsDelete), handlers.Student.DeleteStudent)
	}

	staff := api.Group("/staff")
	{
		staff.GET("", guard.RequirePermission(model.PermissionStaffView), handlers.Staff.List)
		staff.GET("/:id", guard.RequirePermission(model.PermissionStaffView), handlers.Staff.Get)
		staff.POST("", guard.RequirePermission(model.PermissionStaffCreate), handlers.Staff.Create)
		staff.PUT("/:id", guard.RequirePermission(model.PermissionStaffUpdate), handlers.Staff.Update)
		staff.DELETE("/:id", guard.RequirePermission(model.PermissionStaffDelete), handlers.Staff.Delete)
	}

	// ─── 2d. Accounts & Access ─────────────────────────────────────────
	// Privileged targets additionally need admins:manage, checked in UserService.
	users := api.Group("/users")
	{
		users.GET("", guard.RequirePermission(model.PermissionUsersView), handlers.User.ListUsers)
		users.GET("/:id", guard.RequirePermission(model.PermissionUsersView), handlers.User.GetUser)
		users.POST("", guard.RequirePermission(model.PermissionUsersCreate), handlers.User.CreateUser)
		users.PUT("/:id", guard.RequirePermission(model.PermissionUsersUpdate), handlers.User.UpdateUser)
		users.DELETE("/:id", guard.RequirePermission(model.PermissionUsersDelete), handlers.User.DeleteUser)
		users.POST("/:id/revoke-sessions", guard.RequirePermission(model.PermissionUsersUpdate), handlers.User.RevokeSessions)
	}

	// The catalog stays an administrator tool even if roles:view is granted wider.
	rbacGroup := api.Group("/rbac")
	rbacGroup.Use(guard.RequireRole(model.RoleAdmin), guard.RequirePermission(model.PermissionRolesView))
	{
		rbacGroup.GET("/roles", handlers.RBAC.ListRoles)
		rbacGroup.GET("/roles/:role", handlers.RBAC.GetRole)
		rbacGroup.GET("/permissions", handlers.RBAC.ListPermissions)
	}

	// ─── 2e. System ────────────────────────────────────────────────────
	settings := api.Group("/settings")
	{
		settings.GET("", guard.RequirePermission(model.PermissionSettingsView), handlers.Setting.GetAllSettings)
		settings.GET("/:key", guard.RequirePermission(model.PermissionSettingsView), handlers.Setting.GetSetting)
		settings.PUT("", guard.RequirePermission(model.PermissionSystemManage), handlers.Setting.UpdateSettings)
	}

	return router
}
