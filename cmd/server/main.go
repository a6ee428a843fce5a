package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/database"
	"github.com/stemsi/sekolah-backend/internal/handler"
	"github.com/stemsi/sekolah-backend/internal/logger"
	"github.com/stemsi/sekolah-backend/internal/metrics"
	"github.com/stemsi/sekolah-backend/internal/middleware"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/repository"
	"github.com/stemsi/sekolah-backend/internal/router"
	"github.com/stemsi/sekolah-backend/internal/service"
	"github.com/stemsi/sekolah-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Sekolah Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Permission Table ──────────────────────────────────────────────
	resolver, err := rbac.NewResolver(rbac.DefaultTable())
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid permission table")
	}
	log.Info().
		Int("roles", len(resolver.Grants())).
		Int("permissions", resolver.Resolve(model.RoleSuperAdmin).Len()).
		Msg("Permission table loaded")

	m := metrics.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)
	schoolRepo := repository.NewSchoolRepository(pool)
	yearRepo := repository.NewAcademicYearRepository(pool)
	majorRepo := repository.NewMajorRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	rombelRepo := repository.NewRombelRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	// DashboardService doubles as the stats invalidator for every write path.
	dashboardService := service.NewDashboardService(dashboardRepo, rdb, cfg.DashboardCacheTTL, log)
	authService := service.NewAuthService(cfg, rdb, userRepo, resolver, log)
	userService := service.NewUserService(userRepo, authService, authService, resolver, dashboardService, log)
	settingService := service.NewSettingService(settingRepo, log)
	schoolService := service.NewSchoolService(schoolRepo, dashboardService, log)
	yearService := service.NewAcademicYearService(yearRepo, dashboardService, log)
	majorService := service.NewMajorService(majorRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	classService := service.NewClassService(classRepo, dashboardService)
	rombelService := service.NewRombelService(rombelRepo, dashboardService, log)
	subjectService := service.NewSubjectService(subjectRepo, dashboardService)
	teacherService := service.NewTeacherService(teacherRepo, dashboardService)
	studentService := service.NewStudentService(studentRepo, dashboardService, log)
	staffService := service.NewStaffService(staffRepo, dashboardService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, m),
		User:       handler.NewUserHandler(userService),
		RBAC:       handler.NewRBACHandler(resolver),
		Setting:    handler.NewSettingHandler(settingService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		School:     handler.NewSchoolHandler(schoolService, yearService),
		Major:      handler.NewMajorHandler(majorService),
		Department: handler.NewDepartmentHandler(departmentService),
		Class:      handler.NewClassHandler(classService),
		Rombel:     handler.NewRombelHandler(rombelService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Teacher:    handler.NewTeacherHandler(teacherService),
		Student:    handler.NewStudentHandler(studentService),
		Staff:      handler.NewStaffHandler(staffService),
		System:     handler.NewSystemHandler(pool, rdb, log),
	}

	guard := middleware.NewGuard(resolver, m, log)
	loginLimiter := middleware.NewRateLimiter(rdb, "login", cfg.LoginRatePerSec, cfg.LoginBurst, middleware.LoginKey, m, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, guard, loginLimiter, handlers, cfg, m, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
