package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/metrics"
	"github.com/stemsi/sekolah-backend/internal/middleware"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
	"github.com/stemsi/sekolah-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	metrics     *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m}
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns a JWT with the caller's permissions.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.metrics.ObserveLogin("invalid_credentials")
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	case errors.Is(err, service.ErrAccountDisabled):
		h.metrics.ObserveLogin("disabled")
		response.Fail(c, http.StatusForbidden, response.ErrAccountDisabled)
		return
	case err != nil:
		h.metrics.ObserveLogin("error")
		failWith(c, err)
		return
	}

	h.metrics.ObserveLogin("success")
	response.Success(c, http.StatusOK, result)
}

// Logout godoc
// POST /api/v1/auth/logout
// Ends the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated account with its role and permissions.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), claims)
	if err != nil {
		failWith(c, err)
		return
	}

	role := claims.EffectiveRole()
	response.Success(c, http.StatusOK, gin.H{
		"user":           user,
		"role":           role,
		"permissions":    h.authService.Permissions(claims),
		"is_admin":       rbac.IsAdmin(role),
		"is_super_admin": rbac.IsSuperAdmin(role),
	})
}

// MyPermissions godoc
// GET /api/v1/auth/me/permissions
// Returns the permission set of the session's role, sorted.
func (h *AuthHandler) MyPermissions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	role := claims.EffectiveRole()
	response.Success(c, http.StatusOK, gin.H{
		"role":           role,
		"permissions":    h.authService.Permissions(claims),
		"is_admin":       rbac.IsAdmin(role),
		"is_super_admin": rbac.IsSuperAdmin(role),
	})
}
