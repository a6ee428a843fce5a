package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/rbac"
	"github.com/stemsi/sekolah-backend/internal/response"
)

// RBACHandler exposes the read-only role and permission catalog.
type RBACHandler struct {
	resolver *rbac.Resolver
}

func NewRBACHandler(resolver *rbac.Resolver) *RBACHandler {
	return &RBACHandler{resolver: resolver}
}

// ListRoles godoc
// GET /api/v1/rbac/roles
// Lists every role with its permissions.
func (h *RBACHandler) ListRoles(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"roles": h.resolver.Grants()})
}

// GetRole godoc
// GET /api/v1/rbac/roles/:role
func (h *RBACHandler) GetRole(c *gin.Context) {
	role := model.Role(c.Param("role"))
	if !role.IsKnown() {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"role": rbac.RoleGrant{
		Role:        role,
		Permissions: h.resolver.Resolve(role),
	}})
}

// ListPermissions godoc
// GET /api/v1/rbac/permissions
// Lists the permission catalog grouped by area.
func (h *RBACHandler) ListPermissions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"permissions": model.PermissionCatalog()})
}
