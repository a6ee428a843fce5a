package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
)

// DashboardHandler handles admin dashboard endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/dashboard?school_id=
// Returns headline counters, from cache when fresh.
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	data, err := h.dashboardService.GetStats(c.Request.Context(), queryInt(c, "school_id"))
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// RefreshDashboardData godoc
// POST /api/v1/dashboard/refresh?school_id=
// Drops every cached counter and recounts.
func (h *DashboardHandler) RefreshDashboardData(c *gin.Context) {
	ctx := c.Request.Context()
	h.dashboardService.Invalidate(ctx)

	data, err := h.dashboardService.GetStats(ctx, queryInt(c, "school_id"))
	if err != nil {
		failWith(c, err)
		return
	}

	response.Success(c, http.StatusOK, data)
}
