package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
	"github.com/stemsi/sekolah-backend/internal/validator"
)

// RombelHandler handles study groups and their membership.
type RombelHandler struct {
	rombelService *service.RombelService
}

func NewRombelHandler(rombelService *service.RombelService) *RombelHandler {
	return &RombelHandler{rombelService: rombelService}
}

// ListRombels godoc
// GET /api/v1/rombels?academic_year_id=&class_id=
func (h *RombelHandler) ListRombels(c *gin.Context) {
	rombels, err := h.rombelService.List(c.Request.Context(), queryInt(c, "academic_year_id"), queryInt(c, "class_id"))
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rombels": rombels})
}

// GetRombel godoc
// GET /api/v1/rombels/:id
func (h *RombelHandler) GetRombel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rb, err := h.rombelService.GetByID(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rombel": rb})
}

// CreateRombel godoc
// POST /api/v1/rombels
func (h *RombelHandler) CreateRombel(c *gin.Context) {
	var req model.RombelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	rb, err := h.rombelService.Create(c.Request.Context(), &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rombel": rb})
}

// UpdateRombel godoc
// PUT /api/v1/rombels/:id
func (h *RombelHandler) UpdateRombel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.RombelRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	rb, err := h.rombelService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rombel": rb})
}

// DeleteRombel godoc
// DELETE /api/v1/rombels/:id
func (h *RombelHandler) DeleteRombel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.rombelService.Delete(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListMembers godoc
// GET /api/v1/rombels/:id/members
func (h *RombelHandler) ListMembers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	students, err := h.rombelService.ListMembers(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// AddMembers godoc
// POST /api/v1/rombels/:id/members
func (h *RombelHandler) AddMembers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.RombelMembersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	added, err := h.rombelService.AddMembers(c.Request.Context(), id, req.StudentIDs)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"added": added})
}

// RemoveMembers godoc
// DELETE /api/v1/rombels/:id/members
func (h *RombelHandler) RemoveMembers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.RombelMembersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	removed, err := h.rombelService.RemoveMembers(c.Request.Context(), id, req.StudentIDs)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}
