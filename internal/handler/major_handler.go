package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
	"github.com/stemsi/sekolah-backend/internal/validator"
)

type MajorHandler struct {
	majorService service.MajorService
}

func NewMajorHandler(majorService service.MajorService) *MajorHandler {
	return &MajorHandler{majorService: majorService}
}

// GetAll godoc
// GET /api/v1/majors?school_id=
func (h *MajorHandler) GetAll(c *gin.Context) {
	majors, err := h.majorService.GetAllMajors(c.Request.Context(), queryInt(c, "school_id"))
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"majors": majors})
}

// Get godoc
// GET /api/v1/majors/:id
func (h *MajorHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	major, err := h.majorService.GetMajor(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// Create godoc
// POST /api/v1/majors
func (h *MajorHandler) Create(c *gin.Context) {
	var req model.MajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	major, err := h.majorService.CreateMajor(c.Request.Context(), &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"major": major})
}

// Update godoc
// PUT /api/v1/majors/:id
func (h *MajorHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.MajorRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	major, err := h.majorService.UpdateMajor(c.Request.Context(), id, &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"major": major})
}

// Delete godoc
// DELETE /api/v1/majors/:id
func (h *MajorHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.majorService.DeleteMajor(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
