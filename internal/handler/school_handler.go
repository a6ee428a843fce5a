package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/response"
	"github.com/stemsi/sekolah-backend/internal/service"
	"github.com/stemsi/sekolah-backend/internal/validator"
)

// SchoolHandler handles school management and academic years.
type SchoolHandler struct {
	schoolService *service.SchoolService
	yearService   *service.AcademicYearService
}

// NewSchoolHandler creates a new SchoolHandler.
func NewSchoolHandler(schoolService *service.SchoolService, yearService *service.AcademicYearService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService, yearService: yearService}
}

// ListSchools godoc
// GET /api/v1/schools?page=1&per_page=20&q=
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	var q model.ListQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	q.Normalize()

	schools, total, err := h.schoolService.List(c.Request.Context(), q)
	if err != nil {
		failWith(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"schools": schools}, response.NewPagination(q.Page, q.PerPage, total))
}

// GetSchool godoc
// GET /api/v1/schools/:id
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	school, err := h.schoolService.GetByID(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"school": school})
}

// CreateSchool godoc
// POST /api/v1/schools
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req model.SchoolRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, err := h.schoolService.Create(c.Request.Context(), &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"school": school})
}

// UpdateSchool godoc
// PUT /api/v1/schools/:id
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.SchoolRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	school, err := h.schoolService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"school": school})
}

// DeleteSchool godoc
// DELETE /api/v1/schools/:id
// Fails with DEPENDENCY_EXISTS while the school still owns records.
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.schoolService.Delete(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListAcademicYears godoc
// GET /api/v1/academic-years?school_id=
func (h *SchoolHandler) ListAcademicYears(c *gin.Context) {
	years, err := h.yearService.List(c.Request.Context(), queryInt(c, "school_id"))
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"academic_years": years})
}

// GetAcademicYear godoc
// GET /api/v1/academic-years/:id
func (h *SchoolHandler) GetAcademicYear(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	year, err := h.yearService.GetByID(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"academic_year": year})
}

// CreateAcademicYear godoc
// POST /api/v1/academic-years
func (h *SchoolHandler) CreateAcademicYear(c *gin.Context) {
	var req model.AcademicYearRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	year, err := h.yearService.Create(c.Request.Context(), &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"academic_year": year})
}

// UpdateAcademicYear godoc
// PUT /api/v1/academic-years/:id
func (h *SchoolHandler) UpdateAcademicYear(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req model.AcademicYearRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	year, err := h.yearService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"academic_year": year})
}

// DeleteAcademicYear godoc
// DELETE /api/v1/academic-years/:id
func (h *SchoolHandler) DeleteAcademicYear(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.yearService.Delete(c.Request.Context(), id); err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ActivateAcademicYear godoc
// POST /api/v1/academic-years/:id/activate
// Makes the year the only active one of its school.
func (h *SchoolHandler) ActivateAcademicYear(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	year, err := h.yearService.Activate(c.Request.Context(), id)
	if err != nil {
		failWith(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"academic_year": year})
}
