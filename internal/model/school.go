package model

import "time"

// School is the root of every foreign-key scope in the schema.
type School struct {
	ID        int       `json:"id"`
	NPSN      string    `json:"npsn"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SchoolRequest is the payload for creating or updating a school.
type SchoolRequest struct {
	NPSN    string `json:"npsn" binding:"required,numeric,len=8"`
	Name    string `json:"name" binding:"required,min=3,max=150"`
	Address string `json:"address" binding:"max=255"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// AcademicYear is a school year such as "2025/2026". At most one year per
// school is active at a time.
type AcademicYear struct {
	ID        int       `json:"id"`
	SchoolID  int       `json:"school_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AcademicYearRequest is the payload for creating or updating an academic year.
type AcademicYearRequest struct {
	SchoolID  int       `json:"school_id" binding:"required,min=1"`
	Name      string    `json:"name" binding:"required,min=4,max=20"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required,gtfield=StartDate"`
}

// Department groups teachers by subject area (e.g. "MIPA").
type Department struct {
	ID            int       `json:"id"`
	SchoolID      int       `json:"school_id"`
	Name          string    `json:"name"`
	HeadTeacherID *int      `json:"head_teacher_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DepartmentRequest is the payload for creating or updating a department.
type DepartmentRequest struct {
	SchoolID      int    `json:"school_id" binding:"required,min=1"`
	Name          string `json:"name" binding:"required,min=2,max=100"`
	HeadTeacherID *int   `json:"head_teacher_id" binding:"omitempty,min=1"`
}
