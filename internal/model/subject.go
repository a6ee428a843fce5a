package model

import "time"

// Subject represents an academic course or subject.
type Subject struct {
	ID           int       `json:"id"`
	SchoolID     int       `json:"school_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	DepartmentID *int      `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubjectRequest is the payload for creating or updating a subject.
type SubjectRequest struct {
	SchoolID     int    `json:"school_id" binding:"required,min=1"`
	Code         string `json:"code" binding:"required,min=1,max=20"`
	Name         string `json:"name" binding:"required,min=2,max=100"`
	DepartmentID *int   `json:"department_id" binding:"omitempty,min=1"`
}
