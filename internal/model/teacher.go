package model

import "time"

// Teacher is a teacher (guru) record.
type Teacher struct {
	ID           int       `json:"id"`
	SchoolID     int       `json:"school_id"`
	UserID       *int      `json:"user_id"`
	NIP          *string   `json:"nip"`
	NUPTK        *string   `json:"nuptk"`
	Name         string    `json:"name"`
	Gender       Gender    `json:"gender"`
	Phone        string    `json:"phone"`
	DepartmentID *int      `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TeacherRequest is the payload for creating or updating a teacher.
type TeacherRequest struct {
	SchoolID     int     `json:"school_id" binding:"required,min=1"`
	UserID       *int    `json:"user_id" binding:"omitempty,min=1"`
	NIP          *string `json:"nip" binding:"omitempty,numeric,len=18"`
	NUPTK        *string `json:"nuptk" binding:"omitempty,numeric,len=16"`
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	Gender       Gender  `json:"gender" binding:"required,oneof=Laki-laki Perempuan"`
	Phone        string  `json:"phone" binding:"omitempty,max=20"`
	DepartmentID *int    `json:"department_id" binding:"omitempty,min=1"`
}
