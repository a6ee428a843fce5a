package model

import "time"

// Staff is a non-teaching employee (tenaga kependidikan).
type Staff struct {
	ID        int       `json:"id"`
	SchoolID  int       `json:"school_id"`
	UserID    *int      `json:"user_id"`
	NIP       *string   `json:"nip"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StaffRequest is the payload for creating or updating a staff member.
type StaffRequest struct {
	SchoolID int     `json:"school_id" binding:"required,min=1"`
	UserID   *int    `json:"user_id" binding:"omitempty,min=1"`
	NIP      *string `json:"nip" binding:"omitempty,numeric,len=18"`
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	Position string  `json:"position" binding:"required,min=2,max=100"`
	Phone    string  `json:"phone" binding:"omitempty,max=20"`
}
