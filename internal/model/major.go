package model

import "time"

// Major represents a school major or field of study.
type Major struct {
	ID        int       `json:"id"`
	SchoolID  int       `json:"school_id"`
	Code      string    `json:"code"`
	LongName  string    `json:"long_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MajorRequest is the payload for creating or updating a major.
type MajorRequest struct {
	SchoolID int    `json:"school_id" binding:"required,min=1"`
	Code     string `json:"code" binding:"required,min=1,max=10"`
	LongName string `json:"long_name" binding:"required,min=2,max=100"`
}
