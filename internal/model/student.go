package model

import "time"

// Gender represents a person's gender as recorded by Dapodik.
type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

// Religion represents the student's recognized religion.
type Religion string

const (
	ReligionIslam    Religion = "Islam"
	ReligionKristen  Religion = "Kristen"
	ReligionKatolik  Religion = "Katolik"
	ReligionHindu    Religion = "Hindu"
	ReligionBuddha   Religion = "Buddha"
	ReligionKonghucu Religion = "Konghucu"
)

// Student is a student record. UserID links it to a login account, if any.
type Student struct {
	ID        int       `json:"id"`
	SchoolID  int       `json:"school_id"`
	UserID    *int      `json:"user_id"`
	NIS       string    `json:"nis"`
	NISN      string    `json:"nisn"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	Religion  Religion  `json:"religion"`
	ClassID   *int      `json:"class_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentRequest is the payload for creating or updating a student.
type StudentRequest struct {
	SchoolID int      `json:"school_id" binding:"required,min=1"`
	UserID   *int     `json:"user_id" binding:"omitempty,min=1"`
	NIS      string   `json:"nis" binding:"required,min=4,max=20"`
	NISN     string   `json:"nisn" binding:"required,numeric,len=10"`
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Gender   Gender   `json:"gender" binding:"required,oneof=Laki-laki Perempuan"`
	Religion Religion `json:"religion" binding:"required,oneof=Islam Kristen Katolik Hindu Buddha Konghucu"`
	ClassID  *int     `json:"class_id" binding:"omitempty,min=1"`
}
