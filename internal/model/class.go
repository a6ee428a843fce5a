package model

import (
	"fmt"
	"time"
)

// Class represents a school class group, e.g. "XI RPL 2".
type Class struct {
	ID          int       `json:"id"`
	SchoolID    int       `json:"school_id"`
	GradeLevel  int       `json:"grade_level"`
	MajorID     *int      `json:"major_id"`
	MajorCode   string    `json:"major_code"`
	GroupNumber int       `json:"group_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Label renders the conventional class name.
func (c Class) Label() string {
	if c.MajorCode == "" {
		return fmt.Sprintf("%d-%d", c.GradeLevel, c.GroupNumber)
	}
	return fmt.Sprintf("%d %s %d", c.GradeLevel, c.MajorCode, c.GroupNumber)
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	SchoolID    int  `json:"school_id" binding:"required,min=1"`
	GradeLevel  int  `json:"grade_level" binding:"required,min=1,max=13"`
	MajorID     *int `json:"major_id" binding:"omitempty,min=1"`
	GroupNumber int  `json:"group_number" binding:"required,min=1"`
}

// Rombel (rombongan belajar) is a class's study group for one academic year.
type Rombel struct {
	ID                int       `json:"id"`
	ClassID           int       `json:"class_id"`
	AcademicYearID    int       `json:"academic_year_id"`
	Name              string    `json:"name"`
	HomeroomTeacherID *int      `json:"homeroom_teacher_id"`
	MemberCount       int       `json:"member_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RombelRequest is the payload for creating or updating a rombel.
type RombelRequest struct {
	ClassID           int    `json:"class_id" binding:"required,min=1"`
	AcademicYearID    int    `json:"academic_year_id" binding:"required,min=1"`
	Name              string `json:"name" binding:"required,min=1,max=50"`
	HomeroomTeacherID *int   `json:"homeroom_teacher_id" binding:"omitempty,min=1"`
}

// RombelMembersRequest adds or removes students from a rombel.
type RombelMembersRequest struct {
	StudentIDs []int `json:"student_ids" binding:"required,min=1,dive,min=1"`
}
