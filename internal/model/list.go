package model

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListQuery carries the common paging and filter parameters of list endpoints.
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PerPage  int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Search   string `form:"q" binding:"omitempty,max=100"`
	SchoolID int    `form:"school_id" binding:"omitempty,min=1"`
	ClassID  int    `form:"class_id" binding:"omitempty,min=1"`
	Role     Role   `form:"role" binding:"omitempty,role"`
}

// Normalize fills in defaults and clamps the page size.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
}

// Offset returns the row offset of the current page.
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}
