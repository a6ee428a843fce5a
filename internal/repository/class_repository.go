package repository

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type ClassRepository interface {
	List(ctx context.Context, schoolID int) ([]model.Class, error)
	GetByID(ctx context.Context, id int) (*model.Class, error)
	Create(ctx context.Context, c *model.Class) error
	Update(ctx context.Context, c *model.Class) error
	Delete(ctx context.Context, id int) error
}

type classRepository struct {
	db DB
}

func NewClassRepository(db DB) ClassRepository {
	return &classRepository{db: db}
}

// major_code is denormalized through the join so labels need no second query.
const classSelect = `
	SELECT c.id, c.school_id, c.grade_level, c.major_id, COALESCE(m.code, ''), c.group_number, c.created_at, c.updated_at
	FROM classes c
	LEFT JOIN majors m ON m.id = c.major_id`

// GetByID retrieves a class by its ID.
func (r *classRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.db.QueryRow(ctx, classSelect+` WHERE c.id = $1`, id).
		Scan(&c.ID, &c.SchoolID, &c.GradeLevel, &c.MajorID, &c.MajorCode, &c.GroupNumber, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, readErr(err)
	}
	return c, nil
}

// List retrieves all classes, optionally of one school.
func (r *classRepository) List(ctx context.Context, schoolID int) ([]model.Class, error) {
	var w where
	if schoolID > 0 {
		w.add(`c.school_id = $%d`, schoolID)
	}
	rows, err := r.db.Query(ctx, classSelect+w.String()+` ORDER BY c.grade_level, m.code, c.group_number`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.SchoolID, &c.GradeLevel, &c.MajorID, &c.MajorCode, &c.GroupNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *classRepository) Create(ctx context.Context, c *model.Class) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO classes (school_id, grade_level, major_id, group_number)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.SchoolID, c.GradeLevel, c.MajorID, c.GroupNumber,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return writeErr(err)
}

// Update modifies an existing class.
func (r *classRepository) Update(ctx context.Context, c *model.Class) error {
	err := r.db.QueryRow(ctx,
		`UPDATE classes SET school_id = $1, grade_level = $2, major_id = $3, group_number = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING created_at, updated_at`,
		c.SchoolID, c.GradeLevel, c.MajorID, c.GroupNumber, c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return writeErr(err)
}

// Delete removes a class. Classes still holding students or rombels fail
// with ErrInUse.
func (r *classRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
