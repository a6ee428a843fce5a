package repository

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type MajorRepository interface {
	GetAll(ctx context.Context, schoolID int) ([]*model.Major, error)
	GetByID(ctx context.Context, id int) (*model.Major, error)
	GetByCode(ctx context.Context, schoolID int, code string) (*model.Major, error)
	Create(ctx context.Context, major *model.Major) error
	Update(ctx context.Context, major *model.Major) error
	Delete(ctx context.Context, id int) error
}

type majorRepository struct {
	db DB
}

func NewMajorRepository(db DB) MajorRepository {
	return &majorRepository{db: db}
}

func (r *majorRepository) GetAll(ctx context.Context, schoolID int) ([]*model.Major, error) {
	var w where
	if schoolID > 0 {
		w.add(`school_id = $%d`, schoolID)
	}
	query := `SELECT id, school_id, code, long_name, created_at, updated_at FROM majors` + w.String() + ` ORDER BY long_name ASC`
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	majors := []*model.Major{}
	for rows.Next() {
		m := &model.Major{}
		if err := rows.Scan(&m.ID, &m.SchoolID, &m.Code, &m.LongName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}

func (r *majorRepository) GetByID(ctx context.Context, id int) (*model.Major, error) {
	query := `SELECT id, school_id, code, long_name, created_at, updated_at FROM majors WHERE id = $1`
	m := &model.Major{}
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.SchoolID, &m.Code, &m.LongName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, readErr(err)
	}
	return m, nil
}

func (r *majorRepository) GetByCode(ctx context.Context, schoolID int, code string) (*model.Major, error) {
	query := `SELECT id, school_id, code, long_name, created_at, updated_at FROM majors WHERE school_id = $1 AND code = $2`
	m := &model.Major{}
	err := r.db.QueryRow(ctx, query, schoolID, code).Scan(&m.ID, &m.SchoolID, &m.Code, &m.LongName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, readErr(err)
	}
	return m, nil
}

func (r *majorRepository) Create(ctx context.Context, major *model.Major) error {
	query := `
		INSERT INTO majors (school_id, code, long_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, major.SchoolID, major.Code, major.LongName).
		Scan(&major.ID, &major.CreatedAt, &major.UpdatedAt)
	return writeErr(err)
}

func (r *majorRepository) Update(ctx context.Context, major *model.Major) error {
	query := `
		UPDATE majors
		SET school_id = $1, code = $2, long_name = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, major.SchoolID, major.Code, major.LongName, major.ID).
		Scan(&major.CreatedAt, &major.UpdatedAt)
	return writeErr(err)
}

func (r *majorRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM majors WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
