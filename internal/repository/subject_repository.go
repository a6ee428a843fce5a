package repository

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type SubjectRepository interface {
	GetAll(ctx context.Context, schoolID int) ([]model.Subject, error)
	GetByID(ctx context.Context, id int) (*model.Subject, error)
	Create(ctx context.Context, s *model.Subject) error
	Update(ctx context.Context, s *model.Subject) error
	Delete(ctx context.Context, id int) error
}

type subjectRepository struct {
	db DB
}

func NewSubjectRepository(db DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, s *model.Subject) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO subjects (school_id, code, name, department_id) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.SchoolID, s.Code, s.Name, s.DepartmentID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

func (r *subjectRepository) GetAll(ctx context.Context, schoolID int) ([]model.Subject, error) {
	var w where
	if schoolID > 0 {
		w.add(`school_id = $%d`, schoolID)
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, school_id, code, name, department_id, created_at, updated_at
		 FROM subjects`+w.String()+` ORDER BY name ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.SchoolID, &s.Code, &s.Name, &s.DepartmentID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *subjectRepository) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	s := &model.Subject{}
	err := r.db.QueryRow(ctx,
		`SELECT id, school_id, code, name, department_id, created_at, updated_at FROM subjects WHERE id = $1`, id,
	).Scan(&s.ID, &s.SchoolID, &s.Code, &s.Name, &s.DepartmentID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, readErr(err)
	}
	return s, nil
}

func (r *subjectRepository) Update(ctx context.Context, s *model.Subject) error {
	err := r.db.QueryRow(ctx,
		`UPDATE subjects SET school_id = $1, code = $2, name = $3, department_id = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING created_at, updated_at`,
		s.SchoolID, s.Code, s.Name, s.DepartmentID, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

func (r *subjectRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
