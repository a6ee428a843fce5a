package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type SchoolRepository interface {
	List(ctx context.Context, q model.ListQuery) ([]model.School, int, error)
	GetByID(ctx context.Context, id int) (*model.School, error)
	Create(ctx context.Context, school *model.School) error
	Update(ctx context.Context, school *model.School) error
	Delete(ctx context.Context, id int) error
}

type schoolRepository struct {
	db DB
}

func NewSchoolRepository(db DB) SchoolRepository {
	return &schoolRepository{db: db}
}

const schoolColumns = `id, npsn, name, address, phone, email, created_at, updated_at`

func scanSchool(row pgx.Row, s *model.School) error {
	return row.Scan(&s.ID, &s.NPSN, &s.Name, &s.Address, &s.Phone, &s.Email, &s.CreatedAt, &s.UpdatedAt)
}

func (r *schoolRepository) List(ctx context.Context, q model.ListQuery) ([]model.School, int, error) {
	var w where
	if q.Search != "" {
		w.add(`(name ILIKE $%[1]d OR npsn ILIKE $%[1]d)`, likePattern(q.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM schools`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q.PerPage, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+schoolColumns+` FROM schools`+w.String()+` ORDER BY name`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	schools := []model.School{}
	for rows.Next() {
		var s model.School
		if err := scanSchool(rows, &s); err != nil {
			return nil, 0, err
		}
		schools = append(schools, s)
	}
	return schools, total, rows.Err()
}

func (r *schoolRepository) GetByID(ctx context.Context, id int) (*model.School, error) {
	s := &model.School{}
	err := scanSchool(r.db.QueryRow(ctx, `SELECT `+schoolColumns+` FROM schools WHERE id = $1`, id), s)
	if err != nil {
		return nil, readErr(err)
	}
	return s, nil
}

func (r *schoolRepository) Create(ctx context.Context, s *model.School) error {
	query := `
		INSERT INTO schools (npsn, name, address, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, s.NPSN, s.Name, s.Address, s.Phone, s.Email).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

func (r *schoolRepository) Update(ctx context.Context, s *model.School) error {
	query := `
		UPDATE schools
		SET npsn = $1, name = $2, address = $3, phone = $4, email = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, s.NPSN, s.Name, s.Address, s.Phone, s.Email, s.ID).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

func (r *schoolRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
