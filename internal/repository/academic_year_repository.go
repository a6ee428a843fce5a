package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/database"
	"github.com/stemsi/sekolah-backend/internal/model"
)

type AcademicYearRepository interface {
	List(ctx context.Context, schoolID int) ([]model.AcademicYear, error)
	GetByID(ctx context.Context, id int) (*model.AcademicYear, error)
	Create(ctx context.Context, year *model.AcademicYear) error
	Update(ctx context.Context, year *model.AcademicYear) error
	Delete(ctx context.Context, id int) error
	Activate(ctx context.Context, id int) (*model.AcademicYear, error)
}

type academicYearRepository struct {
	db DB
}

func NewAcademicYearRepository(db DB) AcademicYearRepository {
	return &academicYearRepository{db: db}
}

const academicYearColumns = `id, school_id, name, start_date, end_date, is_active, created_at, updated_at`

func scanAcademicYear(row pgx.Row, y *model.AcademicYear) error {
	return row.Scan(&y.ID, &y.SchoolID, &y.Name, &y.StartDate, &y.EndDate, &y.IsActive, &y.CreatedAt, &y.UpdatedAt)
}

func (r *academicYearRepository) List(ctx context.Context, schoolID int) ([]model.AcademicYear, error) {
	var w where
	if schoolID > 0 {
		w.add(`school_id = $%d`, schoolID)
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+academicYearColumns+` FROM academic_years`+w.String()+` ORDER BY start_date DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []model.AcademicYear{}
	for rows.Next() {
		var y model.AcademicYear
		if err := scanAcademicYear(rows, &y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (r *academicYearRepository) GetByID(ctx context.Context, id int) (*model.AcademicYear, error) {
	y := &model.AcademicYear{}
	if err := scanAcademicYear(r.db.QueryRow(ctx, `SELECT `+academicYearColumns+` FROM academic_years WHERE id = $1`, id), y); err != nil {
		return nil, readErr(err)
	}
	return y, nil
}

func (r *academicYearRepository) Create(ctx context.Context, y *model.AcademicYear) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO academic_years (school_id, name, start_date, end_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_active, created_at, updated_at`,
		y.SchoolID, y.Name, y.StartDate, y.EndDate,
	).Scan(&y.ID, &y.IsActive, &y.CreatedAt, &y.UpdatedAt)
	return writeErr(err)
}

func (r *academicYearRepository) Update(ctx context.Context, y *model.AcademicYear) error {
	err := r.db.QueryRow(ctx,
		`UPDATE academic_years
		 SET school_id = $1, name = $2, start_date = $3, end_date = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING is_active, created_at, updated_at`,
		y.SchoolID, y.Name, y.StartDate, y.EndDate, y.ID,
	).Scan(&y.IsActive, &y.CreatedAt, &y.UpdatedAt)
	return writeErr(err)
}

func (r *academicYearRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM academic_years WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}

// Activate marks the year active and deactivates every other year of the
// same school in one transaction.
func (r *academicYearRepository) Activate(ctx context.Context, id int) (*model.AcademicYear, error) {
	y := &model.AcademicYear{}
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var schoolID int
		if err := tx.QueryRow(ctx,
			`SELECT school_id FROM academic_years WHERE id = $1 FOR UPDATE`, id,
		).Scan(&schoolID); err != nil {
			return readErr(err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE academic_years SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
			 WHERE school_id = $1 AND is_active AND id <> $2`, schoolID, id,
		); err != nil {
			return err
		}

		return scanAcademicYear(tx.QueryRow(ctx,
			`UPDATE academic_years SET is_active = TRUE, updated_at = CURRENT_TIMESTAMP
			 WHERE id = $1
			 RETURNING `+academicYearColumns, id,
		), y)
	})
	if err != nil {
		return nil, err
	}
	return y, nil
}
