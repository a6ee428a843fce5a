package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/model"
)

// StudentRepository handles student data access.
type StudentRepository interface {
	ListPaginated(ctx context.Context, q model.ListQuery) ([]model.Student, int, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
	GetByNISN(ctx context.Context, nisn string) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int) error
}

type studentRepository struct {
	db DB
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db DB) StudentRepository {
	return &studentRepository{db: db}
}

const studentColumnsQualified = `s.id, s.school_id, s.user_id, s.nis, s.nisn, s.name, s.gender, s.religion, s.class_id, s.created_at, s.updated_at`

func scanStudent(row pgx.Row, s *model.Student) error {
	return row.Scan(&s.ID, &s.SchoolID, &s.UserID, &s.NIS, &s.NISN, &s.Name, &s.Gender, &s.Religion, &s.ClassID, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a student by ID.
func (r *studentRepository) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s := &model.Student{}
	if err := scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumnsQualified+` FROM students s WHERE s.id = $1`, id), s); err != nil {
		return nil, readErr(err)
	}
	return s, nil
}

// GetByNISN retrieves a student by their unique NISN.
func (r *studentRepository) GetByNISN(ctx context.Context, nisn string) (*model.Student, error) {
	s := &model.Student{}
	if err := scanStudent(r.db.QueryRow(ctx, `SELECT `+studentColumnsQualified+` FROM students s WHERE s.nisn = $1`, nisn), s); err != nil {
		return nil, readErr(err)
	}
	return s, nil
}

// ListPaginated retrieves students with pagination, optionally filtered by
// school, class and a name/NIS/NISN search term.
func (r *studentRepository) ListPaginated(ctx context.Context, q model.ListQuery) ([]model.Student, int, error) {
	var w where
	if q.SchoolID > 0 {
		w.add(`s.school_id = $%d`, q.SchoolID)
	}
	if q.ClassID > 0 {
		w.add(`s.class_id = $%d`, q.ClassID)
	}
	if q.Search != "" {
		w.add(`(s.name ILIKE $%[1]d OR s.nis ILIKE $%[1]d OR s.nisn ILIKE $%[1]d)`, likePattern(q.Search))
	}

	// 1. Get total count
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students s`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	limit, args := w.page(q.PerPage, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+studentColumnsQualified+` FROM students s`+w.String()+` ORDER BY s.name`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

// Create inserts a new student.
func (r *studentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO students (school_id, user_id, nis, nisn, name, gender, religion, class_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		s.SchoolID, s.UserID, s.NIS, s.NISN, s.Name, s.Gender, s.Religion, s.ClassID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

// Update modifies a student's details.
func (r *studentRepository) Update(ctx context.Context, s *model.Student) error {
	err := r.db.QueryRow(ctx,
		`UPDATE students
		 SET school_id = $1, user_id = $2, nis = $3, nisn = $4, name = $5, gender = $6, religion = $7, class_id = $8,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9
		 RETURNING created_at, updated_at`,
		s.SchoolID, s.UserID, s.NIS, s.NISN, s.Name, s.Gender, s.Religion, s.ClassID, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

// Delete removes a student by ID.
func (r *studentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
