package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type TeacherRepository interface {
	ListPaginated(ctx context.Context, q model.ListQuery) ([]model.Teacher, int, error)
	GetByID(ctx context.Context, id int) (*model.Teacher, error)
	Create(ctx context.Context, t *model.Teacher) error
	Update(ctx context.Context, t *model.Teacher) error
	Delete(ctx context.Context, id int) error
}

type teacherRepository struct {
	db DB
}

func NewTeacherRepository(db DB) TeacherRepository {
	return &teacherRepository{db: db}
}

const teacherColumns = `id, school_id, user_id, nip, nuptk, name, gender, phone, department_id, created_at, updated_at`

func scanTeacher(row pgx.Row, t *model.Teacher) error {
	return row.Scan(&t.ID, &t.SchoolID, &t.UserID, &t.NIP, &t.NUPTK, &t.Name, &t.Gender, &t.Phone, &t.DepartmentID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *teacherRepository) ListPaginated(ctx context.Context, q model.ListQuery) ([]model.Teacher, int, error) {
	var w where
	if q.SchoolID > 0 {
		w.add(`school_id = $%d`, q.SchoolID)
	}
	if q.Search != "" {
		w.add(`(name ILIKE $%[1]d OR nip ILIKE $%[1]d OR nuptk ILIKE $%[1]d)`, likePattern(q.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q.PerPage, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+teacherColumns+` FROM teachers`+w.String()+` ORDER BY name`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		var t model.Teacher
		if err := scanTeacher(rows, &t); err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, t)
	}
	return teachers, total, rows.Err()
}

func (r *teacherRepository) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	t := &model.Teacher{}
	if err := scanTeacher(r.db.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id), t); err != nil {
		return nil, readErr(err)
	}
	return t, nil
}

func (r *teacherRepository) Create(ctx context.Context, t *model.Teacher) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO teachers (school_id, user_id, nip, nuptk, name, gender, phone, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		t.SchoolID, t.UserID, t.NIP, t.NUPTK, t.Name, t.Gender, t.Phone, t.DepartmentID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return writeErr(err)
}

func (r *teacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	err := r.db.QueryRow(ctx,
		`UPDATE teachers
		 SET school_id = $1, user_id = $2, nip = $3, nuptk = $4, name = $5, gender = $6, phone = $7, department_id = $8,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9
		 RETURNING created_at, updated_at`,
		t.SchoolID, t.UserID, t.NIP, t.NUPTK, t.Name, t.Gender, t.Phone, t.DepartmentID, t.ID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	return writeErr(err)
}

func (r *teacherRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
