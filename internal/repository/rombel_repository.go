package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/database"
	"github.com/stemsi/sekolah-backend/internal/model"
)

type RombelRepository interface {
	List(ctx context.Context, academicYearID, classID int) ([]model.Rombel, error)
	GetByID(ctx context.Context, id int) (*model.Rombel, error)
	Create(ctx context.Context, rb *model.Rombel) error
	Update(ctx context.Context, rb *model.Rombel) error
	Delete(ctx context.Context, id int) error
	ListMembers(ctx context.Context, rombelID int) ([]model.Student, error)
	AddMembers(ctx context.Context, rombelID int, studentIDs []int) (int, error)
	RemoveMembers(ctx context.Context, rombelID int, studentIDs []int) (int, error)
}

type rombelRepository struct {
	db DB
}

func NewRombelRepository(db DB) RombelRepository {
	return &rombelRepository{db: db}
}

const rombelSelect = `
	SELECT r.id, r.class_id, r.academic_year_id, r.name, r.homeroom_teacher_id,
	       (SELECT COUNT(*) FROM rombel_students rs WHERE rs.rombel_id = r.id),
	       r.created_at, r.updated_at
	FROM rombels r`

func scanRombel(row pgx.Row, rb *model.Rombel) error {
	return row.Scan(&rb.ID, &rb.ClassID, &rb.AcademicYearID, &rb.Name, &rb.HomeroomTeacherID,
		&rb.MemberCount, &rb.CreatedAt, &rb.UpdatedAt)
}

func (r *rombelRepository) List(ctx context.Context, academicYearID, classID int) ([]model.Rombel, error) {
	var w where
	if academicYearID > 0 {
		w.add(`r.academic_year_id = $%d`, academicYearID)
	}
	if classID > 0 {
		w.add(`r.class_id = $%d`, classID)
	}
	rows, err := r.db.Query(ctx, rombelSelect+w.String()+` ORDER BY r.name`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rombels := []model.Rombel{}
	for rows.Next() {
		var rb model.Rombel
		if err := scanRombel(rows, &rb); err != nil {
			return nil, err
		}
		rombels = append(rombels, rb)
	}
	return rombels, rows.Err()
}

func (r *rombelRepository) GetByID(ctx context.Context, id int) (*model.Rombel, error) {
	rb := &model.Rombel{}
	if err := scanRombel(r.db.QueryRow(ctx, rombelSelect+` WHERE r.id = $1`, id), rb); err != nil {
		return nil, readErr(err)
	}
	return rb, nil
}

func (r *rombelRepository) Create(ctx context.Context, rb *model.Rombel) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO rombels (class_id, academic_year_id, name, homeroom_teacher_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		rb.ClassID, rb.AcademicYearID, rb.Name, rb.HomeroomTeacherID,
	).Scan(&rb.ID, &rb.CreatedAt, &rb.UpdatedAt)
	return writeErr(err)
}

func (r *rombelRepository) Update(ctx context.Context, rb *model.Rombel) error {
	err := r.db.QueryRow(ctx,
		`UPDATE rombels
		 SET class_id = $1, academic_year_id = $2, name = $3, homeroom_teacher_id = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5
		 RETURNING created_at, updated_at`,
		rb.ClassID, rb.AcademicYearID, rb.Name, rb.HomeroomTeacherID, rb.ID,
	).Scan(&rb.CreatedAt, &rb.UpdatedAt)
	return writeErr(err)
}

// Delete removes a rombel together with its membership rows.
func (r *rombelRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rombels WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}

func (r *rombelRepository) ListMembers(ctx context.Context, rombelID int) ([]model.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumnsQualified+`
		 FROM rombel_students rs
		 JOIN students s ON s.id = rs.student_id
		 WHERE rs.rombel_id = $1
		 ORDER BY s.name`, rombelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// AddMembers inserts the students into the rombel, skipping existing members.
// It returns how many rows were added.
func (r *rombelRepository) AddMembers(ctx context.Context, rombelID int, studentIDs []int) (int, error) {
	added := 0
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, sid := range studentIDs {
			tag, err := tx.Exec(ctx,
				`INSERT INTO rombel_students (rombel_id, student_id) VALUES ($1, $2)
				 ON CONFLICT (rombel_id, student_id) DO NOTHING`, rombelID, sid)
			if err != nil {
				return writeErr(err)
			}
			added += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveMembers deletes the students from the rombel and returns how many
// memberships were removed.
func (r *rombelRepository) RemoveMembers(ctx context.Context, rombelID int, studentIDs []int) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM rombel_students WHERE rombel_id = $1 AND student_id = ANY($2)`, rombelID, studentIDs)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
