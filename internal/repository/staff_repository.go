package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type StaffRepository interface {
	ListPaginated(ctx context.Context, q model.ListQuery) ([]model.Staff, int, error)
	GetByID(ctx context.Context, id int) (*model.Staff, error)
	Create(ctx context.Context, s *model.Staff) error
	Update(ctx context.Context, s *model.Staff) error
	Delete(ctx context.Context, id int) error
}

type staffRepository struct {
	db DB
}

func NewStaffRepository(db DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, school_id, user_id, nip, name, position, phone, created_at, updated_at`

func scanStaff(row pgx.Row, s *model.Staff) error {
	return row.Scan(&s.ID, &s.SchoolID, &s.UserID, &s.NIP, &s.Name, &s.Position, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
}

func (r *staffRepository) ListPaginated(ctx context.Context, q model.ListQuery) ([]model.Staff, int, error) {
	var w where
	if q.SchoolID > 0 {
		w.add(`school_id = $%d`, q.SchoolID)
	}
	if q.Search != "" {
		w.add(`(name ILIKE $%[1]d OR position ILIKE $%[1]d)`, likePattern(q.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM staff`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q.PerPage, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+staffColumns+` FROM staff`+w.String()+` ORDER BY name`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := []model.Staff{}
	for rows.Next() {
		var s model.Staff
		if err := scanStaff(rows, &s); err != nil {
			return nil, 0, err
		}
		members = append(members, s)
	}
	return members, total, rows.Err()
}

func (r *staffRepository) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	s := &model.Staff{}
	if err := scanStaff(r.db.QueryRow(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id), s); err != nil {
		return nil, readErr(err)
	}
	return s, nil
}

func (r *staffRepository) Create(ctx context.Context, s *model.Staff) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO staff (school_id, user_id, nip, name, position, phone)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.SchoolID, s.UserID, s.NIP, s.Name, s.Position, s.Phone,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

func (r *staffRepository) Update(ctx context.Context, s *model.Staff) error {
	err := r.db.QueryRow(ctx,
		`UPDATE staff
		 SET school_id = $1, user_id = $2, nip = $3, name = $4, position = $5, phone = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING created_at, updated_at`,
		s.SchoolID, s.UserID, s.NIP, s.Name, s.Position, s.Phone, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return writeErr(err)
}

func (r *staffRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
