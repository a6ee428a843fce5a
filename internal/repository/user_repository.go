package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/model"
)

// UserRepository handles login account data access.
type UserRepository interface {
	ListPaginated(ctx context.Context, q model.ListQuery) ([]model.User, int, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	TouchLastLogin(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	CountByRole(ctx context.Context) (map[string]int, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, is_active, last_login_at, created_at, updated_at`

// The role column is scanned verbatim; callers resolve it with
// model.ParseRole, so a value outside the closed set fails closed.
func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
}

// ListPaginated retrieves users, optionally filtered by role and a
// name/email search term.
func (r *userRepository) ListPaginated(ctx context.Context, q model.ListQuery) ([]model.User, int, error) {
	var w where
	if q.Role != "" {
		w.add(`role = $%d`, string(q.Role))
	}
	if q.Search != "" {
		w.add(`(name ILIKE $%[1]d OR email ILIKE $%[1]d)`, likePattern(q.Search))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(q.PerPage, q.Offset())
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY created_at DESC, id DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	if err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), u); err != nil {
		return nil, readErr(err)
	}
	return u, nil
}

// GetByEmail retrieves a user by their unique email, case-insensitively.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	if err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email), u); err != nil {
		return nil, readErr(err)
	}
	return u, nil
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.Name, u.PasswordHash, string(u.Role), u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return writeErr(err)
}

// Update writes a user's profile, role, active flag and password hash in a
// single statement, so a password reset never lands without the rest.
func (r *userRepository) Update(ctx context.Context, u *model.User) error {
	err := r.db.QueryRow(ctx,
		`UPDATE users SET email = $1, name = $2, role = $3, is_active = $4, password_hash = $5,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6
		 RETURNING last_login_at, created_at, updated_at`,
		u.Email, u.Name, string(u.Role), u.IsActive, u.PasswordHash, u.ID,
	).Scan(&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	return writeErr(err)
}

// TouchLastLogin records a successful login.
func (r *userRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

// Delete removes a user by ID.
func (r *userRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}

// CountByRole returns the number of accounts per stored role value. Keys are
// the raw column values, including any that are not a known role.
func (r *userRepository) CountByRole(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}
