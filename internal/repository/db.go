package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repositories need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Sentinel errors returned by every repository. Handlers map them to HTTP
// statuses with errors.Is.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrInUse            = errors.New("record is still referenced by other data")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// readErr maps pgx.ErrNoRows to ErrNotFound.
func readErr(err error) error {
	return classify(err, ErrInvalidReference)
}

// writeErr classifies an error from INSERT/UPDATE. A foreign key violation
// here means the referenced parent is missing.
func writeErr(err error) error {
	return classify(err, ErrInvalidReference)
}

// deleteErr classifies an error from DELETE. A foreign key violation here
// means children still point at the row.
func deleteErr(err error) error {
	return classify(err, ErrInUse)
}

func classify(err error, fkErr error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w (%s)", fkErr, pgErr.ConstraintName)
		}
	}
	return err
}

// expectOne turns an UPDATE/DELETE that touched no row into ErrNotFound.
func expectOne(tag pgconn.CommandTag, err error, classifyFn func(error) error) error {
	if err != nil {
		return classifyFn(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// where accumulates AND-ed filter conditions with positional arguments.
// Each condition is a format string whose %[1]d verbs become the argument's
// placeholder number.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause with the full
// argument list.
func (w *where) page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any(nil), w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// likePattern escapes LIKE metacharacters and wraps s for a contains match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
