package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type DashboardRepository interface {
	GetStats(ctx context.Context, schoolID int) (*model.DashboardStats, error)
}

// dashboardRepository handles admin dashboard data access.
type dashboardRepository struct {
	db DB
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// GetStats retrieves the high-level counters. schoolID 0 counts every school.
func (r *dashboardRepository) GetStats(ctx context.Context, schoolID int) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{UsersByRole: map[model.Role]int{}}

	// $1 = 0 disables the school filter.
	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM schools  WHERE $1 = 0 OR id = $1),
			(SELECT COUNT(*) FROM students WHERE $1 = 0 OR school_id = $1),
			(SELECT COUNT(*) FROM teachers WHERE $1 = 0 OR school_id = $1),
			(SELECT COUNT(*) FROM staff    WHERE $1 = 0 OR school_id = $1),
			(SELECT COUNT(*) FROM classes  WHERE $1 = 0 OR school_id = $1),
			(SELECT COUNT(*) FROM rombels r JOIN classes c ON c.id = r.class_id WHERE $1 = 0 OR c.school_id = $1),
			(SELECT COUNT(*) FROM subjects WHERE $1 = 0 OR school_id = $1)`,
		schoolID,
	).Scan(&stats.Schools, &stats.Students, &stats.Teachers, &stats.Staff, &stats.Classes, &stats.Rombels, &stats.Subjects)
	if err != nil {
		return nil, err
	}

	// users has no school_id; the breakdown is account-wide whatever schoolID is.
	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		// Unknown stored roles are folded into USER, matching how they authorize.
		stats.UsersByRole[model.ParseRole(role)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var name string
	err = r.db.QueryRow(ctx,
		`SELECT name FROM academic_years WHERE is_active AND ($1 = 0 OR school_id = $1)
		 ORDER BY start_date DESC LIMIT 1`, schoolID,
	).Scan(&name)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		stats.ActiveAcademicYear = &name
	}

	return stats, nil
}
