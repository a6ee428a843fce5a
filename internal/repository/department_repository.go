package repository

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
)

type DepartmentRepository interface {
	List(ctx context.Context, schoolID int) ([]model.Department, error)
	GetByID(ctx context.Context, id int) (*model.Department, error)
	Create(ctx context.Context, d *model.Department) error
	Update(ctx context.Context, d *model.Department) error
	Delete(ctx context.Context, id int) error
}

type departmentRepository struct {
	db DB
}

func NewDepartmentRepository(db DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) List(ctx context.Context, schoolID int) ([]model.Department, error) {
	var w where
	if schoolID > 0 {
		w.add(`school_id = $%d`, schoolID)
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, school_id, name, head_teacher_id, created_at, updated_at
		 FROM departments`+w.String()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []model.Department{}
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.SchoolID, &d.Name, &d.HeadTeacherID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepository) GetByID(ctx context.Context, id int) (*model.Department, error) {
	d := &model.Department{}
	err := r.db.QueryRow(ctx,
		`SELECT id, school_id, name, head_teacher_id, created_at, updated_at
		 FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.SchoolID, &d.Name, &d.HeadTeacherID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, readErr(err)
	}
	return d, nil
}

func (r *departmentRepository) Create(ctx context.Context, d *model.Department) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (school_id, name, head_teacher_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		d.SchoolID, d.Name, d.HeadTeacherID,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return writeErr(err)
}

func (r *departmentRepository) Update(ctx context.Context, d *model.Department) error {
	err := r.db.QueryRow(ctx,
		`UPDATE departments
		 SET school_id = $1, name = $2, head_teacher_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4
		 RETURNING created_at, updated_at`,
		d.SchoolID, d.Name, d.HeadTeacherID, d.ID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	return writeErr(err)
}

func (r *departmentRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return expectOne(tag, err, deleteErr)
}
