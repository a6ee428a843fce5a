package service

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// DepartmentService handles department business logic.
type DepartmentService struct {
	repo repository.DepartmentRepository
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(repo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func (s *DepartmentService) List(ctx context.Context, schoolID int) ([]model.Department, error) {
	return s.repo.List(ctx, schoolID)
}

func (s *DepartmentService) GetByID(ctx context.Context, id int) (*model.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, req *model.DepartmentRequest) (*model.Department, error) {
	d := &model.Department{
		SchoolID:      req.SchoolID,
		Name:          req.Name,
		HeadTeacherID: req.HeadTeacherID,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DepartmentService) Update(ctx context.Context, id int, req *model.DepartmentRequest) (*model.Department, error) {
	d := &model.Department{
		ID:            id,
		SchoolID:      req.SchoolID,
		Name:          req.Name,
		HeadTeacherID: req.HeadTeacherID,
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
