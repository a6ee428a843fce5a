package service

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// ClassService handles class business logic.
type ClassService struct {
	classRepo repository.ClassRepository
	stats     StatsInvalidator
}

// NewClassService creates a new ClassService.
func NewClassService(classRepo repository.ClassRepository, stats StatsInvalidator) *ClassService {
	return &ClassService{classRepo: classRepo, stats: stats}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

// List retrieves all classes, optionally of one school.
func (s *ClassService) List(ctx context.Context, schoolID int) ([]model.Class, error) {
	return s.classRepo.List(ctx, schoolID)
}

// Create creates a new class and returns it with its major code resolved.
func (s *ClassService) Create(ctx context.Context, req *model.ClassRequest) (*model.Class, error) {
	class := &model.Class{
		SchoolID:    req.SchoolID,
		GradeLevel:  req.GradeLevel,
		MajorID:     req.MajorID,
		GroupNumber: req.GroupNumber,
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return s.classRepo.GetByID(ctx, class.ID)
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, id int, req *model.ClassRequest) (*model.Class, error) {
	class := &model.Class{
		ID:          id,
		SchoolID:    req.SchoolID,
		GradeLevel:  req.GradeLevel,
		MajorID:     req.MajorID,
		GroupNumber: req.GroupNumber,
	}
	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return s.classRepo.GetByID(ctx, id)
}

// Delete removes a class.
func (s *ClassService) Delete(ctx context.Context, id int) error {
	if err := s.classRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}
