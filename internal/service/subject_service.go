package service

import (
	"context"
	"strings"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// SubjectService handles subject business logic.
type SubjectService struct {
	subjectRepo repository.SubjectRepository
	stats       StatsInvalidator
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo repository.SubjectRepository, stats StatsInvalidator) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo, stats: stats}
}

// GetAll retrieves all subjects, optionally of one school.
func (s *SubjectService) GetAll(ctx context.Context, schoolID int) ([]model.Subject, error) {
	return s.subjectRepo.GetAll(ctx, schoolID)
}

// GetByID retrieves a subject by ID.
func (s *SubjectService) GetByID(ctx context.Context, id int) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// Create inserts a new subject.
func (s *SubjectService) Create(ctx context.Context, req *model.SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		SchoolID:     req.SchoolID,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return subject, nil
}

// Update modifies a subject.
func (s *SubjectService) Update(ctx context.Context, id int, req *model.SubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{
		ID:           id,
		SchoolID:     req.SchoolID,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	}
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject.
func (s *SubjectService) Delete(ctx context.Context, id int) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}
