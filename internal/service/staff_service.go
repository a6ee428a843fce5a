package service

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// StaffService handles non-teaching staff business logic.
type StaffService struct {
	repo  repository.StaffRepository
	stats StatsInvalidator
}

// NewStaffService creates a new StaffService.
func NewStaffService(repo repository.StaffRepository, stats StatsInvalidator) *StaffService {
	return &StaffService{repo: repo, stats: stats}
}

func (s *StaffService) List(ctx context.Context, q model.ListQuery) ([]model.Staff, int, error) {
	q.Normalize()
	return s.repo.ListPaginated(ctx, q)
}

func (s *StaffService) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StaffService) Create(ctx context.Context, req *model.StaffRequest) (*model.Staff, error) {
	st := &model.Staff{
		SchoolID: req.SchoolID,
		UserID:   req.UserID,
		NIP:      req.NIP,
		Name:     req.Name,
		Position: req.Position,
		Phone:    req.Phone,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return st, nil
}

func (s *StaffService) Update(ctx context.Context, id int, req *model.StaffRequest) (*model.Staff, error) {
	st := &model.Staff{
		ID:       id,
		SchoolID: req.SchoolID,
		UserID:   req.UserID,
		NIP:      req.NIP,
		Name:     req.Name,
		Position: req.Position,
		Phone:    req.Phone,
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StaffService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}
