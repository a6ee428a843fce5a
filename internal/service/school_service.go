package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// SchoolService handles school business logic.
type SchoolService struct {
	repo  repository.SchoolRepository
	stats StatsInvalidator
	log   zerolog.Logger
}

// NewSchoolService creates a new SchoolService.
func NewSchoolService(repo repository.SchoolRepository, stats StatsInvalidator, log zerolog.Logger) *SchoolService {
	return &SchoolService{
		repo:  repo,
		stats: stats,
		log:   log.With().Str("component", "school_service").Logger(),
	}
}

// List retrieves a page of schools.
func (s *SchoolService) List(ctx context.Context, q model.ListQuery) ([]model.School, int, error) {
	q.Normalize()
	return s.repo.List(ctx, q)
}

// GetByID retrieves a school by ID.
func (s *SchoolService) GetByID(ctx context.Context, id int) (*model.School, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registers a school.
func (s *SchoolService) Create(ctx context.Context, req *model.SchoolRequest) (*model.School, error) {
	school := &model.School{
		NPSN:    req.NPSN,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.repo.Create(ctx, school); err != nil {
		return nil, err
	}
	s.log.Info().Int("school_id", school.ID).Str("npsn", school.NPSN).Msg("school created")
	invalidateStats(ctx, s.stats)
	return school, nil
}

// Update modifies a school.
func (s *SchoolService) Update(ctx context.Context, id int, req *model.SchoolRequest) (*model.School, error) {
	school := &model.School{
		ID:      id,
		NPSN:    req.NPSN,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.repo.Update(ctx, school); err != nil {
		return nil, err
	}
	return school, nil
}

// Delete removes a school that no longer owns any records.
func (s *SchoolService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("school_id", id).Msg("school deleted")
	invalidateStats(ctx, s.stats)
	return nil
}
