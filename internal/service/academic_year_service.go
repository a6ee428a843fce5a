package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// AcademicYearService handles academic year business logic.
type AcademicYearService struct {
	repo  repository.AcademicYearRepository
	stats StatsInvalidator
	log   zerolog.Logger
}

// NewAcademicYearService creates a new AcademicYearService.
func NewAcademicYearService(repo repository.AcademicYearRepository, stats StatsInvalidator, log zerolog.Logger) *AcademicYearService {
	return &AcademicYearService{
		repo:  repo,
		stats: stats,
		log:   log.With().Str("component", "academic_year_service").Logger(),
	}
}

func (s *AcademicYearService) List(ctx context.Context, schoolID int) ([]model.AcademicYear, error) {
	return s.repo.List(ctx, schoolID)
}

func (s *AcademicYearService) GetByID(ctx context.Context, id int) (*model.AcademicYear, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds an inactive academic year.
func (s *AcademicYearService) Create(ctx context.Context, req *model.AcademicYearRequest) (*model.AcademicYear, error) {
	year := &model.AcademicYear{
		SchoolID:  req.SchoolID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// Update modifies an academic year. Activation state is untouched.
func (s *AcademicYearService) Update(ctx context.Context, id int, req *model.AcademicYearRequest) (*model.AcademicYear, error) {
	year := &model.AcademicYear{
		ID:        id,
		SchoolID:  req.SchoolID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Update(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

func (s *AcademicYearService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Activate makes id the single active year of its school.
func (s *AcademicYearService) Activate(ctx context.Context, id int) (*model.AcademicYear, error) {
	year, err := s.repo.Activate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("academic_year_id", id).Int("school_id", year.SchoolID).Str("name", year.Name).Msg("academic year activated")
	invalidateStats(ctx, s.stats)
	return year, nil
}
