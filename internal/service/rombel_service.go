package service

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// RombelService handles study-group business logic.
type RombelService struct {
	repo  repository.RombelRepository
	stats StatsInvalidator
	log   zerolog.Logger
}

// NewRombelService creates a new RombelService.
func NewRombelService(repo repository.RombelRepository, stats StatsInvalidator, log zerolog.Logger) *RombelService {
	return &RombelService{
		repo:  repo,
		stats: stats,
		log:   log.With().Str("component", "rombel_service").Logger(),
	}
}

// List retrieves rombels filtered by academic year and class; zero means any.
func (s *RombelService) List(ctx context.Context, academicYearID, classID int) ([]model.Rombel, error) {
	return s.repo.List(ctx, academicYearID, classID)
}

func (s *RombelService) GetByID(ctx context.Context, id int) (*model.Rombel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RombelService) Create(ctx context.Context, req *model.RombelRequest) (*model.Rombel, error) {
	rb := &model.Rombel{
		ClassID:           req.ClassID,
		AcademicYearID:    req.AcademicYearID,
		Name:              req.Name,
		HomeroomTeacherID: req.HomeroomTeacherID,
	}
	if err := s.repo.Create(ctx, rb); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return rb, nil
}

func (s *RombelService) Update(ctx context.Context, id int, req *model.RombelRequest) (*model.Rombel, error) {
	rb := &model.Rombel{
		ID:                id,
		ClassID:           req.ClassID,
		AcademicYearID:    req.AcademicYearID,
		Name:              req.Name,
		HomeroomTeacherID: req.HomeroomTeacherID,
	}
	if err := s.repo.Update(ctx, rb); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *RombelService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func (s *RombelService) ListMembers(ctx context.Context, id int) ([]model.Student, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, id)
}

// AddMembers enrolls students; already-enrolled students are skipped.
func (s *RombelService) AddMembers(ctx context.Context, id int, studentIDs []int) (int, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	added, err := s.repo.AddMembers(ctx, id, dedupeIDs(studentIDs))
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("rombel_id", id).Int("added", added).Msg("rombel members added")
	return added, nil
}

func (s *RombelService) RemoveMembers(ctx context.Context, id int, studentIDs []int) (int, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.repo.RemoveMembers(ctx, id, dedupeIDs(studentIDs))
}

func dedupeIDs(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
