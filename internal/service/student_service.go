package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// StudentService handles student business logic.
type StudentService struct {
	studentRepo repository.StudentRepository
	stats       StatsInvalidator
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo repository.StudentRepository, stats StatsInvalidator, log zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		stats:       stats,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetByNISN retrieves a student by their NISN.
func (s *StudentService) GetByNISN(ctx context.Context, nisn string) (*model.Student, error) {
	return s.studentRepo.GetByNISN(ctx, strings.TrimSpace(nisn))
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents retrieves a page of students matching q.
func (s *StudentService) ListStudents(ctx context.Context, q model.ListQuery) ([]model.Student, int, error) {
	q.Normalize()
	return s.studentRepo.ListPaginated(ctx, q)
}

// Create inserts a new student.
func (s *StudentService) Create(ctx context.Context, req *model.StudentRequest) (*model.Student, error) {
	student := studentFromRequest(req)
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	s.log.Info().Int("student_id", student.ID).Str("nisn", student.NISN).Msg("student created")
	invalidateStats(ctx, s.stats)
	return student, nil
}

// Update modifies a student's details.
func (s *StudentService) Update(ctx context.Context, id int, req *model.StudentRequest) (*model.Student, error) {
	student := studentFromRequest(req)
	student.ID = id
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func studentFromRequest(req *model.StudentRequest) *model.Student {
	return &model.Student{
		SchoolID: req.SchoolID,
		UserID:   req.UserID,
		NIS:      strings.TrimSpace(req.NIS),
		NISN:     strings.TrimSpace(req.NISN),
		Name:     req.Name,
		Gender:   req.Gender,
		Religion: req.Religion,
		ClassID:  req.ClassID,
	}
}
