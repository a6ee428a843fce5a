package service

import (
	"context"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

// TeacherService handles teacher business logic.
type TeacherService struct {
	repo  repository.TeacherRepository
	stats StatsInvalidator
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(repo repository.TeacherRepository, stats StatsInvalidator) *TeacherService {
	return &TeacherService{repo: repo, stats: stats}
}

func (s *TeacherService) List(ctx context.Context, q model.ListQuery) ([]model.Teacher, int, error) {
	q.Normalize()
	return s.repo.ListPaginated(ctx, q)
}

func (s *TeacherService) GetByID(ctx context.Context, id int) (*model.Teacher, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TeacherService) Create(ctx context.Context, req *model.TeacherRequest) (*model.Teacher, error) {
	t := teacherFromRequest(req)
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	invalidateStats(ctx, s.stats)
	return t, nil
}

func (s *TeacherService) Update(ctx context.Context, id int, req *model.TeacherRequest) (*model.Teacher, error) {
	t := teacherFromRequest(req)
	t.ID = id
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TeacherService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateStats(ctx, s.stats)
	return nil
}

func teacherFromRequest(req *model.TeacherRequest) *model.Teacher {
	return &model.Teacher{
		SchoolID:     req.SchoolID,
		UserID:       req.UserID,
		NIP:          req.NIP,
		NUPTK:        req.NUPTK,
		Name:         req.Name,
		Gender:       req.Gender,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
	}
}
