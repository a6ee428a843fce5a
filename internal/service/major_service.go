package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

type MajorService interface {
	GetAllMajors(ctx context.Context, schoolID int) ([]*model.Major, error)
	GetMajor(ctx context.Context, id int) (*model.Major, error)
	CreateMajor(ctx context.Context, req *model.MajorRequest) (*model.Major, error)
	UpdateMajor(ctx context.Context, id int, req *model.MajorRequest) (*model.Major, error)
	DeleteMajor(ctx context.Context, id int) error
}

type majorService struct {
	majorRepo repository.MajorRepository
}

func NewMajorService(majorRepo repository.MajorRepository) MajorService {
	return &majorService{majorRepo: majorRepo}
}

func (s *majorService) GetAllMajors(ctx context.Context, schoolID int) ([]*model.Major, error) {
	return s.majorRepo.GetAll(ctx, schoolID)
}

func (s *majorService) GetMajor(ctx context.Context, id int) (*model.Major, error) {
	return s.majorRepo.GetByID(ctx, id)
}

func (s *majorService) CreateMajor(ctx context.Context, req *model.MajorRequest) (*model.Major, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := s.ensureCodeFree(ctx, req.SchoolID, code, 0); err != nil {
		return nil, err
	}

	major := &model.Major{
		SchoolID: req.SchoolID,
		Code:     code,
		LongName: req.LongName,
	}
	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

func (s *majorService) UpdateMajor(ctx context.Context, id int, req *model.MajorRequest) (*model.Major, error) {
	major, err := s.majorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code != major.Code || req.SchoolID != major.SchoolID {
		if err := s.ensureCodeFree(ctx, req.SchoolID, code, id); err != nil {
			return nil, err
		}
	}

	major.SchoolID = req.SchoolID
	major.Code = code
	major.LongName = req.LongName
	if err := s.majorRepo.Update(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

// DeleteMajor removes a major. Classes referencing it fail the delete.
func (s *majorService) DeleteMajor(ctx context.Context, id int) error {
	return s.majorRepo.Delete(ctx, id)
}

func (s *majorService) ensureCodeFree(ctx context.Context, schoolID int, code string, selfID int) error {
	existing, err := s.majorRepo.GetByCode(ctx, schoolID, code)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return fmt.Errorf("major code %q: %w", code, repository.ErrDuplicate)
	}
	return nil
}
