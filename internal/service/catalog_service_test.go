package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
)

type fakeMajorRepo struct {
	majors  map[int]*model.Major
	created int
}

func (f *fakeMajorRepo) GetAll(_ context.Context, schoolID int) ([]*model.Major, error) {
	out := []*model.Major{}
	for _, m := range f.majors {
		if schoolID == 0 || m.SchoolID == schoolID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMajorRepo) GetByID(_ context.Context, id int) (*model.Major, error) {
	if m, ok := f.majors[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMajorRepo) GetByCode(_ context.Context, schoolID int, code string) (*model.Major, error) {
	for _, m := range f.majors {
		if m.SchoolID == schoolID && m.Code == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMajorRepo) Create(_ context.Context, m *model.Major) error {
	f.created++
	m.ID = 100 + f.created
	f.majors[m.ID] = m
	return nil
}

func (f *fakeMajorRepo) Update(_ context.Context, m *model.Major) error {
	f.majors[m.ID] = m
	return nil
}

func (f *fakeMajorRepo) Delete(_ context.Context, id int) error {
	delete(f.majors, id)
	return nil
}

func TestMajorCodeIsUniquePerSchool(t *testing.T) {
	repo := &fakeMajorRepo{majors: map[int]*model.Major{
		1: {ID: 1, SchoolID: 1, Code: "RPL", LongName: "Rekayasa Perangkat Lunak"},
		2: {ID: 2, SchoolID: 1, Code: "TKJ", LongName: "Teknik Komputer dan Jaringan"},
	}}
	svc := NewMajorService(repo)
	ctx := context.Background()

	_, err := svc.CreateMajor(ctx, &model.MajorRequest{SchoolID: 1, Code: " rpl ", LongName: "Duplikat"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	m, err := svc.CreateMajor(ctx, &model.MajorRequest{SchoolID: 2, Code: "rpl", LongName: "Rekayasa Perangkat Lunak"})
	require.NoError(t, err)
	assert.Equal(t, "RPL", m.Code)

	_, err = svc.UpdateMajor(ctx, 2, &model.MajorRequest{SchoolID: 1, Code: "RPL", LongName: "Ganti"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	updated, err := svc.UpdateMajor(ctx, 1, &model.MajorRequest{SchoolID: 1, Code: "RPL", LongName: "RPL Baru"})
	require.NoError(t, err)
	assert.Equal(t, "RPL Baru", updated.LongName)

	_, err = svc.UpdateMajor(ctx, 99, &model.MajorRequest{SchoolID: 1, Code: "X", LongName: "Tidak ada"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDedupeIDs(t *testing.T) {
	in := []int{5, 3, 5, 1, 3}
	assert.Equal(t, []int{1, 3, 5}, dedupeIDs(in))
	assert.Equal(t, []int{5, 3, 5, 1, 3}, in)
}
