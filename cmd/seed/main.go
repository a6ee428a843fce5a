package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stemsi/sekolah-backend/internal/config"
	"github.com/stemsi/sekolah-backend/internal/database"
	"github.com/stemsi/sekolah-backend/internal/logger"
	"github.com/stemsi/sekolah-backend/internal/model"
	"github.com/stemsi/sekolah-backend/internal/repository"
	"github.com/stemsi/sekolah-backend/internal/service"
)

var names = []string{
	"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
	"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
	"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
	"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
	"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
	"Bagas Saputra", "Citra Kirana", "Dimas Anggara", "Elisa Novita", "Fikri Maulana",
	"Gali Rakasiwi", "Hani Hanifah", "Iqbal Ramadhan", "Jasmine Azzahra", "Kevin Sanjaya",
}

// seeder creates one school with an active year, a major, a class and a
// rombel filled with students. Every step reuses rows left by an earlier run.
type seeder struct {
	pool     *pgxpool.Pool
	schools  *service.SchoolService
	years    *service.AcademicYearService
	majors   service.MajorService
	classes  *service.ClassService
	rombels  *service.RombelService
	students *service.StudentService

	majorRepo   repository.MajorRepository
	classRepo   repository.ClassRepository
	yearRepo    repository.AcademicYearRepository
	rombelRepo  repository.RombelRepository
	studentRepo repository.StudentRepository

	log zerolog.Logger
}

func main() {
	var (
		npsn  string
		count int
	)
	flag.StringVar(&npsn, "npsn", "20100001", "NPSN of the school to seed")
	flag.IntVar(&count, "students", 30, "Number of students to create")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if count > len(names) {
		count = len(names)
	}

	s := &seeder{
		pool:        pool,
		majorRepo:   repository.NewMajorRepository(pool),
		classRepo:   repository.NewClassRepository(pool),
		yearRepo:    repository.NewAcademicYearRepository(pool),
		rombelRepo:  repository.NewRombelRepository(pool),
		studentRepo: repository.NewStudentRepository(pool),
		log:         log,
	}
	s.schools = service.NewSchoolService(repository.NewSchoolRepository(pool), nil, log)
	s.years = service.NewAcademicYearService(s.yearRepo, nil, log)
	s.majors = service.NewMajorService(s.majorRepo)
	s.classes = service.NewClassService(s.classRepo, nil)
	s.rombels = service.NewRombelService(s.rombelRepo, nil, log)
	s.students = service.NewStudentService(s.studentRepo, nil, log)

	if err := s.run(ctx, npsn, count); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
}

func (s *seeder) run(ctx context.Context, npsn string, count int) error {
	fmt.Printf("=== Seeding school %s ===\n", npsn)

	schoolID, err := s.school(ctx, npsn)
	if err != nil {
		return fmt.Errorf("school: %w", err)
	}
	yearID, err := s.activeYear(ctx, schoolID)
	if err != nil {
		return fmt.Errorf("academic year: %w", err)
	}
	majorID, err := s.major(ctx, schoolID, "TKJ", "Teknik Komputer dan Jaringan")
	if err != nil {
		return fmt.Errorf("major: %w", err)
	}
	class, err := s.class(ctx, schoolID, 12, majorID, 2)
	if err != nil {
		return fmt.Errorf("class: %w", err)
	}
	rombelID, err := s.rombel(ctx, yearID, class)
	if err != nil {
		return fmt.Errorf("rombel: %w", err)
	}

	var ids []int
	for i := 0; i < count; i++ {
		req := &model.StudentRequest{
			SchoolID: schoolID,
			NIS:      fmt.Sprintf("%05d", i+1),
			NISN:     fmt.Sprintf("%s%02d", npsn, i+1),
			Name:     names[i],
			Gender:   model.GenderMale,
			Religion: model.ReligionIslam,
			ClassID:  &class.ID,
		}
		if i%2 != 0 {
			req.Gender = model.GenderFemale
		}

		existing, err := s.studentRepo.GetByNISN(ctx, req.NISN)
		if err == nil {
			ids = append(ids, existing.ID)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("lookup student %s: %w", req.NISN, err)
		}

		student, err := s.students.Create(ctx, req)
		if err != nil {
			s.log.Warn().Err(err).Str("nisn", req.NISN).Msg("Skipping student")
			continue
		}
		ids = append(ids, student.ID)
	}

	added, err := s.rombels.AddMembers(ctx, rombelID, ids)
	if err != nil {
		return fmt.Errorf("rombel members: %w", err)
	}

	fmt.Printf("\nSeed completed! %d students in %s, %d newly placed in the rombel.\n", len(ids), class.Label(), added)
	return nil
}

func (s *seeder) school(ctx context.Context, npsn string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, "SELECT id FROM schools WHERE npsn = $1", npsn).Scan(&id)
	if err == nil {
		fmt.Printf("Found existing school with ID: %d\n", id)
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	school, err := s.schools.Create(ctx, &model.SchoolRequest{
		NPSN:    npsn,
		Name:    "SMK Negeri Contoh",
		Address: "Jl. Pendidikan No. 1",
	})
	if err != nil {
		return 0, err
	}
	fmt.Printf("Created school with ID: %d\n", school.ID)
	return school.ID, nil
}

func (s *seeder) activeYear(ctx context.Context, schoolID int) (int, error) {
	years, err := s.yearRepo.List(ctx, schoolID)
	if err != nil {
		return 0, err
	}
	for _, y := range years {
		if y.IsActive {
			return y.ID, nil
		}
	}

	start := time.Date(time.Now().Year(), time.July, 1, 0, 0, 0, 0, time.UTC)
	year, err := s.years.Create(ctx, &model.AcademicYearRequest{
		SchoolID:  schoolID,
		Name:      fmt.Sprintf("%d/%d", start.Year(), start.Year()+1),
		StartDate: start,
		EndDate:   start.AddDate(1, 0, -1),
	})
	if err != nil {
		return 0, err
	}
	if _, err := s.years.Activate(ctx, year.ID); err != nil {
		return 0, err
	}
	fmt.Printf("Created and activated academic year %s\n", year.Name)
	return year.ID, nil
}

func (s *seeder) major(ctx context.Context, schoolID int, code, name string) (int, error) {
	m, err := s.majorRepo.GetByCode(ctx, schoolID, code)
	if err == nil {
		return m.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, err
	}
	m, err = s.majors.CreateMajor(ctx, &model.MajorRequest{SchoolID: schoolID, Code: code, LongName: name})
	if err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (s *seeder) class(ctx context.Context, schoolID, grade, majorID, group int) (*model.Class, error) {
	classes, err := s.classRepo.List(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	for i := range classes {
		c := classes[i]
		if c.GradeLevel == grade && c.GroupNumber == group && c.MajorID != nil && *c.MajorID == majorID {
			fmt.Printf("Found existing class %s\n", c.Label())
			return &c, nil
		}
	}

	c, err := s.classes.Create(ctx, &model.ClassRequest{
		SchoolID:    schoolID,
		GradeLevel:  grade,
		MajorID:     &majorID,
		GroupNumber: group,
	})
	if err != nil {
		return nil, err
	}
	fmt.Printf("Created class %s\n", c.Label())
	return c, nil
}

func (s *seeder) rombel(ctx context.Context, yearID int, class *model.Class) (int, error) {
	rombels, err := s.rombelRepo.List(ctx, yearID, class.ID)
	if err != nil {
		return 0, err
	}
	if len(rombels) > 0 {
		return rombels[0].ID, nil
	}
	rb, err := s.rombels.Create(ctx, &model.RombelRequest{
		ClassID:        class.ID,
		AcademicYearID: yearID,
		Name:           class.Label(),
	})
	if err != nil {
		return 0, err
	}
	return rb.ID, nil
}
