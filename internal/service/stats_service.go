package service

import (
	"akaraka_backend/internal/repository"
)

type StatsService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	PaymentRepo    *repository.PaymentRepository
}

func NewStatsService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	paymentRepo *repository.PaymentRepository,
) *StatsService {
	return &StatsService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		PaymentRepo:    paymentRepo,
	}
}

// PlatformStats is the admin overview block.
type PlatformStats struct {
	Users       int64   `json:"users"`
	Courses     int64   `json:"courses"`
	Enrollments int64   `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
}

func (s *StatsService) Overview() (*PlatformStats, error) {
	users, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.Count()
	if err != nil {
		return nil, err
	}
	enrollments, err := s.EnrollmentRepo.Count()
	if err != nil {
		return nil, err
	}
	revenue, err := s.PaymentRepo.TotalRevenue()
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		Users:       users,
		Courses:     courses,
		Enrollments: enrollments,
		Revenue:     revenue,
	}, nil
}
