package service

import (
	"errors"
	"math"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo        *repository.UserRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	ProgressRepo    *repository.ProgressRepository
	LessonRepo      *repository.LessonRepository
	ResponseRepo    *repository.ResponseRepository
	CertificateRepo *repository.CertificateRepository
	Gamification    *GamificationService
}

func NewUserService(
	userRepo *repository.UserRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	responseRepo *repository.ResponseRepository,
	certificateRepo *repository.CertificateRepository,
	gamification *GamificationService,
) *UserService {
	return &UserService{
		UserRepo:        userRepo,
		EnrollmentRepo:  enrollmentRepo,
		ProgressRepo:    progressRepo,
		LessonRepo:      lessonRepo,
		ResponseRepo:    responseRepo,
		CertificateRepo: certificateRepo,
		Gamification:    gamification,
	}
}

type UpdateProfileInput struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Bio      string `json:"bio" binding:"omitempty,max=500"`
	Avatar   string `json:"avatar"`
	Language string `json:"language" binding:"omitempty,oneof=en dari"`
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Language != "" {
		user.Language = input.Language
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

type Dashboard struct {
	User               *model.User              `json:"user"`
	Enrollments        []model.CourseEnrollment `json:"enrollments"`
	OverallProgress    int                      `json:"overallProgress"`
	LessonsCompleted   int64                    `json:"lessonsCompleted"`
	LessonsTotal       int64                    `json:"lessonsTotal"`
	ExercisesPassed    int64                    `json:"exercisesPassed"`
	Tier               *TierStatus              `json:"tier"`
	RecentAchievements []model.Achievement      `json:"recentAchievements"`
	Badges             []model.UserBadge        `json:"badges"`
	Certificates       []model.Certificate      `json:"certificates"`
}

// Dashboard aggregates everything the home screen shows. Overall progress is
// the mean of the user's enrollment percentages, zero when not enrolled
// anywhere.
func (s *UserService) Dashboard(userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	overall := 0
	if len(enrollments) > 0 {
		sum := 0
		for _, e := range enrollments {
			sum += e.ProgressPercentage
		}
		overall = int(math.Round(float64(sum) / float64(len(enrollments))))
	}

	lessonsCompleted, err := s.ProgressRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	courseIDs, err := s.EnrollmentRepo.CourseIDsByUser(userID)
	if err != nil {
		return nil, err
	}
	lessonsTotal, err := s.LessonRepo.CountByCourses(courseIDs)
	if err != nil {
		return nil, err
	}
	exercisesPassed, err := s.ResponseRepo.CountPassedByUser(userID)
	if err != nil {
		return nil, err
	}
	tier, err := s.Gamification.TierStatus(userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.Gamification.RecentAchievements(userID, 5)
	if err != nil {
		return nil, err
	}
	badges, err := s.Gamification.EarnedBadges(userID)
	if err != nil {
		return nil, err
	}
	certificates, err := s.CertificateRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	s.Gamification.TouchActivity(userID)
	return &Dashboard{
		User:               user,
		Enrollments:        enrollments,
		OverallProgress:    overall,
		LessonsCompleted:   lessonsCompleted,
		LessonsTotal:       lessonsTotal,
		ExercisesPassed:    exercisesPassed,
		Tier:               tier,
		RecentAchievements: achievements,
		Badges:             badges,
		Certificates:       certificates,
	}, nil
}
