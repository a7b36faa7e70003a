package service

import (
	"errors"
	"math"
	"time"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/internal/util"
	"akaraka_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLessonXP is credited the first time a lesson is marked complete.
const DefaultLessonXP = 10

type ProgressService struct {
	ProgressRepo   *repository.ProgressRepository
	EnrollmentRepo *repository.EnrollmentRepository
	LessonRepo     *repository.LessonRepository
	CourseRepo     *repository.CourseRepository
	Gamification   *GamificationService
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	gamification *GamificationService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		EnrollmentRepo: enrollmentRepo,
		LessonRepo:     lessonRepo,
		CourseRepo:     courseRepo,
		Gamification:   gamification,
	}
}

// VisitLesson records that the user opened a lesson: the progress row is
// created on first visit, attempts and the access timestamp advance on every
// visit. Requires an enrollment in the lesson's course.
func (s *ProgressService) VisitLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, lesson.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	progress, _, err := s.ProgressRepo.GetOrCreate(userID, lessonID)
	if err != nil {
		return nil, err
	}
	progress.Attempts++
	progress.LastAccessed = time.Now()
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	s.Gamification.TouchActivity(userID)
	return progress, nil
}

// CompleteLesson marks a lesson complete for the user. The first completion
// credits XP, advances the streak, and recomputes the course enrollment;
// repeat completions are a no-op. The returned boolean reports whether this
// call completed the lesson.
func (s *ProgressService) CompleteLesson(userID, lessonID uint) (*model.LessonProgress, bool, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, false, err
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, lesson.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrNotEnrolled
		}
		return nil, false, err
	}

	progress, _, err := s.ProgressRepo.GetOrCreate(userID, lessonID)
	if err != nil {
		return nil, false, err
	}
	if progress.IsCompleted {
		return progress, false, nil
	}

	now := time.Now()
	xp := DefaultLessonXP
	progress.IsCompleted = true
	progress.CompletionTime = &now
	progress.XPEarned = xp
	progress.LastAccessed = now
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, false, err
	}

	if err := s.Gamification.AddXP(userID, xp); err != nil {
		return nil, false, err
	}
	if err := s.Gamification.UpdateStreak(userID); err != nil {
		return nil, false, err
	}
	if err := s.Gamification.CheckBadges(userID); err != nil {
		logger.Log.Warn("badge check failed after lesson completion",
			zap.Uint("userId", userID), zap.Error(err))
	}

	if err := s.RecalculateProgress(userID, lesson.CourseID); err != nil {
		return nil, false, err
	}
	return progress, true, nil
}

// RecalculateProgress recomputes the enrollment's denormalized percentage
// from completed lesson counts. A course with no lessons keeps whatever
// percentage is stored, so manual overrides survive until content exists.
// Completion is sticky: once set it survives later recomputation dips.
func (s *ProgressService) RecalculateProgress(userID, courseID uint) error {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotEnrolled
	}
	if err != nil {
		return err
	}

	total, err := s.LessonRepo.CountByCourse(courseID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	completed, err := s.ProgressRepo.CountCompletedInCourse(userID, courseID)
	if err != nil {
		return err
	}

	pct := int(math.Round(float64(completed) / float64(total) * 100))
	return s.applyProgress(enrollment, pct)
}

// SetProgress overrides the enrollment percentage directly, clamped to
// [0,100]. Course completion still follows the same sticky promotion rule.
func (s *ProgressService) SetProgress(userID, courseID uint, pct int) error {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotEnrolled
	}
	if err != nil {
		return err
	}

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return s.applyProgress(enrollment, pct)
}

func (s *ProgressService) applyProgress(enrollment *model.CourseEnrollment, pct int) error {
	enrollment.ProgressPercentage = pct
	if pct >= 100 && !enrollment.IsCompleted {
		now := time.Now()
		enrollment.IsCompleted = true
		enrollment.CompletionDate = &now
		s.Gamification.RecordAchievement(enrollment.UserID, model.AchCourseComplete,
			"Course completed", "", 0)
	}
	return s.EnrollmentRepo.Update(enrollment)
}

// LessonStatus returns the user's progress row for a lesson, or nil when the
// lesson has never been opened.
func (s *ProgressService) LessonStatus(userID, lessonID uint) (*model.LessonProgress, error) {
	progress, err := s.ProgressRepo.FindByUserAndLesson(userID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}
