package repository

import (
	"akaraka_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate returns the lesson progress row for (user, lesson), creating it
// on first visit.
func (r *ProgressRepository) GetOrCreate(userID, lessonID uint) (*model.LessonProgress, bool, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err == nil {
		return &progress, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	progress = model.LessonProgress{
		UserID:       userID,
		LessonID:     lessonID,
		LastAccessed: time.Now(),
	}
	if err := r.DB.Create(&progress).Error; err != nil {
		return nil, false, err
	}
	return &progress, true, nil
}

func (r *ProgressRepository) Update(progress *model.LessonProgress) error {
	return r.DB.Save(progress).Error
}

// CountCompletedInCourse counts the user's completed lessons within one course.
func (r *ProgressRepository) CountCompletedInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.is_completed = ? AND lessons.course_id = ?",
			userID, true, courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	return &progress, err
}
