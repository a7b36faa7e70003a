package repository

import (
	"akaraka_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create appends one graded attempt. Rows are never updated afterwards.
func (r *ResponseRepository) Create(response *model.ExerciseResponse) error {
	return r.DB.Create(response).Error
}

func (r *ResponseRepository) ListByUser(userID uint, page, limit int) ([]model.ExerciseResponse, int64, error) {
	var responses []model.ExerciseResponse
	var total int64

	query := r.DB.Model(&model.ExerciseResponse{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("completed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&responses).Error
	return responses, total, err
}

func (r *ResponseRepository) CountByUserAndExercise(userID, exerciseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseResponse{}).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Count(&count).Error
	return count, err
}

func (r *ResponseRepository) CountPassedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseResponse{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&count).Error
	return count, err
}
