package repository

import (
	"akaraka_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) FindPublishedByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.Where("id = ? AND is_published = ?", id, true).First(&exercise).Error
	return &exercise, err
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, id).Error
	return &exercise, err
}

func (r *ExerciseRepository) ListPublished(kind model.ExerciseKind, page, limit int) ([]model.Exercise, int64, error) {
	var exercises []model.Exercise
	var total int64

	query := r.DB.Model(&model.Exercise{}).Where("is_published = ?", true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&exercises).Error
	return exercises, total, err
}

func (r *ExerciseRepository) ListByLesson(lessonID uint) ([]model.ExerciseLesson, error) {
	var links []model.ExerciseLesson
	err := r.DB.Preload("Exercise").
		Where("lesson_id = ?", lessonID).
		Order("`order` ASC").
		Find(&links).Error
	return links, err
}

// Answer-key loaders. Each returns the kind-specific child records ordered by
// their configured position.

func (r *ExerciseRepository) LoadChoiceQuestions(exerciseID uint) ([]model.ChoiceQuestion, error) {
	var questions []model.ChoiceQuestion
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("choice_options.`order` ASC")
	}).Where("exercise_id = ?", exerciseID).Order("`order` ASC").Find(&questions).Error
	return questions, err
}

func (r *ExerciseRepository) LoadMatchingPairs(exerciseID uint) ([]model.MatchingPair, error) {
	var pairs []model.MatchingPair
	err := r.DB.Where("exercise_id = ?", exerciseID).Order("`order` ASC").Find(&pairs).Error
	return pairs, err
}

func (r *ExerciseRepository) LoadTypingPrompts(exerciseID uint) ([]model.TypingPrompt, error) {
	var prompts []model.TypingPrompt
	err := r.DB.Where("exercise_id = ?", exerciseID).Order("`order` ASC").Find(&prompts).Error
	return prompts, err
}

func (r *ExerciseRepository) LoadListeningQuestions(exerciseID uint) ([]model.ListeningQuestion, error) {
	var questions []model.ListeningQuestion
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("listening_options.`order` ASC")
	}).Where("exercise_id = ?", exerciseID).Order("`order` ASC").Find(&questions).Error
	return questions, err
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

func (r *ExerciseRepository) Update(exercise *model.Exercise) error {
	return r.DB.Save(exercise).Error
}

func (r *ExerciseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Exercise{}, id).Error
}

func (r *ExerciseRepository) LinkToLesson(link *model.ExerciseLesson) error {
	return r.DB.Create(link).Error
}
