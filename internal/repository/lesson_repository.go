package repository

import (
	"akaraka_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) FindBySlug(courseID uint, slug string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("course_id = ? AND slug = ?", courseID, slug).First(&lesson).Error
	return &lesson, err
}

func (r *LessonRepository) ListByCourse(courseID uint, publishedOnly bool) ([]model.Lesson, error) {
	var lessons []model.Lesson
	query := r.DB.Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	err := query.Order("`order` ASC").Find(&lessons).Error
	return lessons, err
}

// CountByCourse counts every lesson of the course, the denominator used by
// progress recomputation.
func (r *LessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *LessonRepository) CountByCourses(courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id IN ?", courseIDs).Count(&count).Error
	return count, err
}

func (r *LessonRepository) ListVocabulary(lessonID uint) ([]model.Vocabulary, error) {
	var vocab []model.Vocabulary
	err := r.DB.Where("lesson_id = ?", lessonID).Order("`order` ASC").Find(&vocab).Error
	return vocab, err
}

// ListMissingTranslations returns lessons that have English content but no
// Dari content yet.
func (r *LessonRepository) ListMissingTranslations() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("content_english <> '' AND content_dari = ''").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindVocabulary(id uint) (*model.Vocabulary, error) {
	var vocab model.Vocabulary
	err := r.DB.First(&vocab, id).Error
	return &vocab, err
}

func (r *LessonRepository) UpdateVocabulary(vocab *model.Vocabulary) error {
	return r.DB.Save(vocab).Error
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}
