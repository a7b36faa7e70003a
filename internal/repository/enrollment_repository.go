package repository

import (
	"akaraka_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// GetOrCreate enrolls the user if they are not already enrolled. The boolean
// reports whether a new enrollment was created.
func (r *EnrollmentRepository) GetOrCreate(userID, courseID uint) (*model.CourseEnrollment, bool, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == nil {
		return &enrollment, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	enrollment = model.CourseEnrollment{UserID: userID, CourseID: courseID}
	if err := r.DB.Create(&enrollment).Error; err != nil {
		return nil, false, err
	}
	return &enrollment, true, nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.CourseEnrollment, error) {
	var enrollments []model.CourseEnrollment
	err := r.DB.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) Update(enrollment *model.CourseEnrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *EnrollmentRepository) CourseIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.CourseEnrollment{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseEnrollment{}).Count(&count).Error
	return count, err
}
