package repository

import (
	"akaraka_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// AddXP increments total_xp in a single UPDATE so concurrent grading requests
// cannot lose increments to a read-modify-write race.
func (r *UserRepository) AddXP(userID uint, xp int) error {
	if xp <= 0 {
		return nil
	}
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("total_xp", gorm.Expr("total_xp + ?", xp)).
		Error
}

// FindTopByXP orders by XP descending with user id as the stable tie-break.
func (r *UserRepository) FindTopByXP(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("disabled = ?", false).
		Order("total_xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// CountWithMoreXP backs rank computation: rank = count(strictly greater) + 1.
func (r *UserRepository) CountWithMoreXP(xp int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("disabled = ? AND total_xp > ?", false, xp).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) UpdateLastActivity(userID uint, at time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_activity", at).
		Error
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}
