package repository

import (
	"akaraka_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type TierRepository struct {
	DB *gorm.DB
}

func NewTierRepository(db *gorm.DB) *TierRepository {
	return &TierRepository{DB: db}
}

// ListAscending returns the full tier table ordered by threshold; tier
// resolution picks the last qualifying row.
func (r *TierRepository) ListAscending() ([]model.Tier, error) {
	var tiers []model.Tier
	err := r.DB.Order("min_xp ASC").Find(&tiers).Error
	return tiers, err
}

type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) ListActive() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Where("is_active = ?", true).Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) ListEarned(userID uint) ([]model.UserBadge, error) {
	var earned []model.UserBadge
	err := r.DB.Preload("Badge").Where("user_id = ?", userID).Find(&earned).Error
	return earned, err
}

func (r *BadgeRepository) HasBadge(userID, badgeID uint) (bool, error) {
	var badge model.UserBadge
	err := r.DB.Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&badge).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *BadgeRepository) Award(userID, badgeID uint) error {
	return r.DB.Create(&model.UserBadge{UserID: userID, BadgeID: badgeID}).Error
}

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

func (r *AchievementRepository) ListByUser(userID uint, limit int) ([]model.Achievement, error) {
	var achievements []model.Achievement
	query := r.DB.Where("user_id = ?", userID).Order("achieved_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&achievements).Error
	return achievements, err
}
