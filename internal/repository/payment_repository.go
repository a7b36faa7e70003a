package repository

import (
	"akaraka_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) ListActivePlans() ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	err := r.DB.Where("is_active = ?", true).Order("price_monthly ASC").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepository) FindPlanByID(id uint) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&plan).Error
	return &plan, err
}

func (r *SubscriptionRepository) FindByUser(userID uint) (*model.UserSubscription, error) {
	var sub model.UserSubscription
	err := r.DB.Preload("Plan").Where("user_id = ?", userID).First(&sub).Error
	return &sub, err
}

// Upsert creates or replaces the user's single subscription row.
func (r *SubscriptionRepository) Upsert(sub *model.UserSubscription) error {
	var existing model.UserSubscription
	err := r.DB.Where("user_id = ?", sub.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(sub).Error
	}
	if err != nil {
		return err
	}

	sub.ID = existing.ID
	sub.CreatedAt = existing.CreatedAt
	return r.DB.Save(sub).Error
}

func (r *SubscriptionRepository) Update(sub *model.UserSubscription) error {
	return r.DB.Save(sub).Error
}

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.DB.Create(payment).Error
}

func (r *PaymentRepository) ListByUser(userID uint, page, limit int) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	query := r.DB.Model(&model.Payment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&payments).Error
	return payments, total, err
}

func (r *PaymentRepository) TotalRevenue() (float64, error) {
	var total float64
	err := r.DB.Model(&model.Payment{}).
		Where("status = ?", model.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
