package model

import "time"

// swagger:model SubscriptionPlan
type SubscriptionPlan struct {
	BaseModel
	Name              SubscriptionTier `gorm:"size:100;unique;not null" json:"name"`
	Description       string           `gorm:"type:text" json:"description"`
	PriceMonthly      float64          `gorm:"default:0" json:"priceMonthly"`
	PriceYearly       float64          `gorm:"default:0" json:"priceYearly"`
	MaxCourses        int              `gorm:"default:-1" json:"maxCourses"` // -1 is unlimited
	CourseAccessLevel CourseLevel      `gorm:"size:20;default:'beginner'" json:"courseAccessLevel"`
	IsActive          bool             `gorm:"default:true" json:"isActive"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type SubscriptionStatus string

const (
	SubActive    SubscriptionStatus = "active"
	SubCancelled SubscriptionStatus = "cancelled"
	SubExpired   SubscriptionStatus = "expired"
)

// swagger:model UserSubscription
type UserSubscription struct {
	BaseModel
	UserID               uint               `gorm:"unique;not null" json:"userId"`
	PlanID               *uint              `json:"planId"`
	Status               SubscriptionStatus `gorm:"size:20;default:'active'" json:"status"`
	StartDate            time.Time          `json:"startDate"`
	EndDate              time.Time          `json:"endDate"`
	AutoRenew            bool               `gorm:"default:true" json:"autoRenew"`
	StripeCustomerID     string             `gorm:"size:255" json:"-"`
	StripeSubscriptionID string             `gorm:"size:255" json:"-"`

	Plan *SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}

func (s *UserSubscription) IsActive() bool {
	return s.Status == SubActive && s.EndDate.After(time.Now())
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// swagger:model Payment
type Payment struct {
	BaseModel
	UserID         uint          `gorm:"index;not null" json:"userId"`
	PlanID         *uint         `json:"planId"`
	Amount         float64       `gorm:"not null" json:"amount"`
	Currency       string        `gorm:"size:3;default:'USD'" json:"currency"`
	Method         string        `gorm:"size:20;default:'stripe'" json:"method"`
	Status         PaymentStatus `gorm:"size:20;default:'pending'" json:"status"`
	TransactionID  string        `gorm:"size:255;unique" json:"transactionId"`
	StripeChargeID string        `gorm:"size:255" json:"-"`
	PaidAt         *time.Time    `json:"paidAt"`
}

func (Payment) TableName() string {
	return "payments"
}
