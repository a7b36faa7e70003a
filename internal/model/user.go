package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

type CourseLevel string

const (
	Beginner     CourseLevel = "beginner"
	Intermediate CourseLevel = "intermediate"
	Advanced     CourseLevel = "advanced"
)

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPro     SubscriptionTier = "pro"
	TierPremium SubscriptionTier = "premium"
)

// swagger:model User
type User struct {
	BaseModel
	Name                string           `gorm:"size:100;not null" json:"name"`
	Email               string           `gorm:"size:100;unique;not null" json:"email"`
	Password            string           `gorm:"size:100;not null" json:"-"`
	Role                UserRole         `gorm:"size:20;default:'student'" json:"role"`
	Level               CourseLevel      `gorm:"size:20;default:'beginner'" json:"level"`
	Bio                 string           `gorm:"size:500" json:"bio"`
	Avatar              string           `gorm:"size:255" json:"avatar"`
	Language            string           `gorm:"size:10;default:'en'" json:"language"` // UI language, en or dari
	TotalXP             int              `gorm:"default:0;index" json:"totalXp"`
	CurrentStreak       int              `gorm:"default:0" json:"currentStreak"`
	LongestStreak       int              `gorm:"default:0" json:"longestStreak"`
	LastActivity        *time.Time       `json:"lastActivity"`
	EmailVerified       bool             `gorm:"default:false" json:"emailVerified"`
	SubscriptionTier    SubscriptionTier `gorm:"size:20;default:'free'" json:"subscriptionTier"`
	SubscriptionExpires *time.Time       `json:"subscriptionExpires"`
	Disabled            bool             `gorm:"default:false" json:"disabled"`
}

func (User) TableName() string {
	return "users"
}

// IsPremium reports whether the user has a paid subscription that has not
// expired. The service layer is responsible for downgrading expired users.
func (u *User) IsPremium() bool {
	if u.SubscriptionTier == TierFree {
		return false
	}
	if u.SubscriptionExpires != nil && u.SubscriptionExpires.Before(time.Now()) {
		return false
	}
	return true
}

// CanAccessLevel mirrors the course gating rules: beginner content is open to
// everyone, higher levels require either the matching user level or premium.
func (u *User) CanAccessLevel(level CourseLevel) bool {
	switch level {
	case Beginner:
		return true
	case Intermediate:
		if u.Level == Intermediate || u.Level == Advanced {
			return true
		}
	case Advanced:
		if u.Level == Advanced {
			return true
		}
	}
	return u.IsPremium()
}
