package model

import "time"

type BadgeType string

const (
	BadgeStreak    BadgeType = "streak"
	BadgeXP        BadgeType = "xp"
	BadgeMilestone BadgeType = "milestone"
	BadgeSpecial   BadgeType = "special"
)

// swagger:model Badge
type Badge struct {
	BaseModel
	Name             string    `gorm:"size:255;unique;not null" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	Icon             string    `gorm:"size:255" json:"icon"`
	BadgeType        BadgeType `gorm:"size:20;default:'milestone'" json:"badgeType"`
	RequirementValue int       `gorm:"default:0" json:"requirementValue"`
	XPReward         int       `gorm:"default:0" json:"xpReward"`
	IsActive         bool      `gorm:"default:true" json:"isActive"`
}

func (Badge) TableName() string {
	return "badges"
}

type UserBadge struct {
	BaseModel
	UserID  uint `gorm:"not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID uint `gorm:"not null;uniqueIndex:idx_user_badge" json:"badgeId"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

type AchievementType string

const (
	AchFirstLesson     AchievementType = "first_lesson"
	AchCourseComplete  AchievementType = "course_complete"
	AchStreakMilestone AchievementType = "streak_milestone"
	AchXPMilestone     AchievementType = "xp_milestone"
	AchBadgeEarned     AchievementType = "badge_earned"
)

// Achievement is the user-visible milestone feed.
// swagger:model Achievement
type Achievement struct {
	BaseModel
	UserID      uint            `gorm:"index;not null" json:"userId"`
	Type        AchievementType `gorm:"size:30;not null" json:"type"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	XPEarned    int             `gorm:"default:0" json:"xpEarned"`
	AchievedAt  time.Time       `json:"achievedAt"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// Tier is a reward bracket keyed by a minimum XP threshold. Rows are read
// ordered ascending by MinXP; the last qualifying row wins.
// swagger:model Tier
type Tier struct {
	BaseModel
	Name        string `gorm:"size:255;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	MinXP       int    `gorm:"unique;not null" json:"minXp"`
	Icon        string `gorm:"size:255" json:"icon"`
}

func (Tier) TableName() string {
	return "tiers"
}
