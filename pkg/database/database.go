package database

import (
	"akaraka_backend/internal/config"
	"akaraka_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	Seed(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.Vocabulary{},
		&model.LessonProgress{},
		&model.CourseEnrollment{},
		&model.Exercise{},
		&model.ExerciseLesson{},
		&model.ChoiceQuestion{},
		&model.ChoiceOption{},
		&model.MatchingPair{},
		&model.TypingPrompt{},
		&model.ListeningQuestion{},
		&model.ListeningOption{},
		&model.ExerciseResponse{},
		&model.Badge{},
		&model.UserBadge{},
		&model.Achievement{},
		&model.Tier{},
		&model.Post{},
		&model.PostLike{},
		&model.Comment{},
		&model.Testimony{},
		&model.Report{},
		&model.SubscriptionPlan{},
		&model.UserSubscription{},
		&model.Payment{},
		&model.Certificate{},
	)
}

// Seed inserts the static reward catalog and subscription plans when the
// tables are empty, so a fresh install is usable without manual setup.
func Seed(db *gorm.DB) {
	var tierCount int64
	db.Model(&model.Tier{}).Count(&tierCount)
	if tierCount == 0 {
		defaultTiers := []model.Tier{
			{Name: "Seed", MinXP: 0, Description: "Everyone starts here"},
			{Name: "Sprout", MinXP: 100, Description: "First steps into English"},
			{Name: "Bloom", MinXP: 500, Description: "Making steady progress"},
			{Name: "Evergreen", MinXP: 2000, Description: "A dedicated learner"},
		}
		for _, t := range defaultTiers {
			db.Create(&t)
		}
	}

	var badgeCount int64
	db.Model(&model.Badge{}).Count(&badgeCount)
	if badgeCount == 0 {
		defaultBadges := []model.Badge{
			{Name: "First Flame", BadgeType: model.BadgeStreak, RequirementValue: 3, XPReward: 10, Description: "3-day streak"},
			{Name: "Week of Fire", BadgeType: model.BadgeStreak, RequirementValue: 7, XPReward: 25, Description: "7-day streak"},
			{Name: "Unstoppable", BadgeType: model.BadgeStreak, RequirementValue: 30, XPReward: 100, Description: "30-day streak"},
			{Name: "Hundred Club", BadgeType: model.BadgeXP, RequirementValue: 100, XPReward: 10, Description: "Earn 100 XP"},
			{Name: "Thousand Club", BadgeType: model.BadgeXP, RequirementValue: 1000, XPReward: 50, Description: "Earn 1000 XP"},
		}
		for _, b := range defaultBadges {
			db.Create(&b)
		}
	}

	var planCount int64
	db.Model(&model.SubscriptionPlan{}).Count(&planCount)
	if planCount == 0 {
		defaultPlans := []model.SubscriptionPlan{
			{Name: model.TierFree, PriceMonthly: 0, PriceYearly: 0, MaxCourses: 3, CourseAccessLevel: model.Beginner, Description: "Beginner courses only"},
			{Name: model.TierPro, PriceMonthly: 4.99, PriceYearly: 49.99, CourseAccessLevel: model.Intermediate, Description: "All beginner and intermediate courses"},
			{Name: model.TierPremium, PriceMonthly: 9.99, PriceYearly: 99.99, CourseAccessLevel: model.Advanced, Description: "Every course, every level"},
		}
		for _, p := range defaultPlans {
			db.Create(&p)
		}
	}
}
