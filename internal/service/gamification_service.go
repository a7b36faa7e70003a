package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"akaraka_backend/internal/model"
	"akaraka_backend/internal/repository"
	"akaraka_backend/pkg/logger"
	"akaraka_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardCacheKey = "leaderboard:top:%d"
	leaderboardCacheTTL = 60 * time.Second
)

type GamificationService struct {
	UserRepo        *repository.UserRepository
	TierRepo        *repository.TierRepository
	BadgeRepo       *repository.BadgeRepository
	AchievementRepo *repository.AchievementRepository
	Redis           *redis.Client
}

func NewGamificationService(
	userRepo *repository.UserRepository,
	tierRepo *repository.TierRepository,
	badgeRepo *repository.BadgeRepository,
	achievementRepo *repository.AchievementRepository,
	rdb *redis.Client,
) *GamificationService {
	return &GamificationService{
		UserRepo:        userRepo,
		TierRepo:        tierRepo,
		BadgeRepo:       badgeRepo,
		AchievementRepo: achievementRepo,
		Redis:           rdb,
	}
}

// AddXP credits XP atomically at the database. Amounts <= 0 are ignored so
// failed attempts never touch the ledger.
func (s *GamificationService) AddXP(userID uint, amount int) error {
	if amount <= 0 {
		return nil
	}
	if err := s.UserRepo.AddXP(userID, amount); err != nil {
		return err
	}
	monitoring.XPGranted.Add(float64(amount))
	return nil
}

// UpdateStreak advances the user's daily streak and stamps the activity
// timestamp. Elapsed whole days since the last qualifying activity decide the
// outcome: 0 is a same-day no-op, 1 extends the streak, more than 1 resets it.
func (s *GamificationService) UpdateStreak(userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	now := time.Now()
	switch {
	case user.LastActivity == nil:
		user.CurrentStreak = 1
	default:
		days := int(now.Sub(*user.LastActivity).Hours() / 24)
		switch {
		case days == 1:
			user.CurrentStreak++
		case days > 1:
			user.CurrentStreak = 1
		}
	}
	if user.CurrentStreak > user.LongestStreak {
		user.LongestStreak = user.CurrentStreak
	}
	user.LastActivity = &now
	return s.UserRepo.Update(user)
}

// TouchActivity stamps LastActivity without evaluating the streak. Used by
// read-only traffic so browsing keeps a streak alive but never grows it.
func (s *GamificationService) TouchActivity(userID uint) {
	if err := s.UserRepo.UpdateLastActivity(userID, time.Now()); err != nil {
		logger.Log.Warn("failed to stamp user activity", zap.Uint("userId", userID), zap.Error(err))
	}
}

// ResolveTier picks the highest tier whose threshold the XP total meets, plus
// the next tier up and the XP gap to it. Tiers must arrive ordered ascending
// by MinXP. Returns a nil current tier when no threshold qualifies.
func ResolveTier(tiers []model.Tier, totalXP int) (current, next *model.Tier, xpToNext int) {
	for i := range tiers {
		if totalXP >= tiers[i].MinXP {
			current = &tiers[i]
		} else {
			next = &tiers[i]
			break
		}
	}
	if next != nil {
		xpToNext = next.MinXP - totalXP
	}
	return current, next, xpToNext
}

type TierStatus struct {
	CurrentTier *model.Tier  `json:"currentTier"`
	NextTier    *model.Tier  `json:"nextTier"`
	XPToNext    int          `json:"xpToNext"`
	TotalXP     int          `json:"totalXp"`
	Rank        int64        `json:"rank"`
	AllTiers    []model.Tier `json:"allTiers"`
}

// TierStatus resolves the user's tier and global rank in one shot.
func (s *GamificationService) TierStatus(userID uint) (*TierStatus, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.TierRepo.ListAscending()
	if err != nil {
		return nil, err
	}
	rank, err := s.Rank(user.TotalXP)
	if err != nil {
		return nil, err
	}

	current, next, xpToNext := ResolveTier(tiers, user.TotalXP)
	return &TierStatus{
		CurrentTier: current,
		NextTier:    next,
		XPToNext:    xpToNext,
		TotalXP:     user.TotalXP,
		Rank:        rank,
		AllTiers:    tiers,
	}, nil
}

// Rank is 1-based: the number of users with strictly more XP, plus one. Equal
// totals share a rank.
func (s *GamificationService) Rank(totalXP int) (int64, error) {
	ahead, err := s.UserRepo.CountWithMoreXP(totalXP)
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	TotalXP       int    `json:"totalXp"`
	CurrentStreak int    `json:"currentStreak"`
	Tier          string `json:"tier"`
}

// Leaderboard returns the top users by XP, cached in redis for a minute. The
// displayed rank is positional, so ties show in id order rather than sharing
// a number.
func (s *GamificationService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	cacheKey := fmt.Sprintf(leaderboardCacheKey, limit)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}
	tiers, err := s.TierRepo.ListAscending()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entry := LeaderboardEntry{
			Rank:          i + 1,
			Name:          u.Name,
			Avatar:        u.Avatar,
			TotalXP:       u.TotalXP,
			CurrentStreak: u.CurrentStreak,
		}
		if tier, _, _ := ResolveTier(tiers, u.TotalXP); tier != nil {
			entry.Tier = tier.Name
		}
		entries = append(entries, entry)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
			}
		}
	}
	return entries, nil
}

// CheckBadges awards any streak or XP badges the user now qualifies for. Each
// new badge credits its XP reward and drops an entry in the achievement feed.
// Milestone and special badges are awarded elsewhere, by explicit events.
func (s *GamificationService) CheckBadges(userID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	badges, err := s.BadgeRepo.ListActive()
	if err != nil {
		return err
	}

	for _, badge := range badges {
		qualified := false
		switch badge.BadgeType {
		case model.BadgeStreak:
			qualified = user.CurrentStreak >= badge.RequirementValue
		case model.BadgeXP:
			qualified = user.TotalXP >= badge.RequirementValue
		}
		if !qualified {
			continue
		}

		has, err := s.BadgeRepo.HasBadge(userID, badge.ID)
		if err != nil {
			return err
		}
		if has {
			continue
		}

		if err := s.BadgeRepo.Award(userID, badge.ID); err != nil {
			return err
		}
		if err := s.AddXP(userID, badge.XPReward); err != nil {
			return err
		}
		achievement := &model.Achievement{
			UserID:      userID,
			Type:        model.AchBadgeEarned,
			Title:       badge.Name,
			Description: badge.Description,
			XPEarned:    badge.XPReward,
			AchievedAt:  time.Now(),
		}
		if err := s.AchievementRepo.Create(achievement); err != nil {
			return err
		}
		logger.Log.Info("badge awarded",
			zap.Uint("userId", userID),
			zap.String("badge", badge.Name),
		)
	}
	return nil
}

// RecordAchievement appends to the feed; failures are logged, not surfaced,
// since the feed is decoration around the core flow.
func (s *GamificationService) RecordAchievement(userID uint, achType model.AchievementType, title, description string, xp int) {
	achievement := &model.Achievement{
		UserID:      userID,
		Type:        achType,
		Title:       title,
		Description: description,
		XPEarned:    xp,
		AchievedAt:  time.Now(),
	}
	if err := s.AchievementRepo.Create(achievement); err != nil {
		logger.Log.Warn("failed to record achievement", zap.Uint("userId", userID), zap.Error(err))
	}
}

// EarnedBadges lists the user's badges newest first.
func (s *GamificationService) EarnedBadges(userID uint) ([]model.UserBadge, error) {
	return s.BadgeRepo.ListEarned(userID)
}

func (s *GamificationService) RecentAchievements(userID uint, limit int) ([]model.Achievement, error) {
	return s.AchievementRepo.ListByUser(userID, limit)
}
