package service

import (
	"context"
	"testing"
	"time"

	"akaraka_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setLastActivity(t *testing.T, db *gorm.DB, userID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", userID).
		Update("last_activity", at).Error)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	user := createUser(t, db, "amina", 0)

	require.NoError(t, svc.UpdateStreak(user.ID))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 1, updated.LongestStreak)
	require.NotNil(t, updated.LastActivity)
}

func TestUpdateStreakSameDayNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	user := createUser(t, db, "farid", 0)

	require.NoError(t, svc.UpdateStreak(user.ID))
	require.NoError(t, svc.UpdateStreak(user.ID))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 1, updated.CurrentStreak, "same-day activity never grows the streak")
}

func TestUpdateStreakNextDayIncrements(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	user := createUser(t, db, "laila", 0)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{"current_streak": 3, "longest_streak": 5}).Error)
	setLastActivity(t, db, user.ID, time.Now().Add(-30*time.Hour))

	require.NoError(t, svc.UpdateStreak(user.ID))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 4, updated.CurrentStreak)
	assert.Equal(t, 5, updated.LongestStreak)
}

func TestUpdateStreakExtendsLongest(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	user := createUser(t, db, "omid", 0)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{"current_streak": 5, "longest_streak": 5}).Error)
	setLastActivity(t, db, user.ID, time.Now().Add(-25*time.Hour))

	require.NoError(t, svc.UpdateStreak(user.ID))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 6, updated.CurrentStreak)
	assert.Equal(t, 6, updated.LongestStreak)
}

func TestUpdateStreakGapResets(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	user := createUser(t, db, "sara", 0)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{"current_streak": 7, "longest_streak": 7}).Error)
	setLastActivity(t, db, user.ID, time.Now().Add(-72*time.Hour))

	require.NoError(t, svc.UpdateStreak(user.ID))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 1, updated.CurrentStreak, "a missed day resets the streak")
	assert.Equal(t, 7, updated.LongestStreak, "longest streak is never lowered")
}

func seedTiers(t *testing.T, db *gorm.DB) {
	t.Helper()
	tiers := []model.Tier{
		{Name: "Seed", MinXP: 0},
		{Name: "Sprout", MinXP: 100},
		{Name: "Bloom", MinXP: 500},
	}
	for i := range tiers {
		require.NoError(t, db.Create(&tiers[i]).Error)
	}
}

func TestResolveTier(t *testing.T) {
	tiers := []model.Tier{
		{Name: "Seed", MinXP: 0},
		{Name: "Sprout", MinXP: 100},
		{Name: "Bloom", MinXP: 500},
	}

	tests := []struct {
		xp          int
		wantCurrent string
		wantNext    string
		wantGap     int
	}{
		{0, "Seed", "Sprout", 100},
		{99, "Seed", "Sprout", 1},
		{100, "Sprout", "Bloom", 400},
		{150, "Sprout", "Bloom", 350},
		{500, "Bloom", "", 0},
		{10000, "Bloom", "", 0},
	}
	for _, tt := range tests {
		current, next, gap := ResolveTier(tiers, tt.xp)
		require.NotNil(t, current, "xp %d", tt.xp)
		assert.Equal(t, tt.wantCurrent, current.Name, "xp %d", tt.xp)
		if tt.wantNext == "" {
			assert.Nil(t, next, "xp %d", tt.xp)
		} else {
			require.NotNil(t, next, "xp %d", tt.xp)
			assert.Equal(t, tt.wantNext, next.Name, "xp %d", tt.xp)
		}
		assert.Equal(t, tt.wantGap, gap, "xp %d", tt.xp)
	}
}

func TestResolveTierNoneQualifies(t *testing.T) {
	tiers := []model.Tier{{Name: "Bronze", MinXP: 50}}
	current, next, gap := ResolveTier(tiers, 10)
	assert.Nil(t, current)
	require.NotNil(t, next)
	assert.Equal(t, "Bronze", next.Name)
	assert.Equal(t, 40, gap)
}

func TestTierStatusAndRank(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	seedTiers(t, db)

	createUser(t, db, "top", 1000)
	createUser(t, db, "mid", 400)
	me := createUser(t, db, "me", 150)
	createUser(t, db, "tied", 150)

	status, err := svc.TierStatus(me.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sprout", status.CurrentTier.Name)
	assert.Equal(t, "Bloom", status.NextTier.Name)
	assert.Equal(t, 350, status.XPToNext)
	assert.EqualValues(t, 3, status.Rank, "two users strictly ahead, ties share the rank")
	assert.Len(t, status.AllTiers, 3)
}

func TestLeaderboardOrderAndTieBreak(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	seedTiers(t, db)

	first := createUser(t, db, "first", 300)
	second := createUser(t, db, "second", 300) // same XP, later id
	createUser(t, db, "third", 50)

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, first.Name, entries[0].Name)
	assert.Equal(t, second.Name, entries[1].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "Sprout", entries[0].Tier)
	assert.Equal(t, "Seed", entries[2].Tier)
}

func TestCheckBadgesAwardsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	badge := &model.Badge{
		Name:             "Century",
		BadgeType:        model.BadgeXP,
		RequirementValue: 100,
		XPReward:         20,
		IsActive:         true,
	}
	require.NoError(t, db.Create(badge).Error)
	user := createUser(t, db, "amina", 120)

	require.NoError(t, svc.CheckBadges(user.ID))
	require.NoError(t, svc.CheckBadges(user.ID))

	var earned int64
	require.NoError(t, db.Model(&model.UserBadge{}).Where("user_id = ?", user.ID).Count(&earned).Error)
	assert.EqualValues(t, 1, earned, "a badge is earned exactly once")

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 140, updated.TotalXP, "badge XP credited once")

	var feed int64
	require.NoError(t, db.Model(&model.Achievement{}).Where("user_id = ?", user.ID).Count(&feed).Error)
	assert.EqualValues(t, 1, feed)
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	db := newTestDB(t)
	svc := newGamificationService(db)
	user := createUser(t, db, "farid", 50)

	require.NoError(t, svc.AddXP(user.ID, 0))
	require.NoError(t, svc.AddXP(user.ID, -10))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 50, updated.TotalXP)
}
