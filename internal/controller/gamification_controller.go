package controller

import (
	"strconv"

	"akaraka_backend/internal/service"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	GamificationService *service.GamificationService
}

func NewGamificationController(gamificationService *service.GamificationService) *GamificationController {
	return &GamificationController{GamificationService: gamificationService}
}

// TierStatus godoc
// @Summary My tier and rank
// @Description Current tier, next tier, XP gap, and leaderboard rank
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.TierStatus}
// @Router /api/gamification/tier [get]
func (c *GamificationController) TierStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.GamificationService.TierStatus(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// Leaderboard godoc
// @Summary XP leaderboard
// @Tags gamification
// @Produce json
// @Param limit query int false "Number of entries, max 100" default(10)
// @Success 200 {object} util.Response
// @Router /api/gamification/leaderboard [get]
func (c *GamificationController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	entries, err := c.GamificationService.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Badges godoc
// @Summary My badges
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/badges [get]
func (c *GamificationController) Badges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	badges, err := c.GamificationService.EarnedBadges(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// Achievements godoc
// @Summary My achievement feed
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries" default(20)
// @Success 200 {object} util.Response
// @Router /api/gamification/achievements [get]
func (c *GamificationController) Achievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	achievements, err := c.GamificationService.RecentAchievements(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}
