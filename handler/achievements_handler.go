package handler

import (
	"log"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AchievementsHandler struct {
	achievements *usecase.AchievementService
	checkins     *usecase.CheckinService
	streaks      *usecase.StreakService
}

func NewAchievementsHandler(
	achievements *usecase.AchievementService,
	checkins *usecase.CheckinService,
	streaks *usecase.StreakService,
) *AchievementsHandler {
	return &AchievementsHandler{
		achievements: achievements,
		checkins:     checkins,
		streaks:      streaks,
	}
}

// GetAchievements returns the full catalog annotated with the user's
// unlock state.
func (h *AchievementsHandler) GetAchievements(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	views, err := h.achievements.GetUserAchievements(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Failed to fetch achievements for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch achievements")
		return
	}

	unlocked := 0
	for _, view := range views {
		if view.Unlocked {
			unlocked++
		}
	}

	utils.Success(c, gin.H{
		"achievements": views,
		"unlocked":     unlocked,
		"total":        len(views),
	})
}

// GetNextAchievements returns the closest locked achievements with unlock
// progress, based on the latest scores and current streak.
func (h *AchievementsHandler) GetNextAchievements(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	uid := userID.(string)
	ctx := c.Request.Context()

	latest, err := h.checkins.GetLatestCheckin(ctx, uid)
	if err != nil {
		log.Printf("Failed to fetch latest check-in for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch achievement progress")
		return
	}
	var latestScores *model.WellnessScores
	if latest != nil {
		latestScores = &latest.Scores
	}

	streak, err := h.streaks.GetStreak(ctx, uid)
	if err != nil {
		log.Printf("Failed to fetch streak for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch achievement progress")
		return
	}

	next, err := h.achievements.GetNextAchievements(ctx, uid, latestScores, streak.CurrentStreak)
	if err != nil {
		log.Printf("Failed to compute next achievements for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch achievement progress")
		return
	}

	utils.Success(c, gin.H{"next_achievements": next})
}
