package handler

import (
	"log"
	"time"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	checkins     *usecase.CheckinService
	calculator   *usecase.WellnessScoreCalculator
	streaks      *usecase.StreakService
	achievements *usecase.AchievementService
	baselines    *usecase.SpendingBaselineService
}

func NewStatsHandler(
	checkins *usecase.CheckinService,
	calculator *usecase.WellnessScoreCalculator,
	streaks *usecase.StreakService,
	achievements *usecase.AchievementService,
	baselines *usecase.SpendingBaselineService,
) *StatsHandler {
	return &StatsHandler{
		checkins:     checkins,
		calculator:   calculator,
		streaks:      streaks,
		achievements: achievements,
		baselines:    baselines,
	}
}

// GetWellnessSummary assembles the dashboard view: latest scores and
// week-over-week movement, streak state, achievement counts, and the
// spending baseline status.
func (h *StatsHandler) GetWellnessSummary(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	uid := userID.(string)
	ctx := c.Request.Context()

	var summary model.WellnessSummary

	total, err := h.checkins.CountCheckins(ctx, uid)
	if err != nil {
		log.Printf("Error counting check-ins for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to count check-ins")
		return
	}
	summary.CheckinStats.Total = total

	recent, err := h.checkins.GetUserCheckins(ctx, uid, 2)
	if err != nil {
		log.Printf("Error fetching recent check-ins for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch recent check-ins")
		return
	}

	if len(recent) > 0 {
		latest := recent[0]
		summary.CheckinStats.LatestWeek = &latest.WeekEndingDate
		summary.CheckinStats.CheckedInThisWeek = latest.WeekEndingDate.Equal(h.calculator.WeekEndingDate(time.Now()))
		summary.LatestScores = &latest.Scores

		var previousScores *model.WellnessScores
		if len(recent) > 1 && recent[1].WeekEndingDate.Equal(latest.WeekEndingDate.AddDate(0, 0, -7)) {
			previousScores = &recent[1].Scores
		}
		summary.WeekChanges = h.calculator.WeekOverWeekChanges(&latest.Scores, previousScores)
	}

	streak, err := h.streaks.GetStreak(ctx, uid)
	if err != nil {
		log.Printf("Error fetching streak for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch streak")
		return
	}
	summary.StreakStats.Current = streak.CurrentStreak
	summary.StreakStats.Longest = streak.LongestStreak

	atRisk, err := h.streaks.AtRisk(ctx, uid, time.Now())
	if err != nil {
		log.Printf("Error computing streak risk for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to compute streak status")
		return
	}
	summary.StreakStats.AtRisk = atRisk

	views, err := h.achievements.GetUserAchievements(ctx, uid)
	if err != nil {
		log.Printf("Error fetching achievements for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch achievements")
		return
	}
	summary.AchievementStats.Total = len(views)
	for _, view := range views {
		if view.Unlocked {
			summary.AchievementStats.Unlocked++
		}
	}

	baseline, err := h.baselines.GetBaselines(ctx, uid)
	if err != nil {
		log.Printf("Error fetching baseline for user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch baseline")
		return
	}
	if baseline != nil {
		summary.BaselineStats.WeeksOfData = baseline.WeeksOfData
	}
	summary.BaselineStats.InsufficientData = baseline == nil || baseline.WeeksOfData < h.baselines.MinWeeks

	utils.Success(c, gin.H{
		"summary": summary,
	})
}
