package handler

import (
	"log"
	"time"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	streaks *usecase.StreakService
}

func NewStreakHandler(streaks *usecase.StreakService) *StreakHandler {
	return &StreakHandler{streaks: streaks}
}

func (h *StreakHandler) GetStreak(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	streak, err := h.streaks.GetStreak(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Failed to fetch streak for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch streak")
		return
	}

	utils.Success(c, gin.H{"streak": streak})
}

// GetAtRisk reports whether the user is inside the final days of the week
// without a check-in, losing the streak at the Sunday boundary.
func (h *StreakHandler) GetAtRisk(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	atRisk, err := h.streaks.AtRisk(c.Request.Context(), userID.(string), time.Now())
	if err != nil {
		log.Printf("Failed to compute streak risk for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to check streak status")
		return
	}

	utils.Success(c, gin.H{"at_risk": atRisk})
}
