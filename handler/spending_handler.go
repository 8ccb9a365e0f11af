package handler

import (
	"log"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type SpendingHandler struct {
	baselines *usecase.SpendingBaselineService
}

func NewSpendingHandler(baselines *usecase.SpendingBaselineService) *SpendingHandler {
	return &SpendingHandler{baselines: baselines}
}

// GetBaseline returns the stored per-category spending baseline. With
// fewer than the minimum weeks of history the response is flagged
// insufficient_data and carries no averages.
func (h *SpendingHandler) GetBaseline(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	baseline, err := h.baselines.GetBaselines(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Failed to fetch baseline for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch spending baseline")
		return
	}

	utils.Success(c, gin.H{"baseline": baseline})
}

// RefreshBaseline recomputes the baseline from recent check-in history.
func (h *SpendingHandler) RefreshBaseline(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	baseline, err := h.baselines.UpdateBaselines(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Failed to refresh baseline for user %s: %v", userID, err)
		utils.TrackError("baselines", "refresh_failed")
		utils.InternalError(c, "Failed to refresh spending baseline")
		return
	}

	outcome := "updated"
	if baseline.InsufficientData {
		outcome = "insufficient_data"
	}
	utils.TrackBaselineRefresh(outcome)

	utils.Success(c, gin.H{"baseline": baseline})
}

// CompareSpending scores a week's spending against the stored baseline
// without recording anything.
func (h *SpendingHandler) CompareSpending(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CompareSpendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format")
		return
	}

	result, err := h.baselines.CompareToBaseline(c.Request.Context(), userID.(string), req.Spending)
	if err != nil {
		log.Printf("Failed to compare spending for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to compare spending")
		return
	}

	utils.Success(c, gin.H{"comparison": result})
}
