package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const defaultCheckinListLimit = 12

type CheckinHandler struct {
	checkins *usecase.CheckinService
}

func NewCheckinHandler(checkins *usecase.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkins: checkins}
}

// SubmitCheckin records the week's check-in and returns the scores along
// with everything the submission moved: streak, new achievements, and the
// refreshed spending baseline.
func (h *CheckinHandler) SubmitCheckin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format")
		return
	}

	date := time.Now()
	if req.CheckinDate != nil {
		date = *req.CheckinDate
	}

	result, err := h.checkins.SubmitCheckin(c.Request.Context(), userID.(string), date, req.Answers, req.Spending)
	if err != nil {
		var validationErr *usecase.ValidationError
		switch {
		case errors.As(err, &validationErr):
			utils.BadRequest(c, validationErr.Error())
		case errors.Is(err, usecase.ErrDuplicateCheckin):
			utils.Conflict(c, "A check-in already exists for this week")
		default:
			log.Printf("Failed to submit check-in for user %s: %v", userID, err)
			utils.TrackError("checkins", "submit_failed")
			utils.InternalError(c, "Failed to submit check-in")
		}
		return
	}

	utils.TrackCheckinSubmitted()
	utils.Created(c, result)
}

// GetCheckins lists recent check-ins, newest first. The limit query
// parameter caps the page size, defaulting to one quarter of weeks.
func (h *CheckinHandler) GetCheckins(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	limit := defaultCheckinListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	checkins, err := h.checkins.GetUserCheckins(c.Request.Context(), userID.(string), limit)
	if err != nil {
		log.Printf("Failed to list check-ins for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch check-ins")
		return
	}

	responses := make([]dto.CheckinResponse, 0, len(checkins))
	for _, checkin := range checkins {
		responses = append(responses, dto.ToCheckinResponse(checkin))
	}

	utils.Success(c, gin.H{
		"checkins": responses,
		"count":    len(responses),
	})
}

// GetLatestCheckin returns the full latest check-in including answers and
// spending, or 404 with no history.
func (h *CheckinHandler) GetLatestCheckin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	checkin, err := h.checkins.GetLatestCheckin(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Failed to fetch latest check-in for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch latest check-in")
		return
	}
	if checkin == nil {
		utils.NotFound(c, "No check-ins recorded yet")
		return
	}

	utils.Success(c, gin.H{"checkin": checkin})
}
