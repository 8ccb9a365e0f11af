package dto

import (
	"time"

	"main/model"
)

// CheckinRequest is the submit-check-in payload. CheckinDate is optional
// and defaults to the submission time; it is normalized to the week-ending
// Sunday server-side. Answer ranges are validated by the wellness
// calculator so failures can name the offending field.
type CheckinRequest struct {
	CheckinDate *time.Time            `json:"checkin_date,omitempty"`
	Answers     *model.CheckinAnswers `json:"answers" binding:"required"`
	Spending    *model.SpendingRecord `json:"spending,omitempty"`
}

// CompareSpendingRequest asks how a week's spending stacks up against the
// stored baseline without recording a check-in.
type CompareSpendingRequest struct {
	Spending *model.SpendingRecord `json:"spending" binding:"required"`
}

// CheckinResponse trims a stored check-in for list endpoints.
type CheckinResponse struct {
	ID             string               `json:"id"`
	WeekEndingDate time.Time            `json:"week_ending_date"`
	Scores         model.WellnessScores `json:"scores"`
	CreatedAt      time.Time            `json:"created_at"`
}

func ToCheckinResponse(checkin *model.Checkin) CheckinResponse {
	return CheckinResponse{
		ID:             checkin.CheckinID,
		WeekEndingDate: checkin.WeekEndingDate,
		Scores:         checkin.Scores,
		CreatedAt:      checkin.CreatedAt,
	}
}
