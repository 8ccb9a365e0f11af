package model

import "time"

// WellnessSummary is the dashboard aggregation returned by the stats
// endpoint: the latest scored check-in plus streak and achievement state.
type WellnessSummary struct {
	CheckinStats struct {
		Total             int        `json:"total"`
		LatestWeek        *time.Time `json:"latest_week,omitempty"`
		CheckedInThisWeek bool       `json:"checked_in_this_week"`
	} `json:"checkin_stats"`
	LatestScores *WellnessScores `json:"latest_scores,omitempty"`
	WeekChanges  *WeekDeltas     `json:"week_changes,omitempty"`
	StreakStats  struct {
		Current int  `json:"current"`
		Longest int  `json:"longest"`
		AtRisk  bool `json:"at_risk"`
	} `json:"streak_stats"`
	AchievementStats struct {
		Unlocked int `json:"unlocked"`
		Total    int `json:"total"`
	} `json:"achievement_stats"`
	BaselineStats struct {
		WeeksOfData      int  `json:"weeks_of_data"`
		InsufficientData bool `json:"insufficient_data"`
	} `json:"baseline_stats"`
}
