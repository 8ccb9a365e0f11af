package model

import "time"

// StreakState tracks a user's consecutive-week check-in streak.
// LongestStreak never decreases; TotalCheckins counts every recorded week.
type StreakState struct {
	UserID          string    `bson:"user_id" json:"user_id"`
	CurrentStreak   int       `bson:"current_streak" json:"current_streak"`
	LongestStreak   int       `bson:"longest_streak" json:"longest_streak"`
	TotalCheckins   int       `bson:"total_checkins" json:"total_checkins"`
	LastCheckinDate time.Time `bson:"last_checkin_date" json:"last_checkin_date"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}
