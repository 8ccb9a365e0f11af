package model

import "time"

// AchievementStats is the snapshot fed to achievement predicates.
type AchievementStats struct {
	CurrentStreak int
	TotalCheckins int
	LatestScores  *WellnessScores
}

// AchievementDef is one catalog entry. Predicate reports whether the stats
// satisfy the unlock criteria; Progress reports how close a locked user is
// (0..1) with a human-readable message.
type AchievementDef struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	Predicate func(AchievementStats) bool              `json:"-"`
	Progress  func(AchievementStats) (float64, string) `json:"-"`
}

// UserAchievement records a single unlock. Unlocks are append-only.
type UserAchievement struct {
	UserID     string    `bson:"user_id" json:"user_id"`
	Key        string    `bson:"key" json:"key"`
	UnlockedAt time.Time `bson:"unlocked_at" json:"unlocked_at"`
}

// AchievementView is a catalog entry annotated for one user.
type AchievementView struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// NextAchievement is a locked catalog entry with unlock progress.
type NextAchievement struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
}
