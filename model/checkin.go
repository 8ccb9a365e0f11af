package model

import (
	"errors"
	"time"
)

// ErrDuplicateCheckin is returned when a check-in already exists for the
// (user, week-ending) pair, whether caught up front or by the unique index.
var ErrDuplicateCheckin = errors.New("check-in already recorded for this week")

type ExerciseIntensity string

const (
	IntensityLight    ExerciseIntensity = "light"
	IntensityModerate ExerciseIntensity = "moderate"
	IntensityIntense  ExerciseIntensity = "intense"
)

// CheckinAnswers holds one week's wellness questionnaire answers.
// Ranges are enforced by the wellness calculator, not here.
type CheckinAnswers struct {
	ExerciseDays             int               `bson:"exercise_days" json:"exercise_days"`
	ExerciseIntensity        ExerciseIntensity `bson:"exercise_intensity,omitempty" json:"exercise_intensity,omitempty"`
	SleepQuality             int               `bson:"sleep_quality" json:"sleep_quality"`
	MeditationMinutes        int               `bson:"meditation_minutes" json:"meditation_minutes"`
	StressLevel              int               `bson:"stress_level" json:"stress_level"`
	OverallMood              int               `bson:"overall_mood" json:"overall_mood"`
	RelationshipSatisfaction int               `bson:"relationship_satisfaction" json:"relationship_satisfaction"`
	SocialInteractions       int               `bson:"social_interactions" json:"social_interactions"`
	FinancialStress          int               `bson:"financial_stress" json:"financial_stress"`
	SpendingControl          int               `bson:"spending_control" json:"spending_control"`
}

// WellnessScores is the scored result for one check-in, all values 0-100
// rounded to 2 decimals.
type WellnessScores struct {
	Physical         float64 `bson:"physical_score" json:"physical_score"`
	Mental           float64 `bson:"mental_score" json:"mental_score"`
	Relational       float64 `bson:"relational_score" json:"relational_score"`
	FinancialFeeling float64 `bson:"financial_feeling_score" json:"financial_feeling_score"`
	Overall          float64 `bson:"overall_wellness_score" json:"overall_wellness_score"`
}

// WeekDeltas carries week-over-week score changes. The financial feeling
// delta is deliberately not reported.
type WeekDeltas struct {
	Physical   float64 `json:"physical_change"`
	Mental     float64 `json:"mental_change"`
	Relational float64 `json:"relational_change"`
	Overall    float64 `json:"overall_change"`
}

// Checkin is the persisted weekly record. WeekEndingDate is the canonical
// Sunday key; (user_id, week_ending_date) is unique in storage.
type Checkin struct {
	CheckinID      string          `bson:"_id,omitempty" json:"id"`
	UserID         string          `bson:"user_id" json:"user_id"`
	WeekEndingDate time.Time       `bson:"week_ending_date" json:"week_ending_date"`
	Answers        CheckinAnswers  `bson:"answers" json:"answers"`
	Spending       *SpendingRecord `bson:"spending,omitempty" json:"spending,omitempty"`
	Scores         WellnessScores  `bson:"scores" json:"scores"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
}
