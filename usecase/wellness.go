package usecase

import (
	"fmt"
	"math"
	"time"

	"main/model"
)

// ValidationError reports a check-in answer that is missing, mistyped, or
// out of its documented range. The message is safe to surface verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ScoreWeights weight the four component scores in the overall score.
// They are applied as given and are not required to sum to 1.
type ScoreWeights struct {
	Physical         float64
	Mental           float64
	Relational       float64
	FinancialFeeling float64
}

// DefaultScoreWeights are the product defaults.
var DefaultScoreWeights = ScoreWeights{
	Physical:         0.30,
	Mental:           0.30,
	Relational:       0.20,
	FinancialFeeling: 0.20,
}

// WellnessScoreCalculator converts one week's check-in answers into 0-100
// component scores. Every method is a pure function of its input.
type WellnessScoreCalculator struct{}

func NewWellnessScoreCalculator() *WellnessScoreCalculator {
	return &WellnessScoreCalculator{}
}

// WeekEndingDate returns the Sunday that closes the Monday-Sunday week
// containing t. A Sunday maps to itself. The result is a midnight UTC date,
// the canonical key for one check-in.
func (calc *WellnessScoreCalculator) WeekEndingDate(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// PhysicalScore scores exercise frequency, intensity, and sleep quality.
func (calc *WellnessScoreCalculator) PhysicalScore(a *model.CheckinAnswers) (float64, error) {
	if a.ExerciseDays < 0 || a.ExerciseDays > 7 {
		return 0, invalidField("exercise_days", "must be between 0 and 7, got %d", a.ExerciseDays)
	}
	if a.SleepQuality < 1 || a.SleepQuality > 10 {
		return 0, invalidField("sleep_quality", "must be between 1 and 10, got %d", a.SleepQuality)
	}

	score := float64(a.ExerciseDays) / 7 * 40

	if a.ExerciseDays > 0 {
		switch a.ExerciseIntensity {
		case model.IntensityLight:
			score += 10
		case model.IntensityModerate:
			score += 15
		case model.IntensityIntense:
			score += 20
		case "":
			return 0, invalidField("exercise_intensity", "required when exercise_days > 0")
		default:
			return 0, invalidField("exercise_intensity", "must be light, moderate, or intense, got %q", a.ExerciseIntensity)
		}
	}

	score += float64(a.SleepQuality-1) / 9 * 40
	return round2(math.Min(score, 100)), nil
}

// MentalScore scores meditation, stress (inverted), and mood.
func (calc *WellnessScoreCalculator) MentalScore(a *model.CheckinAnswers) (float64, error) {
	if a.MeditationMinutes < 0 || a.MeditationMinutes > 999 {
		return 0, invalidField("meditation_minutes", "must be between 0 and 999, got %d", a.MeditationMinutes)
	}
	if a.StressLevel < 1 || a.StressLevel > 10 {
		return 0, invalidField("stress_level", "must be between 1 and 10, got %d", a.StressLevel)
	}
	if a.OverallMood < 1 || a.OverallMood > 10 {
		return 0, invalidField("overall_mood", "must be between 1 and 10, got %d", a.OverallMood)
	}

	score := math.Min(float64(a.MeditationMinutes), 60) / 60 * 30
	score += float64(10-a.StressLevel) / 9 * 35
	score += float64(a.OverallMood-1) / 9 * 35
	return round2(math.Min(score, 100)), nil
}

// RelationalScore scores relationship satisfaction and social contact.
func (calc *WellnessScoreCalculator) RelationalScore(a *model.CheckinAnswers) (float64, error) {
	if a.RelationshipSatisfaction < 1 || a.RelationshipSatisfaction > 10 {
		return 0, invalidField("relationship_satisfaction", "must be between 1 and 10, got %d", a.RelationshipSatisfaction)
	}
	if a.SocialInteractions < 0 {
		return 0, invalidField("social_interactions", "must be 0 or greater, got %d", a.SocialInteractions)
	}

	score := float64(a.RelationshipSatisfaction-1) / 9 * 60
	score += math.Min(float64(a.SocialInteractions), 10) / 10 * 40
	return round2(math.Min(score, 100)), nil
}

// FinancialFeelingScore scores financial stress (inverted) and sense of
// spending control.
func (calc *WellnessScoreCalculator) FinancialFeelingScore(a *model.CheckinAnswers) (float64, error) {
	if a.FinancialStress < 1 || a.FinancialStress > 10 {
		return 0, invalidField("financial_stress", "must be between 1 and 10, got %d", a.FinancialStress)
	}
	if a.SpendingControl < 1 || a.SpendingControl > 10 {
		return 0, invalidField("spending_control", "must be between 1 and 10, got %d", a.SpendingControl)
	}

	score := float64(10-a.FinancialStress) / 9 * 50
	score += float64(a.SpendingControl-1) / 9 * 50
	return round2(math.Min(score, 100)), nil
}

// OverallWellness computes all four component scores and their weighted
// combination. A nil weights pointer selects the defaults.
func (calc *WellnessScoreCalculator) OverallWellness(a *model.CheckinAnswers, weights *ScoreWeights) (*model.WellnessScores, error) {
	if weights == nil {
		weights = &DefaultScoreWeights
	}

	physical, err := calc.PhysicalScore(a)
	if err != nil {
		return nil, err
	}
	mental, err := calc.MentalScore(a)
	if err != nil {
		return nil, err
	}
	relational, err := calc.RelationalScore(a)
	if err != nil {
		return nil, err
	}
	financial, err := calc.FinancialFeelingScore(a)
	if err != nil {
		return nil, err
	}

	overall := physical*weights.Physical +
		mental*weights.Mental +
		relational*weights.Relational +
		financial*weights.FinancialFeeling

	return &model.WellnessScores{
		Physical:         physical,
		Mental:           mental,
		Relational:       relational,
		FinancialFeeling: financial,
		Overall:          round2(overall),
	}, nil
}

// WeekOverWeekChanges reports score deltas against the previous week. A nil
// previous week counts as all zeros, so a first-ever check-in reports its
// full scores as the change. The financial feeling delta is not reported.
func (calc *WellnessScoreCalculator) WeekOverWeekChanges(current *model.WellnessScores, previous *model.WellnessScores) *model.WeekDeltas {
	var prev model.WellnessScores
	if previous != nil {
		prev = *previous
	}
	return &model.WeekDeltas{
		Physical:   round2(current.Physical - prev.Physical),
		Mental:     round2(current.Mental - prev.Mental),
		Relational: round2(current.Relational - prev.Relational),
		Overall:    round2(current.Overall - prev.Overall),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
