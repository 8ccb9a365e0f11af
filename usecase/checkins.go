package usecase

import (
	"context"
	"time"

	"main/model"

	"github.com/google/uuid"
)

// ErrDuplicateCheckin reports a second check-in for the same week. The
// model-level sentinel also surfaces from the repository when a concurrent
// submission slips past the pre-check and hits the unique index.
var ErrDuplicateCheckin = model.ErrDuplicateCheckin

// CheckinStore persists weekly check-ins. GetCheckinByWeek returns (nil, nil)
// when no record exists for the week.
type CheckinStore interface {
	CheckinReader
	CreateCheckin(ctx context.Context, checkin *model.Checkin) error
	GetCheckinByWeek(ctx context.Context, userID string, weekEnding time.Time) (*model.Checkin, error)
	CountCheckins(ctx context.Context, userID string) (int, error)
}

// CheckinResult is everything a submitted check-in produced, ready to
// return to the client in one response.
type CheckinResult struct {
	Checkin         *model.Checkin          `json:"checkin"`
	Changes         *model.WeekDeltas       `json:"changes"`
	Streak          *model.StreakState      `json:"streak"`
	NewAchievements []string                `json:"new_achievements,omitempty"`
	Baseline        *model.SpendingBaseline `json:"baseline,omitempty"`
}

// CheckinService runs the full weekly check-in flow: validate and score the
// answers, persist the record, then advance streaks, achievements, and
// spending baselines.
type CheckinService struct {
	store        CheckinStore
	calculator   *WellnessScoreCalculator
	baselines    *SpendingBaselineService
	streaks      *StreakService
	achievements *AchievementService
}

func NewCheckinService(
	store CheckinStore,
	calculator *WellnessScoreCalculator,
	baselines *SpendingBaselineService,
	streaks *StreakService,
	achievements *AchievementService,
) *CheckinService {
	return &CheckinService{
		store:        store,
		calculator:   calculator,
		baselines:    baselines,
		streaks:      streaks,
		achievements: achievements,
	}
}

// SubmitCheckin records one week's check-in. The whole submission fails on
// any invalid answer; nothing is persisted in that case.
func (svc *CheckinService) SubmitCheckin(ctx context.Context, userID string, date time.Time, answers *model.CheckinAnswers, spending *model.SpendingRecord) (*CheckinResult, error) {
	if err := validateSpending(spending); err != nil {
		return nil, err
	}

	scores, err := svc.calculator.OverallWellness(answers, nil)
	if err != nil {
		return nil, err
	}

	weekEnding := svc.calculator.WeekEndingDate(date)

	existing, err := svc.store.GetCheckinByWeek(ctx, userID, weekEnding)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCheckin
	}

	previous, err := svc.store.GetCheckinByWeek(ctx, userID, weekEnding.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	var previousScores *model.WellnessScores
	if previous != nil {
		previousScores = &previous.Scores
	}
	changes := svc.calculator.WeekOverWeekChanges(scores, previousScores)

	checkin := &model.Checkin{
		CheckinID:      uuid.New().String(),
		UserID:         userID,
		WeekEndingDate: weekEnding,
		Answers:        *answers,
		Spending:       spending,
		Scores:         *scores,
		CreatedAt:      time.Now(),
	}
	if err := svc.store.CreateCheckin(ctx, checkin); err != nil {
		return nil, err
	}

	streak, err := svc.streaks.UpdateStreak(ctx, userID, weekEnding)
	if err != nil {
		return nil, err
	}

	newAchievements, err := svc.achievements.CheckAchievements(ctx, userID, scores, streak.CurrentStreak)
	if err != nil {
		return nil, err
	}

	baseline, err := svc.baselines.UpdateBaselines(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CheckinResult{
		Checkin:         checkin,
		Changes:         changes,
		Streak:          streak,
		NewAchievements: newAchievements,
		Baseline:        baseline,
	}, nil
}

// GetUserCheckins returns up to limit of the user's most recent check-ins,
// newest first.
func (svc *CheckinService) GetUserCheckins(ctx context.Context, userID string, limit int) ([]*model.Checkin, error) {
	return svc.store.GetRecentCheckins(ctx, userID, limit)
}

// GetLatestCheckin returns the newest check-in, or nil with no history.
func (svc *CheckinService) GetLatestCheckin(ctx context.Context, userID string) (*model.Checkin, error) {
	checkins, err := svc.store.GetRecentCheckins(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(checkins) == 0 {
		return nil, nil
	}
	return checkins[0], nil
}

// CountCheckins returns the user's total recorded check-ins.
func (svc *CheckinService) CountCheckins(ctx context.Context, userID string) (int, error) {
	return svc.store.CountCheckins(ctx, userID)
}

func validateSpending(spending *model.SpendingRecord) error {
	if spending == nil {
		return nil
	}
	for _, category := range model.AllCategories {
		if amount := spending.Amount(category); amount != nil && *amount < 0 {
			return invalidField(category, "must be 0 or greater, got %.2f", *amount)
		}
	}
	return nil
}
