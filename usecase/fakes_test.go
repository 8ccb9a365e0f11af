package usecase

import (
	"context"
	"sort"
	"time"

	"main/model"
)

// In-memory stores backing the service tests. They mirror the repository
// contracts, including the (nil, nil) not-found convention.

type fakeCheckinStore struct {
	checkins []*model.Checkin

	// createErr, when set, is returned by CreateCheckin to stand in for
	// an insert rejected by the database.
	createErr error
}

func (f *fakeCheckinStore) CreateCheckin(_ context.Context, checkin *model.Checkin) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.checkins = append(f.checkins, checkin)
	return nil
}

func (f *fakeCheckinStore) GetRecentCheckins(_ context.Context, userID string, limit int) ([]*model.Checkin, error) {
	var out []*model.Checkin
	for _, c := range f.checkins {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekEndingDate.After(out[j].WeekEndingDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCheckinStore) GetCheckinByWeek(_ context.Context, userID string, weekEnding time.Time) (*model.Checkin, error) {
	for _, c := range f.checkins {
		if c.UserID == userID && c.WeekEndingDate.Equal(weekEnding) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCheckinStore) CountCheckins(_ context.Context, userID string) (int, error) {
	count := 0
	for _, c := range f.checkins {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeBaselineStore struct {
	baselines map[string]*model.SpendingBaseline
	upserts   int
}

func newFakeBaselineStore() *fakeBaselineStore {
	return &fakeBaselineStore{baselines: make(map[string]*model.SpendingBaseline)}
}

func (f *fakeBaselineStore) GetBaseline(_ context.Context, userID string) (*model.SpendingBaseline, error) {
	return f.baselines[userID], nil
}

func (f *fakeBaselineStore) UpsertBaseline(_ context.Context, baseline *model.SpendingBaseline) error {
	f.upserts++
	f.baselines[baseline.UserID] = baseline
	return nil
}

type fakeStreakStore struct {
	states map[string]*model.StreakState
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{states: make(map[string]*model.StreakState)}
}

func (f *fakeStreakStore) GetStreak(_ context.Context, userID string) (*model.StreakState, error) {
	return f.states[userID], nil
}

func (f *fakeStreakStore) UpsertStreak(_ context.Context, state *model.StreakState) error {
	f.states[state.UserID] = state
	return nil
}

type fakeAchievementStore struct {
	unlocks []*model.UserAchievement
}

func (f *fakeAchievementStore) GetUnlocked(_ context.Context, userID string) ([]*model.UserAchievement, error) {
	var out []*model.UserAchievement
	for _, u := range f.unlocks {
		if u.UserID == userID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeAchievementStore) Unlock(_ context.Context, unlock *model.UserAchievement) error {
	for _, u := range f.unlocks {
		if u.UserID == unlock.UserID && u.Key == unlock.Key {
			return nil
		}
	}
	f.unlocks = append(f.unlocks, unlock)
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func streakState(userID string, streak int, lastCheckin time.Time) *model.StreakState {
	return &model.StreakState{
		UserID:          userID,
		CurrentStreak:   streak,
		LongestStreak:   streak,
		TotalCheckins:   streak,
		LastCheckinDate: lastCheckin,
		UpdatedAt:       lastCheckin,
	}
}

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func validAnswers() *model.CheckinAnswers {
	return &model.CheckinAnswers{
		ExerciseDays:             3,
		ExerciseIntensity:        model.IntensityModerate,
		SleepQuality:             7,
		MeditationMinutes:        30,
		StressLevel:              4,
		OverallMood:              8,
		RelationshipSatisfaction: 6,
		SocialInteractions:       4,
		FinancialStress:          5,
		SpendingControl:          6,
	}
}
