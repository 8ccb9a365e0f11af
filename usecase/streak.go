package usecase

import (
	"context"
	"sort"
	"time"

	"main/model"
)

// DefaultReminderWindowDays is how close to the weekly deadline a live
// streak is considered at risk: the final two days of the week (Saturday
// and Sunday).
const DefaultReminderWindowDays = 2

// StreakStore persists per-user streak state. GetStreak returns (nil, nil)
// when the user has no recorded check-ins yet.
type StreakStore interface {
	GetStreak(ctx context.Context, userID string) (*model.StreakState, error)
	UpsertStreak(ctx context.Context, state *model.StreakState) error
}

// StreakService tracks consecutive-week check-in streaks.
type StreakService struct {
	store StreakStore

	ReminderWindowDays int
}

func NewStreakService(store StreakStore) *StreakService {
	return &StreakService{
		store:              store,
		ReminderWindowDays: DefaultReminderWindowDays,
	}
}

// StreakFromHistory counts the run of consecutive weeks ending at the most
// recent entry. Entries may arrive in any order; each step back must be
// exactly 7 days or the run breaks and earlier history is ignored.
func (svc *StreakService) StreakFromHistory(weekEndings []time.Time) int {
	if len(weekEndings) == 0 {
		return 0
	}

	sorted := make([]time.Time, len(weekEndings))
	copy(sorted, weekEndings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].After(sorted[j])
	})

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDate(0, 0, -7).Equal(sorted[i]) {
			streak++
			continue
		}
		break
	}
	return streak
}

// UpdateStreak records a check-in for the given week-ending date. A week
// exactly 7 days after the last recorded one extends the streak; anything
// later resets it to 1. A week-ending at or before the last recorded date
// is a duplicate submission and leaves the state untouched, so calling this
// twice for the same week cannot double-count.
func (svc *StreakService) UpdateStreak(ctx context.Context, userID string, weekEnding time.Time) (*model.StreakState, error) {
	state, err := svc.store.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if state == nil {
		state = &model.StreakState{
			UserID:          userID,
			CurrentStreak:   1,
			LongestStreak:   1,
			TotalCheckins:   1,
			LastCheckinDate: weekEnding,
			UpdatedAt:       now,
		}
		if err := svc.store.UpsertStreak(ctx, state); err != nil {
			return nil, err
		}
		return state, nil
	}

	if !weekEnding.After(state.LastCheckinDate) {
		return state, nil
	}

	if state.LastCheckinDate.AddDate(0, 0, 7).Equal(weekEnding) {
		state.CurrentStreak++
	} else {
		state.CurrentStreak = 1
	}
	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	state.TotalCheckins++
	state.LastCheckinDate = weekEnding
	state.UpdatedAt = now

	if err := svc.store.UpsertStreak(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetStreak returns the stored streak state, or a zero state for users with
// no history.
func (svc *StreakService) GetStreak(ctx context.Context, userID string) (*model.StreakState, error) {
	state, err := svc.store.GetStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &model.StreakState{UserID: userID}, nil
	}
	return state, nil
}

// AtRisk reports whether the user's streak would break without a check-in
// before the week closes. False when there is no streak to lose or this
// week's check-in is already recorded; true once inside the reminder window.
func (svc *StreakService) AtRisk(ctx context.Context, userID string, now time.Time) (bool, error) {
	state, err := svc.store.GetStreak(ctx, userID)
	if err != nil {
		return false, err
	}
	if state == nil || state.CurrentStreak == 0 {
		return false, nil
	}

	calc := WellnessScoreCalculator{}
	thisWeek := calc.WeekEndingDate(now)
	if state.LastCheckinDate.Equal(thisWeek) {
		return false, nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysLeft := int(thisWeek.Sub(today).Hours() / 24)
	return daysLeft < svc.ReminderWindowDays, nil
}
