package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
)

func newTestCheckinService() (*CheckinService, *fakeCheckinStore) {
	store := &fakeCheckinStore{}
	calculator := NewWellnessScoreCalculator()
	baselines := NewSpendingBaselineService(store, newFakeBaselineStore())
	streaks := NewStreakService(newFakeStreakStore())
	achievements := NewAchievementService(&fakeAchievementStore{}, streaks.store)
	return NewCheckinService(store, calculator, baselines, streaks, achievements), store
}

func TestSubmitCheckinFirstWeek(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCheckinService()

	// Thursday; the check-in lands on the closing Sunday.
	submitted := utcDate(2025, time.February, 6)
	wantWeek := utcDate(2025, time.February, 9)

	spending := &model.SpendingRecord{Groceries: floatPtr(120.50)}
	result, err := svc.SubmitCheckin(ctx, "u1", submitted, validAnswers(), spending)
	if err != nil {
		t.Fatalf("SubmitCheckin error: %v", err)
	}

	if !result.Checkin.WeekEndingDate.Equal(wantWeek) {
		t.Errorf("WeekEndingDate = %v, want %v", result.Checkin.WeekEndingDate, wantWeek)
	}
	if result.Checkin.Scores.Overall != 58.29 {
		t.Errorf("Overall = %v, want 58.29", result.Checkin.Scores.Overall)
	}
	// First week: the deltas are the full scores.
	if result.Changes.Overall != 58.29 {
		t.Errorf("Changes.Overall = %v, want 58.29", result.Changes.Overall)
	}
	if result.Streak.CurrentStreak != 1 || result.Streak.TotalCheckins != 1 {
		t.Errorf("streak = %+v, want 1/1", result.Streak)
	}
	found := false
	for _, key := range result.NewAchievements {
		if key == "first_checkin" {
			found = true
		}
	}
	if !found {
		t.Errorf("NewAchievements = %v, want first_checkin included", result.NewAchievements)
	}
	if result.Baseline == nil || !result.Baseline.InsufficientData {
		t.Errorf("baseline after one week should be insufficient, got %+v", result.Baseline)
	}
	if len(store.checkins) != 1 {
		t.Errorf("store holds %d check-ins, want 1", len(store.checkins))
	}
}

func TestSubmitCheckinConsecutiveWeeks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCheckinService()

	week1 := utcDate(2025, time.February, 3) // Monday, week ends Feb 9
	if _, err := svc.SubmitCheckin(ctx, "u1", week1, validAnswers(), nil); err != nil {
		t.Fatalf("first SubmitCheckin error: %v", err)
	}

	better := validAnswers()
	better.OverallMood = 10
	result, err := svc.SubmitCheckin(ctx, "u1", week1.AddDate(0, 0, 7), better, nil)
	if err != nil {
		t.Fatalf("second SubmitCheckin error: %v", err)
	}

	if result.Streak.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", result.Streak.CurrentStreak)
	}
	// Mood 8 -> 10 lifts the rounded mental score from 65.56 to 73.33.
	if result.Changes.Mental != 7.77 {
		t.Errorf("Changes.Mental = %v, want 7.77", result.Changes.Mental)
	}
	if result.Changes.Physical != 0 {
		t.Errorf("Changes.Physical = %v, want 0", result.Changes.Physical)
	}
}

func TestSubmitCheckinDuplicateWeek(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCheckinService()

	day := utcDate(2025, time.February, 4)
	if _, err := svc.SubmitCheckin(ctx, "u1", day, validAnswers(), nil); err != nil {
		t.Fatalf("SubmitCheckin error: %v", err)
	}

	// A different day inside the same Monday-Sunday week is the same
	// check-in.
	_, err := svc.SubmitCheckin(ctx, "u1", day.AddDate(0, 0, 2), validAnswers(), nil)
	if !errors.Is(err, ErrDuplicateCheckin) {
		t.Errorf("second submit error = %v, want ErrDuplicateCheckin", err)
	}
	if len(store.checkins) != 1 {
		t.Errorf("store holds %d check-ins, want 1", len(store.checkins))
	}
}

func TestSubmitCheckinConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCheckinService()

	// Two submissions racing past the pre-check: the insert itself is
	// rejected by the unique index, and the caller still sees the
	// duplicate sentinel rather than a generic failure.
	store.createErr = model.ErrDuplicateCheckin

	_, err := svc.SubmitCheckin(ctx, "u1", utcDate(2025, time.February, 4), validAnswers(), nil)
	if !errors.Is(err, ErrDuplicateCheckin) {
		t.Errorf("submit error = %v, want ErrDuplicateCheckin", err)
	}
	if len(store.checkins) != 0 {
		t.Errorf("store holds %d check-ins, want 0", len(store.checkins))
	}
}

func TestSubmitCheckinRejectsInvalidAnswers(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCheckinService()

	answers := validAnswers()
	answers.StressLevel = 42

	_, err := svc.SubmitCheckin(ctx, "u1", utcDate(2025, time.February, 4), answers, nil)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "stress_level" {
		t.Errorf("error names %q, want stress_level", validationErr.Field)
	}
	if len(store.checkins) != 0 {
		t.Error("invalid submission must not persist anything")
	}
}

func TestSubmitCheckinRejectsNegativeSpending(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestCheckinService()

	spending := &model.SpendingRecord{Dining: floatPtr(-10)}
	_, err := svc.SubmitCheckin(ctx, "u1", utcDate(2025, time.February, 4), validAnswers(), spending)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != model.CategoryDining {
		t.Errorf("error names %q, want %s", validationErr.Field, model.CategoryDining)
	}
	if len(store.checkins) != 0 {
		t.Error("invalid submission must not persist anything")
	}
}

func TestGetLatestCheckin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCheckinService()

	latest, err := svc.GetLatestCheckin(ctx, "u1")
	if err != nil {
		t.Fatalf("GetLatestCheckin error: %v", err)
	}
	if latest != nil {
		t.Errorf("latest with no history = %+v, want nil", latest)
	}

	week1 := utcDate(2025, time.February, 3)
	svc.SubmitCheckin(ctx, "u1", week1, validAnswers(), nil)
	svc.SubmitCheckin(ctx, "u1", week1.AddDate(0, 0, 7), validAnswers(), nil)

	latest, err = svc.GetLatestCheckin(ctx, "u1")
	if err != nil {
		t.Fatalf("GetLatestCheckin error: %v", err)
	}
	if latest == nil || !latest.WeekEndingDate.Equal(utcDate(2025, time.February, 16)) {
		t.Errorf("latest = %+v, want the Feb 16 week", latest)
	}
}
