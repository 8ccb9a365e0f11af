package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
)

func TestCheckAchievementsFirstCheckin(t *testing.T) {
	ctx := context.Background()
	streaks := newFakeStreakStore()
	streaks.UpsertStreak(ctx, streakState("u1", 1, utcDate(2025, time.March, 2)))
	svc := NewAchievementService(&fakeAchievementStore{}, streaks)

	scores := &model.WellnessScores{Physical: 50, Mental: 50, Relational: 50, FinancialFeeling: 50, Overall: 50}
	keys, err := svc.CheckAchievements(ctx, "u1", scores, 1)
	if err != nil {
		t.Fatalf("CheckAchievements error: %v", err)
	}
	if len(keys) != 1 || keys[0] != "first_checkin" {
		t.Errorf("unlocked %v, want [first_checkin]", keys)
	}
}

func TestCheckAchievementsAppendOnly(t *testing.T) {
	ctx := context.Background()
	streaks := newFakeStreakStore()
	streaks.UpsertStreak(ctx, streakState("u1", 1, utcDate(2025, time.March, 2)))
	store := &fakeAchievementStore{}
	svc := NewAchievementService(store, streaks)

	scores := &model.WellnessScores{Physical: 50, Mental: 50, Relational: 50, FinancialFeeling: 50, Overall: 50}
	if _, err := svc.CheckAchievements(ctx, "u1", scores, 1); err != nil {
		t.Fatalf("CheckAchievements error: %v", err)
	}

	// Evaluating again with the same stats yields nothing new.
	keys, err := svc.CheckAchievements(ctx, "u1", scores, 1)
	if err != nil {
		t.Fatalf("CheckAchievements error: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("second evaluation unlocked %v, want none", keys)
	}
	if len(store.unlocks) != 1 {
		t.Errorf("store holds %d unlocks, want 1", len(store.unlocks))
	}
}

func TestCheckAchievementsScoreAndStreakUnlocks(t *testing.T) {
	ctx := context.Background()
	streaks := newFakeStreakStore()
	state := streakState("u1", 4, utcDate(2025, time.March, 2))
	state.TotalCheckins = 5
	streaks.UpsertStreak(ctx, state)
	svc := NewAchievementService(&fakeAchievementStore{}, streaks)

	scores := &model.WellnessScores{Physical: 95, Mental: 95, Relational: 95, FinancialFeeling: 95, Overall: 95}
	keys, err := svc.CheckAchievements(ctx, "u1", scores, 4)
	if err != nil {
		t.Fatalf("CheckAchievements error: %v", err)
	}

	want := map[string]bool{
		"first_checkin": true,
		"checkins_5":    true,
		"streak_4":      true,
		"balanced_week": true,
		"thriving":      true,
		"calm_mind":     true,
		"money_mindful": true,
	}
	if len(keys) != len(want) {
		t.Fatalf("unlocked %v, want %d keys", keys, len(want))
	}
	for _, key := range keys {
		if !want[key] {
			t.Errorf("unexpected unlock %q", key)
		}
	}
}

func TestGetUserAchievementsAnnotatesUnlocks(t *testing.T) {
	ctx := context.Background()
	streaks := newFakeStreakStore()
	streaks.UpsertStreak(ctx, streakState("u1", 1, utcDate(2025, time.March, 2)))
	svc := NewAchievementService(&fakeAchievementStore{}, streaks)

	scores := &model.WellnessScores{Overall: 50, Physical: 50, Mental: 50, Relational: 50, FinancialFeeling: 50}
	if _, err := svc.CheckAchievements(ctx, "u1", scores, 1); err != nil {
		t.Fatalf("CheckAchievements error: %v", err)
	}

	views, err := svc.GetUserAchievements(ctx, "u1")
	if err != nil {
		t.Fatalf("GetUserAchievements error: %v", err)
	}
	if len(views) != len(AchievementCatalog) {
		t.Fatalf("got %d views, want the full catalog of %d", len(views), len(AchievementCatalog))
	}

	unlocked := 0
	for _, view := range views {
		if view.Unlocked {
			unlocked++
			if view.UnlockedAt == nil {
				t.Errorf("unlocked view %q has no timestamp", view.Key)
			}
		}
	}
	if unlocked != 1 {
		t.Errorf("unlocked count = %d, want 1", unlocked)
	}
}

func TestGetNextAchievements(t *testing.T) {
	ctx := context.Background()
	streaks := newFakeStreakStore()
	state := streakState("u1", 2, utcDate(2025, time.March, 2))
	state.TotalCheckins = 3
	streaks.UpsertStreak(ctx, state)
	svc := NewAchievementService(&fakeAchievementStore{}, streaks)

	scores := &model.WellnessScores{Physical: 60, Mental: 60, Relational: 60, FinancialFeeling: 60, Overall: 60}
	if _, err := svc.CheckAchievements(ctx, "u1", scores, 2); err != nil {
		t.Fatalf("CheckAchievements error: %v", err)
	}

	next, err := svc.GetNextAchievements(ctx, "u1", scores, 2)
	if err != nil {
		t.Fatalf("GetNextAchievements error: %v", err)
	}
	if len(next) == 0 || len(next) > 3 {
		t.Fatalf("got %d suggestions, want 1-3", len(next))
	}
	for i := 1; i < len(next); i++ {
		if next[i].Progress > next[i-1].Progress {
			t.Errorf("suggestions not sorted by progress: %v", next)
		}
	}
	for _, n := range next {
		if n.Key == "first_checkin" {
			t.Error("already-unlocked achievement suggested as next")
		}
		if n.Progress < 0 || n.Progress > 1 {
			t.Errorf("progress %v out of [0,1] for %q", n.Progress, n.Key)
		}
		if n.Message == "" {
			t.Errorf("empty progress message for %q", n.Key)
		}
	}
}
