package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"main/model"
)

// AchievementStore persists per-user unlocks. Unlocks are append-only; a
// duplicate Unlock for the same key must be a no-op.
type AchievementStore interface {
	GetUnlocked(ctx context.Context, userID string) ([]*model.UserAchievement, error)
	Unlock(ctx context.Context, unlock *model.UserAchievement) error
}

func streakAchievement(key, name, description, icon string, weeks int) model.AchievementDef {
	return model.AchievementDef{
		Key: key, Name: name, Description: description, Icon: icon,
		Predicate: func(s model.AchievementStats) bool {
			return s.CurrentStreak >= weeks
		},
		Progress: func(s model.AchievementStats) (float64, string) {
			remaining := weeks - s.CurrentStreak
			return float64(s.CurrentStreak) / float64(weeks),
				fmt.Sprintf("%d more consecutive weeks to go", remaining)
		},
	}
}

func countAchievement(key, name, description, icon string, count int) model.AchievementDef {
	return model.AchievementDef{
		Key: key, Name: name, Description: description, Icon: icon,
		Predicate: func(s model.AchievementStats) bool {
			return s.TotalCheckins >= count
		},
		Progress: func(s model.AchievementStats) (float64, string) {
			remaining := count - s.TotalCheckins
			return float64(s.TotalCheckins) / float64(count),
				fmt.Sprintf("%d more check-ins to go", remaining)
		},
	}
}

func scoreAchievement(key, name, description, icon string, pick func(*model.WellnessScores) float64, target float64) model.AchievementDef {
	return model.AchievementDef{
		Key: key, Name: name, Description: description, Icon: icon,
		Predicate: func(s model.AchievementStats) bool {
			return s.LatestScores != nil && pick(s.LatestScores) >= target
		},
		Progress: func(s model.AchievementStats) (float64, string) {
			var current float64
			if s.LatestScores != nil {
				current = pick(s.LatestScores)
			}
			return current / target,
				fmt.Sprintf("reach a score of %.0f (currently %.0f)", target, current)
		},
	}
}

// AchievementCatalog is the fixed set of unlockable milestones, in display
// order.
var AchievementCatalog = []model.AchievementDef{
	countAchievement("first_checkin", "First Steps", "Complete your first weekly check-in", "🌱", 1),
	countAchievement("checkins_5", "Getting Into It", "Complete 5 weekly check-ins", "📅", 5),
	countAchievement("checkins_10", "Committed", "Complete 10 weekly check-ins", "📈", 10),
	countAchievement("checkins_25", "Regular", "Complete 25 weekly check-ins", "🏅", 25),
	countAchievement("checkins_52", "One Year Club", "Complete 52 weekly check-ins", "🎂", 52),
	streakAchievement("streak_4", "One Month Strong", "Check in 4 weeks in a row", "🔥", 4),
	streakAchievement("streak_12", "Quarter Champion", "Check in 12 weeks in a row", "⚡", 12),
	streakAchievement("streak_26", "Half-Year Hero", "Check in 26 weeks in a row", "🌟", 26),
	streakAchievement("streak_52", "Unbreakable", "Check in 52 weeks in a row", "💎", 52),
	{
		Key: "balanced_week", Name: "Well Balanced",
		Description: "Score 70 or higher in all four areas in one week",
		Icon:        "⚖️",
		Predicate: func(s model.AchievementStats) bool {
			sc := s.LatestScores
			return sc != nil && sc.Physical >= 70 && sc.Mental >= 70 &&
				sc.Relational >= 70 && sc.FinancialFeeling >= 70
		},
		Progress: func(s model.AchievementStats) (float64, string) {
			areas := 0
			if sc := s.LatestScores; sc != nil {
				for _, v := range []float64{sc.Physical, sc.Mental, sc.Relational, sc.FinancialFeeling} {
					if v >= 70 {
						areas++
					}
				}
			}
			return float64(areas) / 4, fmt.Sprintf("%d of 4 areas at 70 or higher", areas)
		},
	},
	scoreAchievement("thriving", "Thriving", "Reach an overall wellness score of 90", "🏆",
		func(sc *model.WellnessScores) float64 { return sc.Overall }, 90),
	scoreAchievement("calm_mind", "Calm Mind", "Reach a mental wellness score of 90", "🧘",
		func(sc *model.WellnessScores) float64 { return sc.Mental }, 90),
	scoreAchievement("money_mindful", "Money Mindful", "Reach a financial feeling score of 85", "💰",
		func(sc *model.WellnessScores) float64 { return sc.FinancialFeeling }, 85),
}

// AchievementService evaluates the static catalog against a user's stats
// and records unlocks. Unlocking is one-way.
type AchievementService struct {
	store  AchievementStore
	streak StreakStore
}

func NewAchievementService(store AchievementStore, streak StreakStore) *AchievementService {
	return &AchievementService{store: store, streak: streak}
}

func (svc *AchievementService) unlockedSet(ctx context.Context, userID string) (map[string]*model.UserAchievement, error) {
	unlocked, err := svc.store.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]*model.UserAchievement, len(unlocked))
	for _, u := range unlocked {
		set[u.Key] = u
	}
	return set, nil
}

func (svc *AchievementService) statsFor(ctx context.Context, userID string, latestScores *model.WellnessScores, currentStreak int) (model.AchievementStats, error) {
	stats := model.AchievementStats{
		CurrentStreak: currentStreak,
		LatestScores:  latestScores,
	}
	state, err := svc.streak.GetStreak(ctx, userID)
	if err != nil {
		return stats, err
	}
	if state != nil {
		stats.TotalCheckins = state.TotalCheckins
	}
	return stats, nil
}

// CheckAchievements evaluates every still-locked achievement and unlocks the
// newly satisfied ones, returning their keys in catalog order.
func (svc *AchievementService) CheckAchievements(ctx context.Context, userID string, latestScores *model.WellnessScores, currentStreak int) ([]string, error) {
	unlocked, err := svc.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := svc.statsFor(ctx, userID, latestScores, currentStreak)
	if err != nil {
		return nil, err
	}

	var newKeys []string
	for _, def := range AchievementCatalog {
		if _, done := unlocked[def.Key]; done {
			continue
		}
		if !def.Predicate(stats) {
			continue
		}
		unlock := &model.UserAchievement{
			UserID:     userID,
			Key:        def.Key,
			UnlockedAt: time.Now(),
		}
		if err := svc.store.Unlock(ctx, unlock); err != nil {
			return nil, err
		}
		newKeys = append(newKeys, def.Key)
	}
	return newKeys, nil
}

// GetUserAchievements returns the full catalog annotated with the user's
// unlock state.
func (svc *AchievementService) GetUserAchievements(ctx context.Context, userID string) ([]model.AchievementView, error) {
	unlocked, err := svc.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]model.AchievementView, 0, len(AchievementCatalog))
	for _, def := range AchievementCatalog {
		view := model.AchievementView{
			Key:         def.Key,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
		}
		if u, ok := unlocked[def.Key]; ok {
			view.Unlocked = true
			at := u.UnlockedAt
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}

// GetNextAchievements returns the locked achievements closest to unlocking,
// at most three, each with a progress message.
func (svc *AchievementService) GetNextAchievements(ctx context.Context, userID string, latestScores *model.WellnessScores, currentStreak int) ([]model.NextAchievement, error) {
	unlocked, err := svc.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := svc.statsFor(ctx, userID, latestScores, currentStreak)
	if err != nil {
		return nil, err
	}

	var next []model.NextAchievement
	for _, def := range AchievementCatalog {
		if _, done := unlocked[def.Key]; done {
			continue
		}
		progress, message := def.Progress(stats)
		if progress > 1 {
			progress = 1
		}
		if progress < 0 {
			progress = 0
		}
		next = append(next, model.NextAchievement{
			Key:      def.Key,
			Name:     def.Name,
			Icon:     def.Icon,
			Progress: round2(progress),
			Message:  message,
		})
	}

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Progress > next[j].Progress
	})
	if len(next) > 3 {
		next = next[:3]
	}
	return next, nil
}
