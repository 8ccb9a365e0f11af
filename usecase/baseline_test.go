package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
)

func TestCalculateBaselinesEmpty(t *testing.T) {
	svc := NewSpendingBaselineService(&fakeCheckinStore{}, newFakeBaselineStore())

	baseline := svc.CalculateBaselines(nil)
	if baseline.WeeksOfData != 0 {
		t.Errorf("WeeksOfData = %d, want 0", baseline.WeeksOfData)
	}
	for _, category := range model.AllCategories {
		if baseline.Categories[category] != nil {
			t.Errorf("category %s = %v, want nil", category, *baseline.Categories[category])
		}
	}
	if baseline.AvgTotalVariable != nil {
		t.Errorf("AvgTotalVariable = %v, want nil", *baseline.AvgTotalVariable)
	}
}

func TestCalculateBaselinesAverages(t *testing.T) {
	svc := NewSpendingBaselineService(&fakeCheckinStore{}, newFakeBaselineStore())

	records := []*model.SpendingRecord{
		{Groceries: floatPtr(100), Dining: floatPtr(50), ImpulseSpending: floatPtr(30)},
		{Groceries: floatPtr(90), Dining: floatPtr(50)},
		{Groceries: floatPtr(110)},
	}

	baseline := svc.CalculateBaselines(records)

	if baseline.WeeksOfData != 3 {
		t.Errorf("WeeksOfData = %d, want 3", baseline.WeeksOfData)
	}
	if got := baseline.Categories[model.CategoryGroceries]; got == nil || *got != 100 {
		t.Errorf("groceries baseline = %v, want 100", got)
	}
	// Dining was reported twice; the average divides by 2, not 3.
	if got := baseline.Categories[model.CategoryDining]; got == nil || *got != 50 {
		t.Errorf("dining baseline = %v, want 50", got)
	}
	// Never reported stays nil, never 0.
	if got := baseline.Categories[model.CategoryTransport]; got != nil {
		t.Errorf("transport baseline = %v, want nil", *got)
	}
	// Impulse spending is tracked but excluded from the variable total:
	// (150 + 140 + 110) / 3.
	if got := baseline.AvgTotalVariable; got == nil || *got != 133.33 {
		t.Errorf("AvgTotalVariable = %v, want 133.33", got)
	}
	if got := baseline.Categories[model.CategoryImpulse]; got == nil || *got != 30 {
		t.Errorf("impulse baseline = %v, want 30", got)
	}
}

func checkinWithSpending(userID string, weekEnding time.Time, spending *model.SpendingRecord) *model.Checkin {
	return &model.Checkin{
		CheckinID:      weekEnding.Format("2006-01-02"),
		UserID:         userID,
		WeekEndingDate: weekEnding,
		Spending:       spending,
		CreatedAt:      weekEnding,
	}
}

func TestUpdateBaselinesInsufficientData(t *testing.T) {
	ctx := context.Background()
	checkins := &fakeCheckinStore{}
	store := newFakeBaselineStore()
	svc := NewSpendingBaselineService(checkins, store)

	week := utcDate(2025, time.January, 12)
	checkins.CreateCheckin(ctx, checkinWithSpending("u1", week, &model.SpendingRecord{Groceries: floatPtr(100)}))
	checkins.CreateCheckin(ctx, checkinWithSpending("u1", week.AddDate(0, 0, -7), &model.SpendingRecord{Groceries: floatPtr(90)}))

	baseline, err := svc.UpdateBaselines(ctx, "u1")
	if err != nil {
		t.Fatalf("UpdateBaselines error: %v", err)
	}
	if !baseline.InsufficientData {
		t.Error("expected insufficient-data flag with 2 weeks of history")
	}
	if baseline.WeeksOfData != 2 {
		t.Errorf("WeeksOfData = %d, want 2", baseline.WeeksOfData)
	}
	if store.upserts != 0 {
		t.Errorf("thin history must not be persisted, got %d upserts", store.upserts)
	}
}

func TestUpdateBaselinesNeverOverwritesWithThinData(t *testing.T) {
	ctx := context.Background()
	checkins := &fakeCheckinStore{}
	store := newFakeBaselineStore()
	svc := NewSpendingBaselineService(checkins, store)

	good := &model.SpendingBaseline{
		UserID:      "u1",
		Categories:  map[string]*float64{model.CategoryGroceries: floatPtr(100)},
		WeeksOfData: 8,
	}
	store.UpsertBaseline(ctx, good)
	store.upserts = 0

	week := utcDate(2025, time.June, 1)
	checkins.CreateCheckin(ctx, checkinWithSpending("u1", week, &model.SpendingRecord{Groceries: floatPtr(500)}))

	baseline, err := svc.UpdateBaselines(ctx, "u1")
	if err != nil {
		t.Fatalf("UpdateBaselines error: %v", err)
	}
	if !baseline.InsufficientData {
		t.Error("expected insufficient-data flag")
	}
	if baseline.WeeksOfData != 8 {
		t.Errorf("existing baseline should be returned untouched, WeeksOfData = %d", baseline.WeeksOfData)
	}
	if got := baseline.Categories[model.CategoryGroceries]; got == nil || *got != 100 {
		t.Errorf("groceries baseline = %v, want the stored 100", got)
	}
	if store.upserts != 0 {
		t.Errorf("thin history overwrote the stored baseline (%d upserts)", store.upserts)
	}
}

func TestUpdateBaselinesRecomputes(t *testing.T) {
	ctx := context.Background()
	checkins := &fakeCheckinStore{}
	store := newFakeBaselineStore()
	svc := NewSpendingBaselineService(checkins, store)

	week := utcDate(2025, time.January, 26)
	for i, amount := range []float64{100, 90, 110} {
		checkins.CreateCheckin(ctx, checkinWithSpending("u1", week.AddDate(0, 0, -7*i),
			&model.SpendingRecord{Groceries: floatPtr(amount)}))
	}

	baseline, err := svc.UpdateBaselines(ctx, "u1")
	if err != nil {
		t.Fatalf("UpdateBaselines error: %v", err)
	}
	if baseline.InsufficientData {
		t.Error("3 weeks of history should be sufficient")
	}
	if got := baseline.Categories[model.CategoryGroceries]; got == nil || *got != 100 {
		t.Errorf("groceries baseline = %v, want 100", got)
	}
	if store.upserts != 1 {
		t.Errorf("expected the recomputed baseline to be persisted once, got %d upserts", store.upserts)
	}
}

func TestCompareToBaselineStatuses(t *testing.T) {
	ctx := context.Background()
	store := newFakeBaselineStore()
	svc := NewSpendingBaselineService(&fakeCheckinStore{}, store)

	store.UpsertBaseline(ctx, &model.SpendingBaseline{
		UserID: "u1",
		Categories: map[string]*float64{
			model.CategoryGroceries: floatPtr(100),
		},
		AvgTotalVariable: floatPtr(100),
		WeeksOfData:      6,
	})

	tests := []struct {
		name       string
		current    float64
		wantPct    float64
		wantStatus string
	}{
		{"far below", 49, -51, model.StatusMuchLower},
		{"exactly -50 percent", 50, -50, model.StatusLower},
		{"exactly -20 percent is normal", 80, -20, model.StatusNormal},
		{"just below -20 percent", 79, -21, model.StatusLower},
		{"unchanged", 100, 0, model.StatusNormal},
		{"just under +20 percent", 119, 19, model.StatusNormal},
		{"exactly +20 percent", 120, 20, model.StatusHigher},
		{"exactly +50 percent", 150, 50, model.StatusHigher},
		{"above +50 percent", 151, 51, model.StatusMuchHigher},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.CompareToBaseline(ctx, "u1", &model.SpendingRecord{Groceries: floatPtr(tt.current)})
			if err != nil {
				t.Fatalf("CompareToBaseline error: %v", err)
			}
			got := result.Categories[model.CategoryGroceries]
			if got.PercentChange != tt.wantPct {
				t.Errorf("percent change = %v, want %v", got.PercentChange, tt.wantPct)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestCompareToBaselineZeroBaseline(t *testing.T) {
	ctx := context.Background()
	store := newFakeBaselineStore()
	svc := NewSpendingBaselineService(&fakeCheckinStore{}, store)

	store.UpsertBaseline(ctx, &model.SpendingBaseline{
		UserID:      "u1",
		Categories:  map[string]*float64{model.CategoryGroceries: floatPtr(100)},
		WeeksOfData: 6,
	})

	// A category with no baseline compares at 0 percent change: brand-new
	// spending is not an anomaly.
	result, err := svc.CompareToBaseline(ctx, "u1", &model.SpendingRecord{Dining: floatPtr(75)})
	if err != nil {
		t.Fatalf("CompareToBaseline error: %v", err)
	}
	dining := result.Categories[model.CategoryDining]
	if dining.PercentChange != 0 {
		t.Errorf("percent change against zero baseline = %v, want 0", dining.PercentChange)
	}
	if dining.Status != model.StatusNormal {
		t.Errorf("status = %q, want %q", dining.Status, model.StatusNormal)
	}
	if dining.Difference != 75 {
		t.Errorf("difference = %v, want 75", dining.Difference)
	}
}

func TestCompareToBaselineTotal(t *testing.T) {
	ctx := context.Background()
	store := newFakeBaselineStore()
	svc := NewSpendingBaselineService(&fakeCheckinStore{}, store)

	store.UpsertBaseline(ctx, &model.SpendingBaseline{
		UserID: "u1",
		Categories: map[string]*float64{
			model.CategoryGroceries: floatPtr(120),
			model.CategoryDining:    floatPtr(60),
		},
		AvgTotalVariable: floatPtr(200),
		WeeksOfData:      5,
	})

	// Variable categories sum to 260; impulse and stress spending stay out
	// of the total.
	current := &model.SpendingRecord{
		Groceries:       floatPtr(150),
		Dining:          floatPtr(90),
		Transport:       floatPtr(20),
		ImpulseSpending: floatPtr(40),
		StressSpending:  floatPtr(25),
	}
	result, err := svc.CompareToBaseline(ctx, "u1", current)
	if err != nil {
		t.Fatalf("CompareToBaseline error: %v", err)
	}
	if result.Total == nil {
		t.Fatal("expected a total comparison")
	}
	if result.Total.Current != 260 {
		t.Errorf("total current = %v, want 260", result.Total.Current)
	}
	if result.Total.Baseline != 200 {
		t.Errorf("total baseline = %v, want 200", result.Total.Baseline)
	}
	if result.Total.Difference != 60 {
		t.Errorf("total difference = %v, want 60", result.Total.Difference)
	}
	if result.Total.PercentChange != 30 {
		t.Errorf("total percent change = %v, want 30", result.Total.PercentChange)
	}
	if result.Total.Status != model.StatusHigher {
		t.Errorf("total status = %q, want %q", result.Total.Status, model.StatusHigher)
	}
}

func TestCompareToBaselineInsufficientData(t *testing.T) {
	ctx := context.Background()
	svc := NewSpendingBaselineService(&fakeCheckinStore{}, newFakeBaselineStore())

	result, err := svc.CompareToBaseline(ctx, "u1", &model.SpendingRecord{Groceries: floatPtr(100)})
	if err != nil {
		t.Fatalf("CompareToBaseline error: %v", err)
	}
	if !result.InsufficientData {
		t.Error("expected insufficient-data result with no stored baseline")
	}
	if result.Categories != nil || result.Total != nil {
		t.Error("insufficient-data result should carry no comparisons")
	}
}
