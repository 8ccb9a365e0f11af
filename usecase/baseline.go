package usecase

import (
	"context"
	"time"

	"main/model"
)

const (
	DefaultRollingWeeks = 12
	DefaultMinWeeks     = 3
)

// CheckinReader is the slice of the check-in repository the baseline service
// needs: recent history, newest first.
type CheckinReader interface {
	GetRecentCheckins(ctx context.Context, userID string, limit int) ([]*model.Checkin, error)
}

// BaselineStore persists per-user spending baselines. GetBaseline returns
// (nil, nil) when nothing is stored yet.
type BaselineStore interface {
	GetBaseline(ctx context.Context, userID string) (*model.SpendingBaseline, error)
	UpsertBaseline(ctx context.Context, baseline *model.SpendingBaseline) error
}

// SpendingBaselineService maintains rolling per-category spending averages
// and classifies a new week's spending against them.
type SpendingBaselineService struct {
	checkins CheckinReader
	store    BaselineStore

	// RollingWeeks bounds how much history is considered; MinWeeks is the
	// minimum history required before a baseline is trusted.
	RollingWeeks int
	MinWeeks     int
}

func NewSpendingBaselineService(checkins CheckinReader, store BaselineStore) *SpendingBaselineService {
	return &SpendingBaselineService{
		checkins:     checkins,
		store:        store,
		RollingWeeks: DefaultRollingWeeks,
		MinWeeks:     DefaultMinWeeks,
	}
}

// CalculateBaselines averages each category over the weeks that reported it.
// A category never reported stays nil rather than becoming 0. The total
// average only counts weeks that reported at least one variable category,
// treating missing categories as 0 inside that week's sum.
func (svc *SpendingBaselineService) CalculateBaselines(records []*model.SpendingRecord) *model.SpendingBaseline {
	baseline := &model.SpendingBaseline{
		Categories:  make(map[string]*float64, len(model.AllCategories)),
		WeeksOfData: len(records),
	}

	for _, category := range model.AllCategories {
		var sum float64
		var count int
		for _, rec := range records {
			if amount := rec.Amount(category); amount != nil {
				sum += *amount
				count++
			}
		}
		if count == 0 {
			baseline.Categories[category] = nil
			continue
		}
		avg := round2(sum / float64(count))
		baseline.Categories[category] = &avg
	}

	var totalSum float64
	var totalWeeks int
	for _, rec := range records {
		var weekTotal float64
		reported := false
		for _, category := range model.VariableCategories {
			if amount := rec.Amount(category); amount != nil {
				weekTotal += *amount
				reported = true
			}
		}
		if reported {
			totalSum += weekTotal
			totalWeeks++
		}
	}
	if totalWeeks > 0 {
		avg := round2(totalSum / float64(totalWeeks))
		baseline.AvgTotalVariable = &avg
	}

	return baseline
}

// UpdateBaselines recomputes and persists the user's baseline from the most
// recent history. When fewer than MinWeeks weeks exist, the stored baseline
// is returned unchanged (flagged insufficient) so a good baseline is never
// overwritten by a thin one; with no stored baseline an all-nil skeleton is
// returned instead.
func (svc *SpendingBaselineService) UpdateBaselines(ctx context.Context, userID string) (*model.SpendingBaseline, error) {
	checkins, err := svc.checkins.GetRecentCheckins(ctx, userID, svc.RollingWeeks)
	if err != nil {
		return nil, err
	}

	records := make([]*model.SpendingRecord, 0, len(checkins))
	for _, checkin := range checkins {
		if checkin.Spending != nil {
			records = append(records, checkin.Spending)
		}
	}

	if len(records) < svc.MinWeeks {
		existing, err := svc.store.GetBaseline(ctx, userID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.InsufficientData = true
			return existing, nil
		}
		skeleton := svc.CalculateBaselines(nil)
		skeleton.UserID = userID
		skeleton.WeeksOfData = len(records)
		skeleton.InsufficientData = true
		return skeleton, nil
	}

	baseline := svc.CalculateBaselines(records)
	baseline.UserID = userID
	baseline.UpdatedAt = time.Now()

	if err := svc.store.UpsertBaseline(ctx, baseline); err != nil {
		return nil, err
	}
	return baseline, nil
}

// GetBaselines returns the stored baseline or nil when none exists.
func (svc *SpendingBaselineService) GetBaselines(ctx context.Context, userID string) (*model.SpendingBaseline, error) {
	return svc.store.GetBaseline(ctx, userID)
}

// CompareToBaseline classifies one week's spending against the stored
// baseline. Missing amounts count as 0 for the comparison only; the
// underlying averages never treat missing as 0.
func (svc *SpendingBaselineService) CompareToBaseline(ctx context.Context, userID string, current *model.SpendingRecord) (*model.ComparisonResult, error) {
	baseline, err := svc.store.GetBaseline(ctx, userID)
	if err != nil {
		return nil, err
	}
	if baseline == nil || baseline.WeeksOfData < svc.MinWeeks {
		return &model.ComparisonResult{InsufficientData: true}, nil
	}

	result := &model.ComparisonResult{
		Categories: make(map[string]model.CategoryComparison, len(model.AllCategories)),
	}

	for _, category := range model.AllCategories {
		cur := valueOrZero(current.Amount(category))
		base := valueOrZero(baseline.Categories[category])
		result.Categories[category] = compareAmounts(cur, base)
	}

	var currentTotal float64
	for _, category := range model.VariableCategories {
		currentTotal += valueOrZero(current.Amount(category))
	}
	total := compareAmounts(currentTotal, valueOrZero(baseline.AvgTotalVariable))
	result.Total = &total

	return result, nil
}

func compareAmounts(current, baseline float64) model.CategoryComparison {
	// A zero baseline yields a zero percent change regardless of the current
	// amount: a brand-new spending category is not flagged as an anomaly.
	var pct float64
	if baseline != 0 {
		pct = round2((current - baseline) / baseline * 100)
	}
	return model.CategoryComparison{
		Current:       current,
		Baseline:      baseline,
		Difference:    round2(current - baseline),
		PercentChange: pct,
		Status:        spendingStatus(pct),
	}
}

// spendingStatus buckets a percent change. Boundaries are deliberate:
// exactly -20 is normal, exactly 50 is higher.
func spendingStatus(pct float64) string {
	switch {
	case pct < -50:
		return model.StatusMuchLower
	case pct < -20:
		return model.StatusLower
	case pct < 20:
		return model.StatusNormal
	case pct <= 50:
		return model.StatusHigher
	default:
		return model.StatusMuchHigher
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
