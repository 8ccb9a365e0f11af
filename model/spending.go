package model

import "time"

// Spending category keys. The first seven are the "variable" categories that
// roll up into the weekly total; impulse and stress spending are tracked
// separately and never contribute to the total.
const (
	CategoryGroceries     = "groceries"
	CategoryDining        = "dining"
	CategoryEntertainment = "entertainment"
	CategoryShopping      = "shopping"
	CategoryTransport     = "transport"
	CategoryUtilities     = "utilities"
	CategoryOther         = "other"
	CategoryImpulse       = "impulse_spending"
	CategoryStress        = "stress_spending"
)

// VariableCategories are the categories summed into a week's total.
var VariableCategories = []string{
	CategoryGroceries,
	CategoryDining,
	CategoryEntertainment,
	CategoryShopping,
	CategoryTransport,
	CategoryUtilities,
	CategoryOther,
}

// AllCategories lists every comparable category, variable ones first.
var AllCategories = append(append([]string{}, VariableCategories...), CategoryImpulse, CategoryStress)

// SpendingRecord holds one week's spending estimates. A nil field means the
// category was not reported that week, which is different from reporting 0.
type SpendingRecord struct {
	Groceries       *float64 `bson:"groceries,omitempty" json:"groceries,omitempty"`
	Dining          *float64 `bson:"dining,omitempty" json:"dining,omitempty"`
	Entertainment   *float64 `bson:"entertainment,omitempty" json:"entertainment,omitempty"`
	Shopping        *float64 `bson:"shopping,omitempty" json:"shopping,omitempty"`
	Transport       *float64 `bson:"transport,omitempty" json:"transport,omitempty"`
	Utilities       *float64 `bson:"utilities,omitempty" json:"utilities,omitempty"`
	Other           *float64 `bson:"other,omitempty" json:"other,omitempty"`
	ImpulseSpending *float64 `bson:"impulse_spending,omitempty" json:"impulse_spending,omitempty"`
	StressSpending  *float64 `bson:"stress_spending,omitempty" json:"stress_spending,omitempty"`
}

// Amount returns the reported amount for a category key, or nil when the
// category was not reported. Unknown keys return nil.
func (r *SpendingRecord) Amount(category string) *float64 {
	if r == nil {
		return nil
	}
	switch category {
	case CategoryGroceries:
		return r.Groceries
	case CategoryDining:
		return r.Dining
	case CategoryEntertainment:
		return r.Entertainment
	case CategoryShopping:
		return r.Shopping
	case CategoryTransport:
		return r.Transport
	case CategoryUtilities:
		return r.Utilities
	case CategoryOther:
		return r.Other
	case CategoryImpulse:
		return r.ImpulseSpending
	case CategoryStress:
		return r.StressSpending
	}
	return nil
}

// SpendingBaseline is the rolling per-category average for a user. A nil
// category average means the category was never reported inside the window.
type SpendingBaseline struct {
	UserID           string              `bson:"user_id" json:"user_id"`
	Categories       map[string]*float64 `bson:"categories" json:"categories"`
	AvgTotalVariable *float64            `bson:"avg_total_variable" json:"avg_total_variable"`
	WeeksOfData      int                 `bson:"weeks_of_data" json:"weeks_of_data"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updated_at"`
	// InsufficientData marks a baseline that could not be (re)computed from
	// enough history. Never persisted.
	InsufficientData bool `bson:"-" json:"insufficient_data,omitempty"`
}

// Comparison statuses, bucketed by percent change against the baseline.
const (
	StatusMuchLower  = "much_lower"
	StatusLower      = "lower"
	StatusNormal     = "normal"
	StatusHigher     = "higher"
	StatusMuchHigher = "much_higher"
)

// CategoryComparison is one category's current-vs-baseline verdict.
type CategoryComparison struct {
	Current       float64 `json:"current"`
	Baseline      float64 `json:"baseline"`
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percent_change"`
	Status        string  `json:"status"`
}

// ComparisonResult compares one week's spending against the stored baseline.
type ComparisonResult struct {
	InsufficientData bool                          `json:"insufficient_data,omitempty"`
	Categories       map[string]CategoryComparison `json:"categories,omitempty"`
	Total            *CategoryComparison           `json:"total,omitempty"`
}
