package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stubCheckinReader struct {
	checkins []*model.Checkin
}

func (s *stubCheckinReader) GetRecentCheckins(_ context.Context, _ string, limit int) ([]*model.Checkin, error) {
	if limit > 0 && len(s.checkins) > limit {
		return s.checkins[:limit], nil
	}
	return s.checkins, nil
}

type stubBaselineStore struct {
	baselines map[string]*model.SpendingBaseline
}

func (s *stubBaselineStore) GetBaseline(_ context.Context, userID string) (*model.SpendingBaseline, error) {
	return s.baselines[userID], nil
}

func (s *stubBaselineStore) UpsertBaseline(_ context.Context, baseline *model.SpendingBaseline) error {
	s.baselines[baseline.UserID] = baseline
	return nil
}

func newRefreshContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/spending/baseline/refresh", nil)
	c.Set("user_id", "u1")
	return c, w
}

func floatPtr(v float64) *float64 { return &v }

func TestRefreshBaselineCountsInsufficientData(t *testing.T) {
	reader := &stubCheckinReader{}
	store := &stubBaselineStore{baselines: make(map[string]*model.SpendingBaseline)}
	h := NewSpendingHandler(usecase.NewSpendingBaselineService(reader, store))

	counter := utils.BaselineRefreshes.WithLabelValues("insufficient_data")
	before := testutil.ToFloat64(counter)

	c, w := newRefreshContext(t)
	h.RefreshBaseline(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("insufficient_data refreshes = %v, want %v", got, before+1)
	}
}

func TestRefreshBaselineCountsUpdated(t *testing.T) {
	week := time.Date(2025, time.February, 9, 0, 0, 0, 0, time.UTC)
	reader := &stubCheckinReader{}
	for i := 0; i < 3; i++ {
		reader.checkins = append(reader.checkins, &model.Checkin{
			UserID:         "u1",
			WeekEndingDate: week.AddDate(0, 0, -7*i),
			Spending:       &model.SpendingRecord{Groceries: floatPtr(100)},
		})
	}
	store := &stubBaselineStore{baselines: make(map[string]*model.SpendingBaseline)}
	h := NewSpendingHandler(usecase.NewSpendingBaselineService(reader, store))

	counter := utils.BaselineRefreshes.WithLabelValues("updated")
	before := testutil.ToFloat64(counter)

	c, w := newRefreshContext(t)
	h.RefreshBaseline(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("updated refreshes = %v, want %v", got, before+1)
	}
	if store.baselines["u1"] == nil {
		t.Error("refresh with enough history should persist a baseline")
	}
}
