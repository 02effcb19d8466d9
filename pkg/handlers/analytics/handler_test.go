package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/customs-atlas/pkg/models/api"
	storemodels "github.com/de-tools/customs-atlas/pkg/models/store"
	"github.com/de-tools/customs-atlas/pkg/services/kpi"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

// stubStore serves canned aggregates; failSummary makes headline queries
// error to exercise the 500 path.
type stubStore struct {
	failHeadline bool
}

func (s stubStore) RevenueByPeriod(_ context.Context, granularity declarations.Granularity, _ string) ([]storemodels.PeriodAggregate, error) {
	if granularity == declarations.Yearly {
		return []storemodels.PeriodAggregate{
			{Period: "2025", TotalTax: 1200, DeclarationCount: 240, TotalValueUSD: 9000},
			{Period: "2024", TotalTax: 1000, DeclarationCount: 200, TotalValueUSD: 8000},
		}, nil
	}
	return []storemodels.PeriodAggregate{
		{Period: "2025-02", TotalTax: 100},
		{Period: "2025-01", TotalTax: 100},
	}, nil
}

func (s stubStore) CategoryTotals(_ context.Context, _ declarations.Dimension, _ declarations.ValueColumn, _ string) ([]storemodels.CategoryAggregate, error) {
	return []storemodels.CategoryAggregate{{Category: "85", Value: 100}}, nil
}

func (s stubStore) CountryBreakdown(_ context.Context, _ string, _ int) ([]storemodels.CountryBreakdown, error) {
	return []storemodels.CountryBreakdown{}, nil
}

func (s stubStore) UndervaluationByPeriod(_ context.Context, _ string, _ float64) ([]storemodels.UndervaluationAggregate, error) {
	return []storemodels.UndervaluationAggregate{{Period: "2025", UndervalRate: 8.5}}, nil
}

func (s stubStore) MisclassificationByPeriod(_ context.Context, _ string) ([]storemodels.MisclassificationAggregate, error) {
	return []storemodels.MisclassificationAggregate{{Period: "2025", MisclassRate: 3.0}}, nil
}

func (s stubStore) RiskCombinations(_ context.Context, _ string, _ float64, _ int) ([]storemodels.HsCountryRisk, error) {
	return []storemodels.HsCountryRisk{
		{Hs4: "8517", Country: "CN", TotalCount: 100, UndervalCount: 25, HsChangeCount: 10, TotalValueUSD: 150_000_000},
	}, nil
}

func (s stubStore) ImporterRisks(_ context.Context, _ string, _ float64, _, _ int) ([]storemodels.ImporterRisk, error) {
	return []storemodels.ImporterRisk{}, nil
}

func (s stubStore) PriceVariances(_ context.Context, _ string, _ int) ([]storemodels.PriceVariance, error) {
	return []storemodels.PriceVariance{}, nil
}

func (s stubStore) HsChangePatterns(_ context.Context, _ string, _ int) ([]storemodels.HsChangePattern, error) {
	return []storemodels.HsChangePattern{}, nil
}

func (s stubStore) Headline(_ context.Context, _ string) (*storemodels.HeadlineStats, error) {
	if s.failHeadline {
		return nil, fmt.Errorf("connection reset")
	}
	return &storemodels.HeadlineStats{TotalDeclarations: 4800, TotalTax: 2_500_000_000}, nil
}

func newTestRouter(t *testing.T, store declarations.Store) *chi.Mux {
	t.Helper()
	calc, err := kpi.NewCalculator(store, kpi.DefaultSettings())
	require.NoError(t, err)
	h := NewHandler(calc)

	router := chi.NewRouter()
	router.Get("/api/v1/summary", h.GetSummary)
	router.Get("/api/v1/scorecard", h.GetScorecard)
	router.Get("/api/v1/revenue/{period}", h.GetRevenue)
	router.Get("/api/v1/risk/combinations", h.GetRiskCombinations)
	return router
}

func TestGetSummary(t *testing.T) {
	router := newTestRouter(t, stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got api.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(4800), got.TotalDeclarations)
	assert.Equal(t, 20.0, got.YoYGrowthPct)
	assert.Equal(t, 8.5, got.UndervalRate)
}

func TestGetSummary_StoreError(t *testing.T) {
	router := newTestRouter(t, stubStore{failHeadline: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetScorecard(t *testing.T) {
	router := newTestRouter(t, stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scorecard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []api.ScorecardEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 5)

	codes := make([]string, 0, len(got))
	for _, e := range got {
		codes = append(codes, e.Code)
	}
	assert.Contains(t, codes, "RC004")
	assert.Contains(t, codes, "RM005")
}

func TestGetRevenue(t *testing.T) {
	router := newTestRouter(t, stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/revenue/yearly", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []api.RevenuePoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2025", got[0].Period)
	assert.Equal(t, 1200.0, got[0].TotalTax)
}

func TestGetRevenue_BadPeriod(t *testing.T) {
	router := newTestRouter(t, stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/revenue/weekly", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRiskCombinations(t *testing.T) {
	router := newTestRouter(t, stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk/combinations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got []api.RiskCombination
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "8517", got[0].Hs4)
	assert.Equal(t, "HIGH", got[0].Grade)
}
