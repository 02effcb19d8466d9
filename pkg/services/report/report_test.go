package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	storemodels "github.com/de-tools/customs-atlas/pkg/models/store"
	"github.com/de-tools/customs-atlas/pkg/services/kpi"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

// fakeStore serves canned aggregates for assembly tests.
type fakeStore struct{}

func (fakeStore) RevenueByPeriod(_ context.Context, granularity declarations.Granularity, _ string) ([]storemodels.PeriodAggregate, error) {
	if granularity == declarations.Yearly {
		return []storemodels.PeriodAggregate{
			{Period: "2025", TotalTax: 1200, DeclarationCount: 240},
			{Period: "2024", TotalTax: 1000, DeclarationCount: 200},
		}, nil
	}
	return []storemodels.PeriodAggregate{
		{Period: "2025-03", TotalTax: 110},
		{Period: "2025-02", TotalTax: 90},
		{Period: "2025-01", TotalTax: 100},
	}, nil
}

func (fakeStore) CategoryTotals(_ context.Context, _ declarations.Dimension, _ declarations.ValueColumn, _ string) ([]storemodels.CategoryAggregate, error) {
	return []storemodels.CategoryAggregate{
		{Category: "85", Value: 600},
		{Category: "87", Value: 300},
		{Category: "39", Value: 100},
	}, nil
}

func (fakeStore) CountryBreakdown(_ context.Context, _ string, _ int) ([]storemodels.CountryBreakdown, error) {
	return []storemodels.CountryBreakdown{
		{Country: "CN", Declarations: 500, TotalTax: 700, TotalValueUSD: 9000},
		{Country: "", Declarations: 10, TotalTax: 5, TotalValueUSD: 50},
	}, nil
}

func (fakeStore) UndervaluationByPeriod(_ context.Context, _ string, _ float64) ([]storemodels.UndervaluationAggregate, error) {
	return []storemodels.UndervaluationAggregate{
		{Period: "2025", TotalCount: 400, UndervalCount: 32, UndervalRate: 8.0, EstimatedLossUSD: 1_500_000},
		{Period: "2024", TotalCount: 380, UndervalCount: 19, UndervalRate: 5.0, EstimatedLossUSD: 900_000},
	}, nil
}

func (fakeStore) MisclassificationByPeriod(_ context.Context, _ string) ([]storemodels.MisclassificationAggregate, error) {
	return []storemodels.MisclassificationAggregate{
		{Period: "2025", TotalCount: 400, MisclassCount: 12, MisclassRate: 3.0},
	}, nil
}

func (fakeStore) RiskCombinations(_ context.Context, _ string, _ float64, _ int) ([]storemodels.HsCountryRisk, error) {
	return []storemodels.HsCountryRisk{
		{Hs4: "8517", Country: "CN", TotalCount: 100, UndervalCount: 25, HsChangeCount: 10, TotalValueUSD: 150_000_000},
		{Hs4: "6402", Country: "VN", TotalCount: 80, UndervalCount: 4, HsChangeCount: 2, TotalValueUSD: 2_000_000},
	}, nil
}

func (fakeStore) ImporterRisks(_ context.Context, _ string, _ float64, _, _ int) ([]storemodels.ImporterRisk, error) {
	return []storemodels.ImporterRisk{
		{TIN: "500123456", ImporterName: "ACME Trading", TotalCount: 60, UndervalCount: 12, HsChangeCount: 6, TotalValueUSD: 4_000_000},
	}, nil
}

func (fakeStore) PriceVariances(_ context.Context, _ string, _ int) ([]storemodels.PriceVariance, error) {
	return []storemodels.PriceVariance{
		{HsCode: "85171200", Count: 120, AvgPrice: 210.5, StdPrice: 410.2, MinPrice: 2.1, MaxPrice: 4100, CvPct: 194.9},
	}, nil
}

func (fakeStore) HsChangePatterns(_ context.Context, _ string, _ int) ([]storemodels.HsChangePattern, error) {
	return []storemodels.HsChangePattern{
		{DeclaredHs: "85171100", AssessedHs: "85171200", Count: 18, TotalValueUSD: 600_000},
	}, nil
}

func (fakeStore) Headline(_ context.Context, _ string) (*storemodels.HeadlineStats, error) {
	return &storemodels.HeadlineStats{
		TotalDeclarations: 4800,
		TotalTax:          2_500_000_000,
		TotalValueUSD:     310_000_000,
		HsChapters:        72,
		Countries:         58,
	}, nil
}

func newAssembler(t *testing.T) *Assembler {
	t.Helper()
	calc, err := kpi.NewCalculator(fakeStore{}, kpi.DefaultSettings())
	require.NoError(t, err)
	a, err := NewAssembler(calc)
	require.NoError(t, err)
	return a
}

func TestRevenueReport(t *testing.T) {
	rep, err := newAssembler(t).Revenue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Customs Revenue Analysis", rep.Title)
	require.Len(t, rep.Cover.Metrics, 4)
	assert.Equal(t, "4,800", rep.Cover.Metrics[0].Value)

	names := make([]string, 0, len(rep.Sheets))
	for _, s := range rep.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"Executive Summary", "Yearly Trend", "Monthly Trend",
		"Commodity Pareto", "Country Breakdown", "Methodology", "Glossary",
	}, names)

	yearly := rep.Sheets[1]
	require.Len(t, yearly.Table.Rows, 1)
	assert.Equal(t, "2025", yearly.Table.Rows[0][0])
	assert.Equal(t, 20.0, yearly.Table.Rows[0][3])
	require.Len(t, yearly.Charts, 1)
	assert.Equal(t, domain.ChartCombo, yearly.Charts[0].Kind)

	country := rep.Sheets[4]
	assert.Equal(t, "Other", country.Table.Rows[1][0])
	require.Len(t, country.Footnotes, 1)
	assert.Contains(t, country.Footnotes[0], "Country HHI")
}

func TestAnomalyReport(t *testing.T) {
	rep, err := newAssembler(t).Anomaly(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Customs Anomaly Detection", rep.Title)
	require.Len(t, rep.Cover.Metrics, 4)
	assert.Equal(t, "8.00%", rep.Cover.Metrics[0].Value)
	assert.Equal(t, "$2M", rep.Cover.Metrics[1].Value)

	require.Len(t, rep.Sheets, 6)

	risk := rep.Sheets[1]
	assert.Equal(t, "HS-Country Risk", risk.Name)
	require.NotEmpty(t, risk.Table.Rows)
	// 25% underval x3 + 10% changes x2 + high-volume bonus 10 = 105.
	first := risk.Table.Rows[0]
	assert.Equal(t, "8517", first[0])
	assert.Equal(t, 105.0, first[6])
	assert.Equal(t, domain.RiskGradeHigh, first[7])

	importers := rep.Sheets[2]
	require.Len(t, importers.Table.Rows, 1)
	assert.Equal(t, "ACME Trading", importers.Table.Rows[0][1])
}

func TestScorecardReport(t *testing.T) {
	rep, err := newAssembler(t).Scorecard(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Sheets, 1)
	rows := rep.Sheets[0].Table.Rows
	require.Len(t, rows, 5)
	for _, row := range rows {
		status, ok := row[7].(string)
		require.True(t, ok)
		assert.Contains(t, []string{
			domain.StatusExcellent, domain.StatusGood, domain.StatusNeedsImprovement,
		}, status)
	}
}
