package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	storemodels "github.com/de-tools/customs-atlas/pkg/models/store"
	"github.com/de-tools/customs-atlas/pkg/services/analytics"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

// minImporterFlagged is the minimum flagged-declaration count before an
// importer appears on the at-risk list at all.
const minImporterFlagged = 3

// Settings are the tunable analysis parameters for a calculator run.
type Settings struct {
	YearFilter              string
	UndervalThreshold       float64
	MinObservations         int
	MinImporterObservations int
	Weights                 analytics.RiskWeights
	VolumeTiers             analytics.VolumeTiers
	GradeBands              analytics.GradeBands
}

// DefaultSettings mirrors the built-in profile.
func DefaultSettings() Settings {
	return Settings{
		YearFilter:              "23",
		UndervalThreshold:       analytics.DefaultUndervalThreshold,
		MinObservations:         50,
		MinImporterObservations: 20,
		Weights:                 analytics.DefaultRiskWeights(),
		VolumeTiers:             analytics.DefaultVolumeTiers(),
		GradeBands:              analytics.DefaultGradeBands(),
	}
}

// Calculator binds the declarations store to the analytics engine and
// produces the derived views the reports and the API serve.
type Calculator struct {
	store    declarations.Store
	settings Settings
}

func NewCalculator(store declarations.Store, settings Settings) (*Calculator, error) {
	if store == nil {
		return nil, fmt.Errorf("declarations store is nil")
	}
	if settings.UndervalThreshold <= 1 {
		return nil, fmt.Errorf("undervaluation threshold must be above 1, got %v", settings.UndervalThreshold)
	}
	return &Calculator{store: store, settings: settings}, nil
}

// RevenueByPeriod passes through the raw period aggregates.
func (c *Calculator) RevenueByPeriod(ctx context.Context, granularity declarations.Granularity) ([]storemodels.PeriodAggregate, error) {
	return c.store.RevenueByPeriod(ctx, granularity, c.settings.YearFilter)
}

// YoYGrowth returns annual revenue with year-over-year growth, oldest
// period first. Rows with no prior-year baseline are dropped.
func (c *Calculator) YoYGrowth(ctx context.Context) ([]domain.GrowthPoint, error) {
	rows, err := c.store.RevenueByPeriod(ctx, declarations.Yearly, c.settings.YearFilter)
	if err != nil {
		return nil, fmt.Errorf("yoy growth: %w", err)
	}
	return analytics.PeriodGrowth(rows), nil
}

// MoMGrowth returns monthly revenue with month-over-month growth.
func (c *Calculator) MoMGrowth(ctx context.Context) ([]domain.GrowthPoint, error) {
	rows, err := c.store.RevenueByPeriod(ctx, declarations.Monthly, c.settings.YearFilter)
	if err != nil {
		return nil, fmt.Errorf("mom growth: %w", err)
	}
	return analytics.PeriodGrowth(rows), nil
}

// Volatility measures the dispersion of monthly revenue.
func (c *Calculator) Volatility(ctx context.Context) (domain.VolatilitySummary, error) {
	rows, err := c.store.RevenueByPeriod(ctx, declarations.Monthly, c.settings.YearFilter)
	if err != nil {
		return domain.VolatilitySummary{}, fmt.Errorf("volatility: %w", err)
	}
	totals := make([]float64, 0, len(rows))
	for _, r := range rows {
		totals = append(totals, r.TotalTax)
	}
	return analytics.Volatility(totals), nil
}

// HHIByDimension measures revenue concentration across HS chapters or
// origin countries. Commodity concentration weighs tax, country
// concentration weighs declared USD value.
func (c *Calculator) HHIByDimension(ctx context.Context, dimension declarations.Dimension) (domain.ConcentrationSummary, error) {
	value := declarations.ValueTax
	if dimension == declarations.DimensionCountry {
		value = declarations.ValueUSD
	}
	rows, err := c.store.CategoryTotals(ctx, dimension, value, c.settings.YearFilter)
	if err != nil {
		return domain.ConcentrationSummary{}, fmt.Errorf("hhi %s: %w", dimension, err)
	}
	return analytics.Concentration(string(dimension), rows), nil
}

// ParetoAnalysis ranks categories and assigns 80/95 cumulative zones.
func (c *Calculator) ParetoAnalysis(ctx context.Context, dimension declarations.Dimension, value declarations.ValueColumn) ([]domain.ParetoRow, error) {
	rows, err := c.store.CategoryTotals(ctx, dimension, value, c.settings.YearFilter)
	if err != nil {
		return nil, fmt.Errorf("pareto %s: %w", dimension, err)
	}
	return analytics.Pareto(rows), nil
}

// CountryBreakdown returns the top origin countries by collected tax.
func (c *Calculator) CountryBreakdown(ctx context.Context, limit int) ([]storemodels.CountryBreakdown, error) {
	return c.store.CountryBreakdown(ctx, c.settings.YearFilter, limit)
}

// UndervaluationStats returns per-year undervaluation counts and the
// estimated revenue loss, newest year first.
func (c *Calculator) UndervaluationStats(ctx context.Context) ([]storemodels.UndervaluationAggregate, error) {
	return c.store.UndervaluationByPeriod(ctx, c.settings.YearFilter, c.settings.UndervalThreshold)
}

// MisclassificationRates returns per-year HS reassessment rates, newest
// year first.
func (c *Calculator) MisclassificationRates(ctx context.Context) ([]storemodels.MisclassificationAggregate, error) {
	return c.store.MisclassificationByPeriod(ctx, c.settings.YearFilter)
}

// RiskByHsCountry scores and grades HS4 x origin-country combinations,
// highest risk first.
func (c *Calculator) RiskByHsCountry(ctx context.Context) ([]domain.RiskRecord, error) {
	rows, err := c.store.RiskCombinations(ctx, c.settings.YearFilter, c.settings.UndervalThreshold, c.settings.MinObservations)
	if err != nil {
		return nil, fmt.Errorf("risk combinations: %w", err)
	}
	return analytics.ScoreCombinations(rows, c.settings.Weights, c.settings.VolumeTiers, c.settings.GradeBands), nil
}

// ImporterRisks scores importers with repeated flagged declarations.
func (c *Calculator) ImporterRisks(ctx context.Context) ([]domain.ImporterRiskRecord, error) {
	rows, err := c.store.ImporterRisks(ctx, c.settings.YearFilter, c.settings.UndervalThreshold,
		c.settings.MinImporterObservations, minImporterFlagged)
	if err != nil {
		return nil, fmt.Errorf("importer risks: %w", err)
	}
	return analytics.ScoreImporters(rows, c.settings.Weights), nil
}

// PriceVariances returns HS codes with abnormal unit-price dispersion.
func (c *Calculator) PriceVariances(ctx context.Context) ([]storemodels.PriceVariance, error) {
	return c.store.PriceVariances(ctx, c.settings.YearFilter, c.settings.MinObservations)
}

// HsChangePatterns returns recurring declared-to-assessed HS rewrites.
func (c *Calculator) HsChangePatterns(ctx context.Context) ([]storemodels.HsChangePattern, error) {
	return c.store.HsChangePatterns(ctx, c.settings.YearFilter, minImporterFlagged)
}

// ExecutiveSummary combines headline totals with the latest growth,
// volatility, concentration and undervaluation readings.
func (c *Calculator) ExecutiveSummary(ctx context.Context) (*domain.ExecutiveSummary, error) {
	headline, err := c.store.Headline(ctx, c.settings.YearFilter)
	if err != nil {
		return nil, fmt.Errorf("executive summary: %w", err)
	}

	summary := &domain.ExecutiveSummary{
		Period:            fmt.Sprintf("20%s-%d", c.settings.YearFilter, time.Now().Year()),
		TotalDeclarations: headline.TotalDeclarations,
		TotalTax:          headline.TotalTax,
		TotalValueUSD:     headline.TotalValueUSD,
		HsChapters:        headline.HsChapters,
		Countries:         headline.Countries,
		GeneratedAt:       time.Now().Format("2006-01-02 15:04:05"),
	}

	if yoy, err := c.YoYGrowth(ctx); err != nil {
		return nil, err
	} else if len(yoy) > 0 {
		summary.YoYGrowthPct = yoy[len(yoy)-1].GrowthPct
	}

	vol, err := c.Volatility(ctx)
	if err != nil {
		return nil, err
	}
	summary.VolatilityCV = vol.CV

	hhiCommodity, err := c.HHIByDimension(ctx, declarations.DimensionHs2)
	if err != nil {
		return nil, err
	}
	summary.HHICommodity = hhiCommodity.HHI

	hhiCountry, err := c.HHIByDimension(ctx, declarations.DimensionCountry)
	if err != nil {
		return nil, err
	}
	summary.HHICountry = hhiCountry.HHI

	if underval, err := c.UndervaluationStats(ctx); err != nil {
		return nil, err
	} else if len(underval) > 0 {
		summary.UndervalRate = underval[0].UndervalRate
	}

	summary.Metrics = map[string]string{
		"Total Declarations":    FormatCount(summary.TotalDeclarations),
		"Total Tax Collected":   FormatKRW(summary.TotalTax),
		"Total Import Value":    FormatUSD(summary.TotalValueUSD),
		"HS Chapters":           FormatCount(summary.HsChapters),
		"Origin Countries":      FormatCount(summary.Countries),
		"YoY Revenue Growth":    FormatPercent(summary.YoYGrowthPct, 1),
		"Monthly Volatility CV": FormatPercent(summary.VolatilityCV, 2),
		"HHI (Commodity)":       fmt.Sprintf("%.0f", summary.HHICommodity),
		"HHI (Country)":         fmt.Sprintf("%.0f", summary.HHICountry),
		"Undervaluation Rate":   FormatPercent(summary.UndervalRate, 2),
	}
	return summary, nil
}

// Scorecard evaluates the indicators the declarations data can actually
// measure against their benchmarks and targets.
func (c *Calculator) Scorecard(ctx context.Context) ([]domain.ScorecardEntry, error) {
	entries := make([]domain.ScorecardEntry, 0, 5)

	yoy, err := c.YoYGrowth(ctx)
	if err != nil {
		return nil, fmt.Errorf("scorecard: %w", err)
	}
	if len(yoy) > 0 {
		d := definitions["RC004"]
		actual := yoy[len(yoy)-1].GrowthPct
		entries = append(entries, entry(d, d.Name, actual, d.Direction))
	}

	vol, err := c.Volatility(ctx)
	if err != nil {
		return nil, fmt.Errorf("scorecard: %w", err)
	}
	d := definitions["OD002"]
	entries = append(entries, entry(d, d.Name, vol.CV, d.Direction))

	hhi, err := c.HHIByDimension(ctx, declarations.DimensionHs2)
	if err != nil {
		return nil, fmt.Errorf("scorecard: %w", err)
	}
	d = definitions["OD001"]
	entries = append(entries, entry(d, d.Name+" (Commodity)", hhi.HHI, d.Direction))

	underval, err := c.UndervaluationStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("scorecard: %w", err)
	}
	if len(underval) > 0 {
		d = definitions["RM004"]
		// The measured rate is a detection rate, so higher reads as better
		// regardless of the catalog default.
		entries = append(entries, entry(d, d.Name, underval[0].UndervalRate, domain.DirectionHigher))
	}

	misclass, err := c.MisclassificationRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("scorecard: %w", err)
	}
	if len(misclass) > 0 {
		d = definitions["RM005"]
		entries = append(entries, entry(d, d.Name, misclass[0].MisclassRate, d.Direction))
	}
	return entries, nil
}

func entry(d domain.KpiDefinition, name string, actual float64, direction domain.KpiDirection) domain.ScorecardEntry {
	return domain.ScorecardEntry{
		Code:      d.Code,
		Name:      name,
		Category:  d.Category,
		Actual:    actual,
		Benchmark: d.Benchmark,
		Target:    d.Target,
		Unit:      d.Unit,
		Status:    analytics.Status(actual, d.Benchmark, d.Target, direction),
	}
}
