package report

import (
	"context"
	"fmt"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

const (
	topCommodities = 15
	topCountries   = 15
)

// Revenue assembles the customs revenue analysis report: headline cover,
// executive summary, yearly and monthly trends, commodity Pareto,
// country breakdown and a methodology appendix.
func (a *Assembler) Revenue(ctx context.Context) (*domain.Report, error) {
	summary, err := a.calc.ExecutiveSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble revenue report: %w", err)
	}

	rep := &domain.Report{
		Title:    "Customs Revenue Analysis",
		Subtitle: "Declaration revenue trends, concentration and composition",
		Cover: domain.Cover{
			Metrics: []domain.CoverMetric{
				{Label: "Total Declarations", Value: summary.Metrics["Total Declarations"], Note: summary.Period},
				{Label: "Total Tax Collected", Value: summary.Metrics["Total Tax Collected"]},
				{Label: "Total Import Value", Value: summary.Metrics["Total Import Value"]},
				{Label: "YoY Revenue Growth", Value: summary.Metrics["YoY Revenue Growth"]},
			},
			Footer: "Generated " + summary.GeneratedAt,
		},
	}

	rep.Sheets = append(rep.Sheets, summarySheet(summary))

	yearly, err := a.yearlyTrendSheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble revenue report: %w", err)
	}
	rep.Sheets = append(rep.Sheets, yearly)

	monthly, err := a.monthlyTrendSheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble revenue report: %w", err)
	}
	rep.Sheets = append(rep.Sheets, monthly)

	commodity, err := a.commoditySheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble revenue report: %w", err)
	}
	rep.Sheets = append(rep.Sheets, commodity)

	country, err := a.countrySheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble revenue report: %w", err)
	}
	rep.Sheets = append(rep.Sheets, country)

	rep.Sheets = append(rep.Sheets, methodologySheet(), glossarySheet())
	return rep, nil
}

func summarySheet(summary *domain.ExecutiveSummary) domain.Sheet {
	order := []string{
		"Total Declarations", "Total Tax Collected", "Total Import Value",
		"HS Chapters", "Origin Countries", "YoY Revenue Growth",
		"Monthly Volatility CV", "HHI (Commodity)", "HHI (Country)",
		"Undervaluation Rate",
	}
	rows := make([][]interface{}, 0, len(order))
	for _, k := range order {
		rows = append(rows, []interface{}{k, summary.Metrics[k]})
	}
	return domain.Sheet{
		Name:  "Executive Summary",
		Title: "Executive Summary",
		Table: domain.Table{
			Title: "Headline Indicators (" + summary.Period + ")",
			Columns: []domain.Column{
				{Name: "Indicator", Kind: domain.ColumnText},
				{Name: "Value", Kind: domain.ColumnText},
			},
			Rows: rows,
		},
	}
}

func (a *Assembler) yearlyTrendSheet(ctx context.Context) (domain.Sheet, error) {
	points, err := a.calc.YoYGrowth(ctx)
	if err != nil {
		return domain.Sheet{}, err
	}

	rows := make([][]interface{}, 0, len(points))
	for _, p := range points {
		rows = append(rows, []interface{}{p.Period, p.Count, p.Total, p.GrowthPct, p.CountGrowthPct})
	}
	return domain.Sheet{
		Name:  "Yearly Trend",
		Title: "Annual Customs Revenue Trend",
		Table: domain.Table{
			Title: "Revenue by Year",
			Columns: []domain.Column{
				{Name: "Year", Kind: domain.ColumnText},
				{Name: "Declarations", Kind: domain.ColumnInteger},
				{Name: "Total Tax", Kind: domain.ColumnAmount},
				{Name: "YoY Growth %", Kind: domain.ColumnPercent},
				{Name: "Declaration Growth %", Kind: domain.ColumnPercent},
			},
			Rows: rows,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartCombo, Title: "Revenue and Growth by Year", LabelColumn: 1, ValueColumn: 3, LineColumn: 4},
		},
	}, nil
}

func (a *Assembler) monthlyTrendSheet(ctx context.Context) (domain.Sheet, error) {
	points, err := a.calc.MoMGrowth(ctx)
	if err != nil {
		return domain.Sheet{}, err
	}
	vol, err := a.calc.Volatility(ctx)
	if err != nil {
		return domain.Sheet{}, err
	}

	rows := make([][]interface{}, 0, len(points))
	for _, p := range points {
		rows = append(rows, []interface{}{p.Period, p.Count, p.Total, p.GrowthPct})
	}
	return domain.Sheet{
		Name:  "Monthly Trend",
		Title: "Monthly Customs Revenue Trend",
		Table: domain.Table{
			Title: "Revenue by Month (last 36 months)",
			Columns: []domain.Column{
				{Name: "Month", Kind: domain.ColumnText},
				{Name: "Declarations", Kind: domain.ColumnInteger},
				{Name: "Total Tax", Kind: domain.ColumnAmount},
				{Name: "MoM Growth %", Kind: domain.ColumnPercent},
			},
			Rows: rows,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartLine, Title: "Monthly Revenue", LabelColumn: 1, ValueColumn: 3},
		},
		Footnotes: []string{
			fmt.Sprintf("Monthly volatility: CV %.2f%% (%s).", vol.CV, vol.Rating),
		},
	}, nil
}

func (a *Assembler) commoditySheet(ctx context.Context) (domain.Sheet, error) {
	pareto, err := a.calc.ParetoAnalysis(ctx, declarations.DimensionHs2, declarations.ValueTax)
	if err != nil {
		return domain.Sheet{}, err
	}
	hhi, err := a.calc.HHIByDimension(ctx, declarations.DimensionHs2)
	if err != nil {
		return domain.Sheet{}, err
	}

	limit := len(pareto)
	if limit > topCommodities {
		limit = topCommodities
	}
	rows := make([][]interface{}, 0, limit)
	for _, p := range pareto[:limit] {
		rows = append(rows, []interface{}{p.Rank, p.Category, p.Value, p.SharePct, p.CumulativePct, p.Zone})
	}
	return domain.Sheet{
		Name:  "Commodity Pareto",
		Title: "Revenue Concentration by HS Chapter",
		Table: domain.Table{
			Title: fmt.Sprintf("Top %d HS Chapters by Tax", limit),
			Columns: []domain.Column{
				{Name: "Rank", Kind: domain.ColumnInteger},
				{Name: "HS Chapter", Kind: domain.ColumnText},
				{Name: "Total Tax", Kind: domain.ColumnAmount},
				{Name: "Share %", Kind: domain.ColumnPercent},
				{Name: "Cumulative %", Kind: domain.ColumnPercent},
				{Name: "Pareto Zone", Kind: domain.ColumnText},
			},
			Rows: rows,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartBar, Title: "Tax by HS Chapter", LabelColumn: 2, ValueColumn: 3, MaxRows: 10},
			{Kind: domain.ChartDoughnut, Title: "Revenue Share", LabelColumn: 2, ValueColumn: 4, MaxRows: 8},
		},
		Formats: []domain.ConditionalFormat{
			{Kind: domain.FormatDataBar, Column: 3},
		},
		Footnotes: []string{
			fmt.Sprintf("Commodity HHI: %.0f (%s), top 5 chapters hold %.1f%% of revenue across %d chapters.",
				hhi.HHI, hhi.Level, hhi.Top5SharePct, hhi.TotalCategories),
		},
	}, nil
}

func (a *Assembler) countrySheet(ctx context.Context) (domain.Sheet, error) {
	countries, err := a.calc.CountryBreakdown(ctx, topCountries)
	if err != nil {
		return domain.Sheet{}, err
	}
	hhi, err := a.calc.HHIByDimension(ctx, declarations.DimensionCountry)
	if err != nil {
		return domain.Sheet{}, err
	}

	rows := make([][]interface{}, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []interface{}{countryLabel(c.Country), c.Declarations, c.TotalTax, c.TotalValueUSD})
	}
	return domain.Sheet{
		Name:  "Country Breakdown",
		Title: "Imports by Origin Country",
		Table: domain.Table{
			Title: fmt.Sprintf("Top %d Origin Countries by Tax", topCountries),
			Columns: []domain.Column{
				{Name: "Country", Kind: domain.ColumnText},
				{Name: "Declarations", Kind: domain.ColumnInteger},
				{Name: "Total Tax", Kind: domain.ColumnAmount},
				{Name: "Import Value USD", Kind: domain.ColumnAmount},
			},
			Rows: rows,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartBar, Title: "Tax by Origin Country", LabelColumn: 1, ValueColumn: 3, MaxRows: 10},
		},
		Formats: []domain.ConditionalFormat{
			{Kind: domain.FormatDataBar, Column: 3},
		},
		Footnotes: []string{
			fmt.Sprintf("Country HHI: %.0f (%s).", hhi.HHI, hhi.Level),
		},
	}, nil
}

// countryLabel maps the empty origin key to a display label.
func countryLabel(code string) string {
	if code == "" {
		return "Other"
	}
	return code
}

func methodologySheet() domain.Sheet {
	rows := [][]interface{}{
		{"Revenue aggregation", "Declaration items summed per period. Deleted rows are excluded."},
		{"Growth rate", "(current - previous) / previous x 100, rounded to one decimal. Periods without a baseline are omitted."},
		{"Volatility", "Coefficient of variation of monthly revenue: sample standard deviation over mean, x 100."},
		{"Concentration (HHI)", "Sum of squared category shares scaled to 10,000. Below 1,000 competitive, above 1,800 concentrated."},
		{"Pareto zoning", "Categories ranked by value. Cumulative share up to 80% is zone A, up to 95% zone B, the rest zone C."},
		{"Undervaluation", "A declaration counts when its assessed unit value exceeds the declared unit value by the configured ratio."},
		{"Risk score", "Undervaluation rate weighted 3 plus HS change rate weighted 2, with a volume bonus for high-value combinations."},
	}
	return domain.Sheet{
		Name:  "Methodology",
		Title: "Methodology",
		Table: domain.Table{
			Title: "Calculation Notes",
			Columns: []domain.Column{
				{Name: "Topic", Kind: domain.ColumnText},
				{Name: "Method", Kind: domain.ColumnText},
			},
			Rows: rows,
		},
	}
}

func glossarySheet() domain.Sheet {
	rows := [][]interface{}{
		{"HS code", "Harmonized System commodity code. The first two digits are the chapter, the first four the heading."},
		{"Declared value", "Unit value stated by the importer at lodgement."},
		{"Assessed value", "Unit value determined by customs valuation review."},
		{"CV", "Coefficient of variation, standard deviation relative to the mean."},
		{"HHI", "Herfindahl-Hirschman Index, a market concentration measure on a 0-10,000 scale."},
		{"WCO PMM", "World Customs Organization Performance Measurement Mechanism, the KPI framework behind the scorecard."},
		{"TIN", "Taxpayer identification number of the importer."},
	}
	return domain.Sheet{
		Name:  "Glossary",
		Title: "Glossary",
		Table: domain.Table{
			Title: "Terms",
			Columns: []domain.Column{
				{Name: "Term", Kind: domain.ColumnText},
				{Name: "Definition", Kind: domain.ColumnText},
			},
			Rows: rows,
		},
	}
}
