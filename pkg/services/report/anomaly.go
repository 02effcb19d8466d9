package report

import (
	"context"
	"fmt"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	storemodels "github.com/de-tools/customs-atlas/pkg/models/store"
	"github.com/de-tools/customs-atlas/pkg/services/kpi"
)

const topRiskRows = 30

// Anomaly assembles the anomaly detection report: undervaluation and
// misclassification trends, scored HS x country combinations, at-risk
// importers, price dispersion and recurring HS rewrites.
func (a *Assembler) Anomaly(ctx context.Context) (*domain.Report, error) {
	underval, err := a.calc.UndervaluationStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble anomaly report: %w", err)
	}
	misclass, err := a.calc.MisclassificationRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble anomaly report: %w", err)
	}
	combos, err := a.calc.RiskByHsCountry(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble anomaly report: %w", err)
	}
	importers, err := a.calc.ImporterRisks(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble anomaly report: %w", err)
	}

	rep := &domain.Report{
		Title:    "Customs Anomaly Detection",
		Subtitle: "Undervaluation, misclassification and risk scoring",
		Cover:    anomalyCover(underval, misclass, combos, importers),
	}

	rep.Sheets = append(rep.Sheets,
		undervaluationSheet(underval),
		riskCombinationSheet(combos),
		importerSheet(importers),
		misclassificationSheet(misclass),
	)

	variance, err := a.priceVarianceSheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble anomaly report: %w", err)
	}
	rep.Sheets = append(rep.Sheets, variance)

	patterns, err := a.hsChangeSheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble anomaly report: %w", err)
	}
	rep.Sheets = append(rep.Sheets, patterns)
	return rep, nil
}

func anomalyCover(underval []storemodels.UndervaluationAggregate, misclass []storemodels.MisclassificationAggregate, combos []domain.RiskRecord, importers []domain.ImporterRiskRecord) domain.Cover {
	var undervalRate, lossUSD float64
	if len(underval) > 0 {
		undervalRate = underval[0].UndervalRate
		for _, u := range underval {
			lossUSD += u.EstimatedLossUSD
		}
	}
	var misclassRate float64
	if len(misclass) > 0 {
		misclassRate = misclass[0].MisclassRate
	}
	highRisk := 0
	for _, c := range combos {
		if c.Grade == domain.RiskGradeHigh {
			highRisk++
		}
	}
	return domain.Cover{
		Metrics: []domain.CoverMetric{
			{Label: "Undervaluation Rate", Value: kpi.FormatPercent(undervalRate, 2), Note: "latest year"},
			{Label: "Estimated Revenue Loss", Value: kpi.FormatUSD(lossUSD), Note: "all years"},
			{Label: "HS Change Rate", Value: kpi.FormatPercent(misclassRate, 2), Note: "latest year"},
			{Label: "High-risk Combinations", Value: kpi.FormatCount(int64(highRisk)), Note: fmt.Sprintf("%d importers flagged", len(importers))},
		},
	}
}

func undervaluationSheet(rows []storemodels.UndervaluationAggregate) domain.Sheet {
	table := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		table = append(table, []interface{}{r.Period, r.TotalCount, r.UndervalCount, r.UndervalRate, r.EstimatedLossUSD})
	}
	return domain.Sheet{
		Name:  "Undervaluation",
		Title: "Suspected Undervaluation by Year",
		Table: domain.Table{
			Title: "Assessed vs Declared Unit Values",
			Columns: []domain.Column{
				{Name: "Year", Kind: domain.ColumnText},
				{Name: "Assessments", Kind: domain.ColumnInteger},
				{Name: "Flagged", Kind: domain.ColumnInteger},
				{Name: "Rate %", Kind: domain.ColumnPercent},
				{Name: "Estimated Loss USD", Kind: domain.ColumnAmount},
			},
			Rows: table,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartBar, Title: "Undervaluation Rate by Year", LabelColumn: 1, ValueColumn: 4},
		},
		Formats: []domain.ConditionalFormat{
			{Kind: domain.FormatColorScale, Column: 4, Reverse: true},
		},
	}
}

func riskCombinationSheet(combos []domain.RiskRecord) domain.Sheet {
	limit := len(combos)
	if limit > topRiskRows {
		limit = topRiskRows
	}
	table := make([][]interface{}, 0, limit)
	for _, c := range combos[:limit] {
		table = append(table, []interface{}{
			c.Hs4, countryLabel(c.Country), c.TotalCount, c.UndervalRate, c.HsChangeRate,
			c.TotalValueUSD, c.RiskScore, c.Grade,
		})
	}
	return domain.Sheet{
		Name:  "HS-Country Risk",
		Title: "Risk-scored HS Heading x Origin Combinations",
		Table: domain.Table{
			Title: fmt.Sprintf("Top %d Combinations by Risk Score", limit),
			Columns: []domain.Column{
				{Name: "HS4", Kind: domain.ColumnText},
				{Name: "Country", Kind: domain.ColumnText},
				{Name: "Assessments", Kind: domain.ColumnInteger},
				{Name: "Underval Rate %", Kind: domain.ColumnPercent},
				{Name: "HS Change Rate %", Kind: domain.ColumnPercent},
				{Name: "Value USD", Kind: domain.ColumnAmount},
				{Name: "Risk Score", Kind: domain.ColumnPercent},
				{Name: "Grade", Kind: domain.ColumnStatus},
			},
			Rows: table,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartBar, Title: "Highest Risk Scores", LabelColumn: 1, ValueColumn: 7, MaxRows: 10},
		},
		Formats: []domain.ConditionalFormat{
			{Kind: domain.FormatColorScale, Column: 7, Reverse: true},
		},
		Footnotes: []string{
			"Risk score weighs the undervaluation rate 3x and the HS change rate 2x, plus a volume bonus for high-value trade lanes.",
		},
	}
}

func importerSheet(importers []domain.ImporterRiskRecord) domain.Sheet {
	limit := len(importers)
	if limit > topRiskRows {
		limit = topRiskRows
	}
	table := make([][]interface{}, 0, limit)
	for _, im := range importers[:limit] {
		table = append(table, []interface{}{
			im.TIN, im.ImporterName, im.TotalCount, im.UndervalCount, im.HsChangeCount,
			im.UndervalRate, im.TotalValueUSD, im.RiskScore,
		})
	}
	return domain.Sheet{
		Name:  "At-risk Importers",
		Title: "Importers with Repeated Flags",
		Table: domain.Table{
			Title: fmt.Sprintf("Top %d Importers by Risk Score", limit),
			Columns: []domain.Column{
				{Name: "TIN", Kind: domain.ColumnText},
				{Name: "Importer", Kind: domain.ColumnText},
				{Name: "Assessments", Kind: domain.ColumnInteger},
				{Name: "Underval Flags", Kind: domain.ColumnInteger},
				{Name: "HS Changes", Kind: domain.ColumnInteger},
				{Name: "Underval Rate %", Kind: domain.ColumnPercent},
				{Name: "Value USD", Kind: domain.ColumnAmount},
				{Name: "Risk Score", Kind: domain.ColumnPercent},
			},
			Rows: table,
		},
		Formats: []domain.ConditionalFormat{
			{Kind: domain.FormatColorScale, Column: 8, Reverse: true},
		},
	}
}

func misclassificationSheet(rows []storemodels.MisclassificationAggregate) domain.Sheet {
	table := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		table = append(table, []interface{}{r.Period, r.TotalCount, r.MisclassCount, r.MisclassRate})
	}
	return domain.Sheet{
		Name:  "Misclassification",
		Title: "HS Reassessments by Year",
		Table: domain.Table{
			Title: "Declared vs Assessed HS Codes",
			Columns: []domain.Column{
				{Name: "Year", Kind: domain.ColumnText},
				{Name: "Assessments", Kind: domain.ColumnInteger},
				{Name: "HS Changed", Kind: domain.ColumnInteger},
				{Name: "Rate %", Kind: domain.ColumnPercent},
			},
			Rows: table,
		},
		Charts: []domain.Chart{
			{Kind: domain.ChartLine, Title: "Misclassification Rate", LabelColumn: 1, ValueColumn: 4},
		},
	}
}

func (a *Assembler) priceVarianceSheet(ctx context.Context) (domain.Sheet, error) {
	rows, err := a.calc.PriceVariances(ctx)
	if err != nil {
		return domain.Sheet{}, err
	}
	table := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		table = append(table, []interface{}{r.HsCode, r.Count, r.AvgPrice, r.StdPrice, r.MinPrice, r.MaxPrice, r.CvPct})
	}
	return domain.Sheet{
		Name:  "Price Dispersion",
		Title: "HS Codes with Abnormal Unit-price Dispersion",
		Table: domain.Table{
			Title: "Assessed Unit Price Statistics",
			Columns: []domain.Column{
				{Name: "HS Code", Kind: domain.ColumnText},
				{Name: "Assessments", Kind: domain.ColumnInteger},
				{Name: "Avg Price", Kind: domain.ColumnAmount},
				{Name: "Std Dev", Kind: domain.ColumnAmount},
				{Name: "Min", Kind: domain.ColumnAmount},
				{Name: "Max", Kind: domain.ColumnAmount},
				{Name: "CV %", Kind: domain.ColumnPercent},
			},
			Rows: table,
		},
		Footnotes: []string{
			"Only HS codes whose price standard deviation exceeds the mean are listed.",
		},
	}, nil
}

func (a *Assembler) hsChangeSheet(ctx context.Context) (domain.Sheet, error) {
	rows, err := a.calc.HsChangePatterns(ctx)
	if err != nil {
		return domain.Sheet{}, err
	}
	table := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		table = append(table, []interface{}{r.DeclaredHs, r.AssessedHs, r.Count, r.TotalValueUSD})
	}
	return domain.Sheet{
		Name:  "HS Change Patterns",
		Title: "Recurring Declared-to-Assessed HS Rewrites",
		Table: domain.Table{
			Title: "Reassessment Patterns",
			Columns: []domain.Column{
				{Name: "Declared HS", Kind: domain.ColumnText},
				{Name: "Assessed HS", Kind: domain.ColumnText},
				{Name: "Occurrences", Kind: domain.ColumnInteger},
				{Name: "Value USD", Kind: domain.ColumnAmount},
			},
			Rows: table,
		},
		Formats: []domain.ConditionalFormat{
			{Kind: domain.FormatDataBar, Column: 3},
		},
	}, nil
}
