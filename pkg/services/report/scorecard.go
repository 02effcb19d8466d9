package report

import (
	"context"
	"fmt"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

// Scorecard assembles the KPI scorecard as a single-sheet report.
func (a *Assembler) Scorecard(ctx context.Context) (*domain.Report, error) {
	entries, err := a.calc.Scorecard(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble scorecard: %w", err)
	}
	summary, err := a.calc.ExecutiveSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble scorecard: %w", err)
	}

	excellent, good := 0, 0
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		switch e.Status {
		case domain.StatusExcellent:
			excellent++
		case domain.StatusGood:
			good++
		}
		rows = append(rows, []interface{}{
			e.Code, e.Name, string(e.Category), e.Actual, e.Benchmark, e.Target, e.Unit, e.Status,
		})
	}

	return &domain.Report{
		Title:    "Customs KPI Scorecard",
		Subtitle: "Performance against WCO PMM benchmarks",
		Cover: domain.Cover{
			Metrics: []domain.CoverMetric{
				{Label: "Indicators Measured", Value: fmt.Sprintf("%d", len(entries)), Note: summary.Period},
				{Label: "Excellent", Value: fmt.Sprintf("%d", excellent)},
				{Label: "Good", Value: fmt.Sprintf("%d", good)},
				{Label: "Needs Improvement", Value: fmt.Sprintf("%d", len(entries)-excellent-good)},
			},
			Footer: "Generated " + summary.GeneratedAt,
		},
		Sheets: []domain.Sheet{{
			Name:  "Scorecard",
			Title: "KPI Scorecard",
			Table: domain.Table{
				Title: "Measured Indicators",
				Columns: []domain.Column{
					{Name: "Code", Kind: domain.ColumnText},
					{Name: "Indicator", Kind: domain.ColumnText},
					{Name: "Dimension", Kind: domain.ColumnText},
					{Name: "Actual", Kind: domain.ColumnPercent},
					{Name: "Benchmark", Kind: domain.ColumnPercent},
					{Name: "Target", Kind: domain.ColumnPercent},
					{Name: "Unit", Kind: domain.ColumnText},
					{Name: "Status", Kind: domain.ColumnStatus},
				},
				Rows: rows,
			},
		}},
	}, nil
}
