package terminal

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

func TestRender_Console(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	rep := &domain.Report{
		Title:    "Customs KPI Scorecard",
		Subtitle: "Performance against WCO PMM benchmarks",
		Cover: domain.Cover{
			Metrics: []domain.CoverMetric{
				{Label: "Indicators Measured", Value: "5", Note: "2023-2026"},
			},
			Footer: "Generated 2026-08-30",
		},
		Sheets: []domain.Sheet{{
			Title: "KPI Scorecard",
			Table: domain.Table{
				Columns: []domain.Column{
					{Name: "Code"}, {Name: "Actual"}, {Name: "Status"},
				},
				Rows: [][]interface{}{
					{"RC004", 10.5, "Excellent"},
					{"OD001", 5200.0, "Needs Improvement"},
				},
			},
			Footnotes: []string{"Measured from declaration data."},
		}},
	}

	require.NoError(t, r.Render(context.Background(), rep))

	out := buf.String()
	assert.Contains(t, out, "Customs KPI Scorecard")
	assert.Contains(t, out, "Indicators Measured: 5 (2023-2026)")
	assert.Contains(t, out, "=== KPI Scorecard ===")
	assert.Contains(t, out, "RC004")
	assert.Contains(t, out, "10.50")
	assert.Contains(t, out, "Excellent")
	assert.Contains(t, out, "Measured from declaration data.")
	assert.Contains(t, out, "Generated 2026-08-30")
}

func TestNewReporter_NilWriterDefaultsToStdout(t *testing.T) {
	r := NewReporter(nil)
	assert.NotNil(t, r)
}
