package analytics

import (
	"testing"

	"github.com/de-tools/customs-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodGrowth(t *testing.T) {
	t.Run("computes ascending growth and drops the first period", func(t *testing.T) {
		// Descending input, as the query boundary returns it.
		rows := []store.PeriodAggregate{
			{Period: "2025", TotalTax: 99, DeclarationCount: 30},
			{Period: "2024", TotalTax: 110, DeclarationCount: 20},
			{Period: "2023", TotalTax: 100, DeclarationCount: 10},
		}

		points := PeriodGrowth(rows)
		require.Len(t, points, 2)

		assert.Equal(t, "2024", points[0].Period)
		assert.Equal(t, 10.0, points[0].GrowthPct)
		assert.Equal(t, 100.0, points[0].CountGrowthPct)

		assert.Equal(t, "2025", points[1].Period)
		assert.Equal(t, -10.0, points[1].GrowthPct)
		assert.Equal(t, 50.0, points[1].CountGrowthPct)
	})

	t.Run("omits rows with a zero previous total", func(t *testing.T) {
		rows := []store.PeriodAggregate{
			{Period: "2023", TotalTax: 0},
			{Period: "2024", TotalTax: 50},
			{Period: "2025", TotalTax: 100},
		}

		points := PeriodGrowth(rows)
		require.Len(t, points, 1)
		assert.Equal(t, "2025", points[0].Period)
		assert.Equal(t, 100.0, points[0].GrowthPct)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		rows := []store.PeriodAggregate{
			{Period: "2023", TotalTax: 300},
			{Period: "2024", TotalTax: 310},
		}

		points := PeriodGrowth(rows)
		require.Len(t, points, 1)
		assert.Equal(t, 3.3, points[0].GrowthPct)
	})

	t.Run("empty and single-row series", func(t *testing.T) {
		assert.Nil(t, PeriodGrowth(nil))
		assert.Nil(t, PeriodGrowth([]store.PeriodAggregate{{Period: "2024", TotalTax: 100}}))
	})
}
