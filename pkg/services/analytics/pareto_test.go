package analytics

import (
	"testing"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/de-tools/customs-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPareto(t *testing.T) {
	t.Run("ranks, shares and zones", func(t *testing.T) {
		rows := []store.CategoryAggregate{
			{Category: "74", Value: 50},
			{Category: "27", Value: 30},
			{Category: "87", Value: 10},
			{Category: "84", Value: 6},
			{Category: "85", Value: 4},
		}

		out := Pareto(rows)
		require.Len(t, out, 5)

		assert.Equal(t, []int{1, 2, 3, 4, 5}, []int{out[0].Rank, out[1].Rank, out[2].Rank, out[3].Rank, out[4].Rank})
		assert.Equal(t, "74", out[0].Category)
		assert.Equal(t, 50.0, out[0].SharePct)
		assert.Equal(t, domain.ParetoZoneA, out[0].Zone)
		assert.Equal(t, domain.ParetoZoneA, out[1].Zone) // cumulative exactly 80
		assert.Equal(t, domain.ParetoZoneB, out[2].Zone)
		assert.Equal(t, domain.ParetoZoneC, out[3].Zone)
		assert.Equal(t, domain.ParetoZoneC, out[4].Zone)

		// Tail cumulative lands on 100 within rounding tolerance.
		assert.InDelta(t, 100.0, out[4].CumulativePct, 0.05)
	})

	t.Run("zone A rows are a prefix", func(t *testing.T) {
		rows := []store.CategoryAggregate{
			{Category: "a", Value: 41}, {Category: "b", Value: 27},
			{Category: "c", Value: 13}, {Category: "d", Value: 9},
			{Category: "e", Value: 6}, {Category: "f", Value: 4},
		}

		out := Pareto(rows)
		seenOther := false
		for _, row := range out {
			if row.Zone != domain.ParetoZoneA {
				seenOther = true
			} else {
				assert.False(t, seenOther, "zone A row after a non-A row")
			}
		}
	})

	t.Run("cumulative sums rounded shares", func(t *testing.T) {
		// Each share is 100/3 = 33.33 after rounding; the cumulative column
		// must be 33.33 / 66.66 / 99.99, not re-rounded exact fractions.
		rows := []store.CategoryAggregate{
			{Category: "a", Value: 1}, {Category: "b", Value: 1}, {Category: "c", Value: 1},
		}

		out := Pareto(rows)
		require.Len(t, out, 3)
		assert.Equal(t, 33.33, out[0].CumulativePct)
		assert.Equal(t, 66.66, out[1].CumulativePct)
		assert.Equal(t, 99.99, out[2].CumulativePct)
	})

	t.Run("zero total yields zero shares", func(t *testing.T) {
		out := Pareto([]store.CategoryAggregate{{Category: "a", Value: 0}})
		require.Len(t, out, 1)
		assert.Equal(t, 0.0, out[0].SharePct)
		assert.Equal(t, domain.ParetoZoneA, out[0].Zone)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, Pareto(nil))
	})
}
