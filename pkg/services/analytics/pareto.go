package analytics

import (
	"sort"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/de-tools/customs-atlas/pkg/models/store"
)

// Pareto zone cut-offs on cumulative share.
const (
	paretoZoneALimit = 80.0
	paretoZoneBLimit = 95.0
)

// Pareto ranks categories by value descending and tags each with an
// 80/20-style zone. Per-row shares are rounded to 2 decimals first and the
// cumulative column is the running sum of those rounded shares; this
// decides which boundary row lands in which zone near the cut-offs.
func Pareto(rows []store.CategoryAggregate) []domain.ParetoRow {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]store.CategoryAggregate, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	var total float64
	for _, r := range sorted {
		total += r.Value
	}

	out := make([]domain.ParetoRow, 0, len(sorted))
	var cumulative float64
	for i, r := range sorted {
		var share float64
		if total > 0 {
			share = round2(r.Value / total * 100)
		}
		cumulative = round2(cumulative + share)

		zone := domain.ParetoZoneC
		switch {
		case cumulative <= paretoZoneALimit:
			zone = domain.ParetoZoneA
		case cumulative <= paretoZoneBLimit:
			zone = domain.ParetoZoneB
		}

		out = append(out, domain.ParetoRow{
			Rank:          i + 1,
			Category:      r.Category,
			Value:         r.Value,
			SharePct:      share,
			CumulativePct: cumulative,
			Zone:          zone,
		})
	}
	return out
}
