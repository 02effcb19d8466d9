package analytics

import (
	"math"
	"sort"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/de-tools/customs-atlas/pkg/models/store"
)

// HHI level thresholds (10,000-point scale).
const (
	hhiModerate = 1000.0
	hhiHigh     = 1800.0
)

const topShareCategories = 5

// Concentration computes the Herfindahl-Hirschman index over category
// aggregates: hhi = sum(share^2) x 10000. Shares are zero when the grand
// total is zero, so an empty or all-zero dimension yields hhi 0 and the
// Low level.
func Concentration(dimension string, rows []store.CategoryAggregate) domain.ConcentrationSummary {
	var total float64
	for _, r := range rows {
		total += r.Value
	}

	var hhi float64
	if total > 0 {
		for _, r := range rows {
			share := r.Value / total
			hhi += share * share
		}
		hhi *= 10000
	}

	level := domain.ConcentrationLow
	switch {
	case hhi >= hhiHigh:
		level = domain.ConcentrationHigh
	case hhi >= hhiModerate:
		level = domain.ConcentrationModerate
	}

	return domain.ConcentrationSummary{
		Dimension:       dimension,
		HHI:             math.Round(hhi),
		Level:           level,
		Top5SharePct:    round1(topShare(rows, total, topShareCategories)),
		TotalCategories: len(rows),
	}
}

// topShare sums the share of the n numerically largest categories.
func topShare(rows []store.CategoryAggregate, total float64, n int) float64 {
	if total <= 0 || len(rows) == 0 {
		return 0
	}
	sorted := make([]store.CategoryAggregate, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	if n > len(sorted) {
		n = len(sorted)
	}
	var sum float64
	for _, r := range sorted[:n] {
		sum += r.Value
	}
	return sum / total * 100
}
