package analytics

import (
	"sort"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/de-tools/customs-atlas/pkg/models/store"
)

// PeriodGrowth computes period-over-period growth percentages for a
// revenue series. The query boundary returns periods in descending order;
// rows are re-sorted ascending by period label before deltas are taken.
//
// The first period has no defined growth and is excluded from the output.
// Rows whose previous total is zero are omitted as well: the rate is
// undefined there, and dropping the row keeps every emitted value finite.
func PeriodGrowth(rows []store.PeriodAggregate) []domain.GrowthPoint {
	if len(rows) < 2 {
		return nil
	}

	sorted := make([]store.PeriodAggregate, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	points := make([]domain.GrowthPoint, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.TotalTax == 0 {
			continue
		}
		p := domain.GrowthPoint{
			Period:    cur.Period,
			Total:     cur.TotalTax,
			Count:     cur.DeclarationCount,
			GrowthPct: round1((cur.TotalTax - prev.TotalTax) / prev.TotalTax * 100),
		}
		if prev.DeclarationCount > 0 {
			p.CountGrowthPct = round1(float64(cur.DeclarationCount-prev.DeclarationCount) / float64(prev.DeclarationCount) * 100)
		}
		points = append(points, p)
	}
	return points
}
