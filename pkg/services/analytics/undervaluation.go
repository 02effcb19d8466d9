package analytics

import (
	"sort"

	"github.com/de-tools/customs-atlas/pkg/models/store"
)

// DefaultUndervalThreshold flags declarations whose assessed unit value
// exceeds the declared one by 30% or more.
const DefaultUndervalThreshold = 1.3

// Undervalued reports whether a declaration is undervalued: the declared
// unit value must be positive and the assessed value must exceed
// declared x threshold.
func Undervalued(declaredUnit, assessedUnit, threshold float64) bool {
	return declaredUnit > 0 && assessedUnit > declaredUnit*threshold
}

// UndervaluationByPeriod folds per-declaration price records into
// per-period undervaluation aggregates, ordered by period descending like
// the query boundary. Estimated loss sums the invoice-amount gap over
// undervalued declarations only.
func UndervaluationByPeriod(records []store.PriceRecord, threshold float64) []store.UndervaluationAggregate {
	byPeriod := map[string]*store.UndervaluationAggregate{}
	for _, r := range records {
		agg, ok := byPeriod[r.Period]
		if !ok {
			agg = &store.UndervaluationAggregate{Period: r.Period}
			byPeriod[r.Period] = agg
		}
		agg.TotalCount++
		if Undervalued(r.DeclaredUnitUSD, r.AssessedUnitUSD, threshold) {
			agg.UndervalCount++
			agg.EstimatedLossUSD += r.AssessedInvoiceUSD - r.DeclaredInvoiceUSD
		}
	}

	out := make([]store.UndervaluationAggregate, 0, len(byPeriod))
	for _, agg := range byPeriod {
		agg.UndervalRate = round2(rate(agg.UndervalCount, agg.TotalCount))
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out
}

// MisclassificationByPeriod folds price records into per-period HS
// reassessment aggregates: a row counts as misclassified when the
// declared and assessed HS codes differ.
func MisclassificationByPeriod(records []store.PriceRecord) []store.MisclassificationAggregate {
	byPeriod := map[string]*store.MisclassificationAggregate{}
	for _, r := range records {
		agg, ok := byPeriod[r.Period]
		if !ok {
			agg = &store.MisclassificationAggregate{Period: r.Period}
			byPeriod[r.Period] = agg
		}
		agg.TotalCount++
		if r.DeclaredHs != r.AssessedHs {
			agg.MisclassCount++
		}
	}

	out := make([]store.MisclassificationAggregate, 0, len(byPeriod))
	for _, agg := range byPeriod {
		agg.MisclassRate = round2(rate(agg.MisclassCount, agg.TotalCount))
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period > out[j].Period })
	return out
}
