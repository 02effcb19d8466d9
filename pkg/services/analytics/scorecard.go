package analytics

import "github.com/de-tools/customs-atlas/pkg/models/domain"

// Status classifies an actual value against a KPI's benchmark and target.
// For "higher" KPIs: Excellent at or above target, Good at or above
// benchmark, Needs Improvement otherwise. "lower" KPIs mirror the
// comparisons. There are no other states.
func Status(actual, benchmark, target float64, direction domain.KpiDirection) string {
	if direction == domain.DirectionLower {
		switch {
		case actual <= target:
			return domain.StatusExcellent
		case actual <= benchmark:
			return domain.StatusGood
		default:
			return domain.StatusNeedsImprovement
		}
	}
	switch {
	case actual >= target:
		return domain.StatusExcellent
	case actual >= benchmark:
		return domain.StatusGood
	default:
		return domain.StatusNeedsImprovement
	}
}
