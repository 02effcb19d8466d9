// Package analytics holds the pure computation layer: it consumes raw
// aggregate rows from the declarations store and produces derived metrics
// (growth, volatility, concentration, Pareto zones, risk scores, KPI
// statuses). No function in this package performs I/O.
package analytics

import "math"

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rate returns count/total x 100, guarding a zero denominator.
func rate(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) * 100.0 / float64(total)
}
