package analytics

import (
	"math"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

// Volatility rating thresholds on the coefficient of variation.
const (
	volatilityMediumCV = 10.0
	volatilityHighCV   = 20.0
)

// Volatility measures relative dispersion of a period series, typically
// monthly tax totals. CV is std/mean x 100 when the mean is positive,
// 0 otherwise. The standard deviation is the sample deviation.
func Volatility(totals []float64) domain.VolatilitySummary {
	s := domain.VolatilitySummary{Rating: domain.VolatilityLow}
	if len(totals) == 0 {
		return s
	}

	var sum float64
	for _, v := range totals {
		sum += v
	}
	s.Mean = sum / float64(len(totals))

	if len(totals) > 1 {
		var ss float64
		for _, v := range totals {
			d := v - s.Mean
			ss += d * d
		}
		s.StdDev = math.Sqrt(ss / float64(len(totals)-1))
	}

	if s.Mean > 0 {
		s.CV = round2(s.StdDev / s.Mean * 100)
	}

	switch {
	case s.CV < volatilityMediumCV:
		s.Rating = domain.VolatilityLow
	case s.CV < volatilityHighCV:
		s.Rating = domain.VolatilityMedium
	default:
		s.Rating = domain.VolatilityHigh
	}
	return s
}
