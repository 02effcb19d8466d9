package analytics

import (
	"sort"

	"github.com/de-tools/customs-atlas/pkg/models/domain"
	"github.com/de-tools/customs-atlas/pkg/models/store"
)

// RiskWeights are the contribution weights of each rate to the composite
// risk score.
type RiskWeights struct {
	Underval float64
	HsChange float64
}

// DefaultRiskWeights weight undervaluation 3x and HS reassessment 2x.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{Underval: 3, HsChange: 2}
}

// VolumeTiers grant bonus points for transaction volume when scoring
// HS x country combinations.
type VolumeTiers struct {
	HighValueUSD float64
	HighBonus    float64
	MidValueUSD  float64
	MidBonus     float64
	BaseBonus    float64
}

// DefaultVolumeTiers: 10 points over $100M, 5 over $10M, 1 otherwise.
func DefaultVolumeTiers() VolumeTiers {
	return VolumeTiers{
		HighValueUSD: 100_000_000,
		HighBonus:    10,
		MidValueUSD:  10_000_000,
		MidBonus:     5,
		BaseBonus:    1,
	}
}

// GradeBands are the upper bounds of the NORMAL, LOW and MEDIUM grades;
// scores at or above the Medium bound grade HIGH. The banding is
// independent of the score formula.
type GradeBands struct {
	Normal float64
	Low    float64
	Medium float64
}

// DefaultGradeBands: NORMAL <30, LOW <50, MEDIUM <80, HIGH >=80.
func DefaultGradeBands() GradeBands {
	return GradeBands{Normal: 30, Low: 50, Medium: 80}
}

// RiskScore is the canonical weighted composite:
// underval_rate x wU + hs_change_rate x wH, rounded to 1 decimal.
// Volume bonuses are applied separately via VolumeBonus so call sites
// that score without volume (importers) share the same core formula.
func RiskScore(undervalCount, hsChangeCount, totalCount int64, w RiskWeights) float64 {
	if totalCount == 0 {
		return 0
	}
	return round1(rate(undervalCount, totalCount)*w.Underval + rate(hsChangeCount, totalCount)*w.HsChange)
}

// VolumeBonus returns the tiered bonus for a combination's total value.
func VolumeBonus(totalValueUSD float64, t VolumeTiers) float64 {
	switch {
	case totalValueUSD > t.HighValueUSD:
		return t.HighBonus
	case totalValueUSD > t.MidValueUSD:
		return t.MidBonus
	default:
		return t.BaseBonus
	}
}

// Grade bands a score.
func Grade(score float64, b GradeBands) string {
	switch {
	case score < b.Normal:
		return domain.RiskGradeNormal
	case score < b.Low:
		return domain.RiskGradeLow
	case score < b.Medium:
		return domain.RiskGradeMedium
	default:
		return domain.RiskGradeHigh
	}
}

// ScoreCombinations scores HS4 x country base rows (score + volume bonus),
// grades them, and returns the result sorted by score descending.
func ScoreCombinations(rows []store.HsCountryRisk, w RiskWeights, t VolumeTiers, b GradeBands) []domain.RiskRecord {
	out := make([]domain.RiskRecord, 0, len(rows))
	for _, r := range rows {
		score := round1(RiskScore(r.UndervalCount, r.HsChangeCount, r.TotalCount, w) + VolumeBonus(r.TotalValueUSD, t))
		out = append(out, domain.RiskRecord{
			Hs4:           r.Hs4,
			Country:       r.Country,
			TotalCount:    r.TotalCount,
			UndervalCount: r.UndervalCount,
			UndervalRate:  round1(rate(r.UndervalCount, r.TotalCount)),
			HsChangeCount: r.HsChangeCount,
			HsChangeRate:  round1(rate(r.HsChangeCount, r.TotalCount)),
			TotalValueUSD: r.TotalValueUSD,
			RiskScore:     score,
			Grade:         Grade(score, b),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	return out
}

// ScoreImporters scores importer base rows with the core formula only,
// no volume bonus, sorted by score descending.
func ScoreImporters(rows []store.ImporterRisk, w RiskWeights) []domain.ImporterRiskRecord {
	out := make([]domain.ImporterRiskRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ImporterRiskRecord{
			TIN:           r.TIN,
			ImporterName:  r.ImporterName,
			TotalCount:    r.TotalCount,
			UndervalCount: r.UndervalCount,
			UndervalRate:  round1(rate(r.UndervalCount, r.TotalCount)),
			HsChangeCount: r.HsChangeCount,
			TotalValueUSD: r.TotalValueUSD,
			RiskScore:     RiskScore(r.UndervalCount, r.HsChangeCount, r.TotalCount, w),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	return out
}
