package domain

// GrowthPoint is a period total together with its growth over the
// previous period.
type GrowthPoint struct {
	Period    string
	Total     float64
	Count     int64
	GrowthPct float64
	// CountGrowthPct tracks declaration-count growth alongside value growth.
	CountGrowthPct float64
}

// VolatilitySummary measures relative dispersion of a period series.
type VolatilitySummary struct {
	Mean   float64
	StdDev float64
	// CV is the coefficient of variation, std/mean x 100.
	CV     float64
	Rating string
}

// Volatility ratings.
const (
	VolatilityLow    = "Low"
	VolatilityMedium = "Medium"
	VolatilityHigh   = "High"
)

// ConcentrationSummary is the HHI result for one dimension.
type ConcentrationSummary struct {
	Dimension       string
	HHI             float64
	Level           string
	Top5SharePct    float64
	TotalCategories int
}

// HHI concentration levels.
const (
	ConcentrationLow      = "Low (Competitive)"
	ConcentrationModerate = "Moderate"
	ConcentrationHigh     = "High (Concentrated)"
)

// ParetoRow is a ranked category with its share and cumulative share.
type ParetoRow struct {
	Rank          int
	Category      string
	Value         float64
	SharePct      float64
	CumulativePct float64
	Zone          string
}

// Pareto zones.
const (
	ParetoZoneA = "A (Top 80%)"
	ParetoZoneB = "B (80-95%)"
	ParetoZoneC = "C (Bottom 5%)"
)

// RiskRecord is a scored HS4 x country combination.
type RiskRecord struct {
	Hs4           string
	Country       string
	TotalCount    int64
	UndervalCount int64
	UndervalRate  float64
	HsChangeCount int64
	HsChangeRate  float64
	TotalValueUSD float64
	RiskScore     float64
	Grade         string
}

// ImporterRiskRecord is a scored importer. The importer score carries no
// volume bonus.
type ImporterRiskRecord struct {
	TIN           string
	ImporterName  string
	TotalCount    int64
	UndervalCount int64
	UndervalRate  float64
	HsChangeCount int64
	TotalValueUSD float64
	RiskScore     float64
}

// Risk grades.
const (
	RiskGradeNormal = "NORMAL"
	RiskGradeLow    = "LOW"
	RiskGradeMedium = "MEDIUM"
	RiskGradeHigh   = "HIGH"
)
