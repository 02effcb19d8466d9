package domain

// KpiCategory is one of the four WCO PMM dimensions.
type KpiCategory string

const (
	CategoryTradeFacilitation KpiCategory = "Trade Facilitation"
	CategoryRevenueCollection KpiCategory = "Revenue Collection"
	CategoryRiskManagement    KpiCategory = "Risk Management"
	CategoryOrganizational    KpiCategory = "Organizational"
)

// KpiDirection states whether higher or lower actuals are better.
type KpiDirection string

const (
	DirectionHigher KpiDirection = "higher"
	DirectionLower  KpiDirection = "lower"
)

// KpiDefinition is static reference data for a single KPI. Definitions are
// loaded once at process start and never mutated.
type KpiDefinition struct {
	Code        string
	Name        string
	Category    KpiCategory
	Unit        string
	Description string
	Formula     string
	Benchmark   float64
	Target      float64
	Direction   KpiDirection
}

// KPI statuses assigned by the scorecard evaluator.
const (
	StatusExcellent        = "Excellent"
	StatusGood             = "Good"
	StatusNeedsImprovement = "Needs Improvement"
)

// ScorecardEntry is one evaluated KPI for scorecard rendering.
type ScorecardEntry struct {
	Code      string
	Name      string
	Category  KpiCategory
	Actual    float64
	Benchmark float64
	Target    float64
	Unit      string
	Status    string
}

// ExecutiveSummary is the flat headline-metric map for the cover and the
// executive dashboard: key -> already-formatted display string.
type ExecutiveSummary struct {
	Period  string
	Metrics map[string]string
	// Raw values kept for findings text and scorecard evaluation.
	TotalDeclarations int64
	TotalTax          float64
	TotalValueUSD     float64
	HsChapters        int64
	Countries         int64
	YoYGrowthPct      float64
	VolatilityCV      float64
	HHICommodity      float64
	HHICountry        float64
	UndervalRate      float64
	GeneratedAt       string
}
