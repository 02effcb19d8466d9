package store

// PeriodAggregate is one row of the revenue-by-period aggregate query.
// Periods are labels like "2024" or "2024-07"; the query boundary returns
// them in descending order.
type PeriodAggregate struct {
	Period           string
	DeclarationCount int64
	TotalTax         float64
	TotalValueUSD    float64
	AvgTaxPerItem    float64
	HsChapterCount   int64
	CountryCount     int64
}

// CategoryAggregate is a category (HS chapter or country code) with the
// value it contributed. Categories partition the grand total used for
// share calculations.
type CategoryAggregate struct {
	Category string
	Value    float64
}

// UndervaluationAggregate holds per-period undervaluation counts.
// UndervalCount never exceeds TotalCount.
type UndervaluationAggregate struct {
	Period           string
	TotalCount       int64
	UndervalCount    int64
	UndervalRate     float64
	EstimatedLossUSD float64
}

// MisclassificationAggregate holds per-period HS reassessment counts.
type MisclassificationAggregate struct {
	Period        string
	TotalCount    int64
	MisclassCount int64
	MisclassRate  float64
}

// HsCountryRisk is the raw base row for composite risk scoring of an
// HS4 x origin-country combination.
type HsCountryRisk struct {
	Hs4           string
	Country       string
	TotalCount    int64
	UndervalCount int64
	HsChangeCount int64
	TotalValueUSD float64
}

// ImporterRisk is the raw base row for importer-level risk scoring.
type ImporterRisk struct {
	TIN           string
	ImporterName  string
	TotalCount    int64
	UndervalCount int64
	HsChangeCount int64
	TotalValueUSD float64
}

// PriceVariance describes a HS code whose assessed unit prices disperse
// abnormally (std dev exceeding the mean at the query boundary).
type PriceVariance struct {
	HsCode   string
	Count    int64
	AvgPrice float64
	StdPrice float64
	MinPrice float64
	MaxPrice float64
	CvPct    float64
}

// HsChangePattern is a declared->assessed HS code reassessment pattern.
type HsChangePattern struct {
	DeclaredHs    string
	AssessedHs    string
	Count         int64
	TotalValueUSD float64
}

// CountryBreakdown is one origin country with its declaration volume.
type CountryBreakdown struct {
	Country       string
	Declarations  int64
	TotalTax      float64
	TotalValueUSD float64
}

// PriceRecord is a single unit-price assessment row: declared vs assessed
// unit values and HS codes for one declaration item.
type PriceRecord struct {
	Period             string
	DeclaredUnitUSD    float64
	AssessedUnitUSD    float64
	DeclaredInvoiceUSD float64
	AssessedInvoiceUSD float64
	DeclaredHs         string
	AssessedHs         string
}

// HeadlineStats are the single-row totals behind the executive summary.
type HeadlineStats struct {
	TotalDeclarations int64
	TotalTax          float64
	TotalValueUSD     float64
	HsChapters        int64
	Countries         int64
}
