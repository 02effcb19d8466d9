package api

// SummaryResponse is the executive summary exposed over the web API.
type SummaryResponse struct {
	Period            string            `json:"period"`
	TotalDeclarations int64             `json:"total_declarations"`
	TotalTax          float64           `json:"total_tax"`
	TotalValueUSD     float64           `json:"total_value_usd"`
	YoYGrowthPct      float64           `json:"yoy_growth_pct"`
	VolatilityCV      float64           `json:"volatility_cv"`
	HHICommodity      float64           `json:"hhi_commodity"`
	HHICountry        float64           `json:"hhi_country"`
	UndervalRate      float64           `json:"underval_rate"`
	Metrics           map[string]string `json:"metrics"`
	GeneratedAt       string            `json:"generated_at"`
}

// ScorecardEntry is one evaluated KPI row.
type ScorecardEntry struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Actual    float64 `json:"actual"`
	Benchmark float64 `json:"benchmark"`
	Target    float64 `json:"target"`
	Unit      string  `json:"unit"`
	Status    string  `json:"status"`
}

// RevenuePoint is one period of the revenue series with its growth.
type RevenuePoint struct {
	Period           string  `json:"period"`
	DeclarationCount int64   `json:"declaration_count"`
	TotalTax         float64 `json:"total_tax"`
	TotalValueUSD    float64 `json:"total_value_usd"`
	GrowthPct        float64 `json:"growth_pct"`
}

// RiskCombination is one scored HS4 x country combination.
type RiskCombination struct {
	Hs4           string  `json:"hs4"`
	Country       string  `json:"country"`
	TotalCount    int64   `json:"total_count"`
	UndervalCount int64   `json:"underval_count"`
	UndervalRate  float64 `json:"underval_rate"`
	HsChangeCount int64   `json:"hs_change_count"`
	HsChangeRate  float64 `json:"hs_change_rate"`
	RiskScore     float64 `json:"risk_score"`
	Grade         string  `json:"grade"`
}
