// Package kpi evaluates customs performance indicators against the WCO
// Performance Measurement Mechanism catalog and assembles the executive
// summary and scorecard views on top of the declarations store.
package kpi

import (
	"github.com/de-tools/customs-atlas/pkg/models/domain"
)

// definitions is the WCO PMM indicator catalog. It is reference data,
// never mutated after process start.
var definitions = map[string]domain.KpiDefinition{
	"TF001": {
		Code:        "TF001",
		Name:        "Average Clearance Time",
		Category:    domain.CategoryTradeFacilitation,
		Unit:        "hours",
		Description: "Average time from declaration lodgement to release",
		Formula:     "AVG(release time - lodgement time)",
		Benchmark:   24.0,
		Target:      12.0,
		Direction:   domain.DirectionLower,
	},
	"TF002": {
		Code:        "TF002",
		Name:        "Pre-arrival Processing Rate",
		Category:    domain.CategoryTradeFacilitation,
		Unit:        "%",
		Description: "Share of declarations lodged before vessel arrival",
		Formula:     "pre-arrival declarations / total declarations x 100",
		Benchmark:   30.0,
		Target:      50.0,
		Direction:   domain.DirectionHigher,
	},
	"TF003": {
		Code:        "TF003",
		Name:        "Green Lane Rate",
		Category:    domain.CategoryTradeFacilitation,
		Unit:        "%",
		Description: "Share of declarations released without inspection",
		Formula:     "no-inspection releases / total declarations x 100",
		Benchmark:   70.0,
		Target:      85.0,
		Direction:   domain.DirectionHigher,
	},
	"TF004": {
		Code:        "TF004",
		Name:        "Electronic Declaration Rate",
		Category:    domain.CategoryTradeFacilitation,
		Unit:        "%",
		Description: "Share of declarations processed electronically",
		Formula:     "electronic declarations / total declarations x 100",
		Benchmark:   95.0,
		Target:      99.0,
		Direction:   domain.DirectionHigher,
	},
	"RC001": {
		Code:        "RC001",
		Name:        "Collection Efficiency Ratio",
		Category:    domain.CategoryRevenueCollection,
		Unit:        "%",
		Description: "Collected revenue against assessed duty",
		Formula:     "collected amount / assessed amount x 100",
		Benchmark:   95.0,
		Target:      99.0,
		Direction:   domain.DirectionHigher,
	},
	"RC002": {
		Code:        "RC002",
		Name:        "Duty Assessment Accuracy",
		Category:    domain.CategoryRevenueCollection,
		Unit:        "%",
		Description: "Share of reviews leaving the assessed duty unchanged",
		Formula:     "(1 - duty changes / reviews) x 100",
		Benchmark:   90.0,
		Target:      95.0,
		Direction:   domain.DirectionHigher,
	},
	"RC003": {
		Code:        "RC003",
		Name:        "Post-clearance Audit Coverage",
		Category:    domain.CategoryRevenueCollection,
		Unit:        "%",
		Description: "Share of importers covered by post-clearance audit",
		Formula:     "audited importers / total importers x 100",
		Benchmark:   5.0,
		Target:      10.0,
		Direction:   domain.DirectionHigher,
	},
	"RC004": {
		Code:        "RC004",
		Name:        "Revenue Growth Rate",
		Category:    domain.CategoryRevenueCollection,
		Unit:        "%",
		Description: "Year-over-year customs revenue growth",
		Formula:     "(current revenue - prior revenue) / prior revenue x 100",
		Benchmark:   3.0,
		Target:      5.0,
		Direction:   domain.DirectionHigher,
	},
	"RM001": {
		Code:        "RM001",
		Name:        "Selectivity Rate",
		Category:    domain.CategoryRiskManagement,
		Unit:        "%",
		Description: "Share of declarations selected for inspection",
		Formula:     "selected declarations / total declarations x 100",
		Benchmark:   15.0,
		Target:      10.0,
		Direction:   domain.DirectionLower,
	},
	"RM002": {
		Code:        "RM002",
		Name:        "Hit Rate",
		Category:    domain.CategoryRiskManagement,
		Unit:        "%",
		Description: "Share of inspections that found a violation",
		Formula:     "violations found / inspections x 100",
		Benchmark:   20.0,
		Target:      30.0,
		Direction:   domain.DirectionHigher,
	},
	"RM003": {
		Code:        "RM003",
		Name:        "Compliance Rate",
		Category:    domain.CategoryRiskManagement,
		Unit:        "%",
		Description: "Share of declarations lodged accurately",
		Formula:     "accurate declarations / total declarations x 100",
		Benchmark:   85.0,
		Target:      95.0,
		Direction:   domain.DirectionHigher,
	},
	"RM004": {
		Code:        "RM004",
		Name:        "Undervaluation Detection Rate",
		Category:    domain.CategoryRiskManagement,
		Unit:        "%",
		Description: "Share of suspected undervaluation cases detected",
		Formula:     "undervaluation hits / suspected cases x 100",
		Benchmark:   30.0,
		Target:      50.0,
		Direction:   domain.DirectionHigher,
	},
	"RM005": {
		Code:        "RM005",
		Name:        "HS Misclassification Rate",
		Category:    domain.CategoryRiskManagement,
		Unit:        "%",
		Description: "Share of declarations with the HS code changed on review",
		Formula:     "HS changes / total declarations x 100",
		Benchmark:   5.0,
		Target:      2.0,
		Direction:   domain.DirectionLower,
	},
	"OD001": {
		Code:        "OD001",
		Name:        "HHI Concentration Index",
		Category:    domain.CategoryOrganizational,
		Unit:        "index",
		Description: "Herfindahl-Hirschman concentration of import commodities and origins",
		Formula:     "sum of squared market shares x 10000",
		Benchmark:   1500,
		Target:      1000,
		Direction:   domain.DirectionLower,
	},
	"OD002": {
		Code:        "OD002",
		Name:        "MoM Volatility",
		Category:    domain.CategoryOrganizational,
		Unit:        "%",
		Description: "Coefficient of variation of monthly revenue",
		Formula:     "STDDEV(monthly revenue) / AVG(monthly revenue) x 100",
		Benchmark:   15.0,
		Target:      10.0,
		Direction:   domain.DirectionLower,
	},
	"OD003": {
		Code:        "OD003",
		Name:        "YoY Growth Consistency",
		Category:    domain.CategoryOrganizational,
		Unit:        "score",
		Description: "Consistency score of annual growth, 1 to 5",
		Formula:     "score from growth streak length",
		Benchmark:   3.0,
		Target:      4.0,
		Direction:   domain.DirectionHigher,
	},
}

// Definition looks up a catalog entry by code. The second return value
// reports whether the code exists.
func Definition(code string) (domain.KpiDefinition, bool) {
	d, ok := definitions[code]
	return d, ok
}

// Definitions returns a copy of the whole catalog.
func Definitions() map[string]domain.KpiDefinition {
	out := make(map[string]domain.KpiDefinition, len(definitions))
	for k, v := range definitions {
		out[k] = v
	}
	return out
}

// DefinitionsByCategory returns the catalog entries in one PMM dimension.
func DefinitionsByCategory(category domain.KpiCategory) map[string]domain.KpiDefinition {
	out := make(map[string]domain.KpiDefinition)
	for k, v := range definitions {
		if v.Category == category {
			out[k] = v
		}
	}
	return out
}
