package declarations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/customs-atlas/pkg/models/store"
)

// Granularity selects the period bucket for revenue aggregates.
type Granularity string

const (
	Yearly    Granularity = "yearly"
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
)

// Dimension selects the category key for concentration and Pareto
// aggregates.
type Dimension string

const (
	DimensionHs2     Dimension = "hs2"
	DimensionCountry Dimension = "country"
)

// ValueColumn selects which amount a category aggregate sums.
type ValueColumn string

const (
	ValueTax ValueColumn = "tax"
	ValueUSD ValueColumn = "value"
)

// Store runs the aggregate queries behind the analytics engine. All
// queries filter on the validity flag and a 2-digit minimum-year cutoff
// and tolerate empty result sets.
type Store interface {
	RevenueByPeriod(ctx context.Context, granularity Granularity, yearFilter string) ([]store.PeriodAggregate, error)
	CategoryTotals(ctx context.Context, dimension Dimension, value ValueColumn, yearFilter string) ([]store.CategoryAggregate, error)
	CountryBreakdown(ctx context.Context, yearFilter string, limit int) ([]store.CountryBreakdown, error)
	UndervaluationByPeriod(ctx context.Context, yearFilter string, threshold float64) ([]store.UndervaluationAggregate, error)
	MisclassificationByPeriod(ctx context.Context, yearFilter string) ([]store.MisclassificationAggregate, error)
	RiskCombinations(ctx context.Context, yearFilter string, threshold float64, minCount int) ([]store.HsCountryRisk, error)
	ImporterRisks(ctx context.Context, yearFilter string, threshold float64, minCount, minFlagged int) ([]store.ImporterRisk, error)
	PriceVariances(ctx context.Context, yearFilter string, minCount int) ([]store.PriceVariance, error)
	HsChangePatterns(ctx context.Context, yearFilter string, minCount int) ([]store.HsChangePattern, error)
	Headline(ctx context.Context, yearFilter string) (*store.HeadlineStats, error)
}

type declStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &declStore{db: db}, nil
}

func (s *declStore) RevenueByPeriod(ctx context.Context, granularity Granularity, yearFilter string) ([]store.PeriodAggregate, error) {
	var query string
	switch granularity {
	case Yearly:
		query = `
			SELECT
				'20' || decl_year AS period,
				COUNT(*) AS declaration_count,
				COALESCE(SUM(tax_amount), 0) AS total_tax,
				COALESCE(SUM(invoice_usd_amount), 0) AS total_value_usd,
				COALESCE(AVG(tax_amount), 0) AS avg_tax_per_item,
				COUNT(DISTINCT LEFT(hs_code, 2)) AS hs_chapter_count,
				COUNT(DISTINCT origin_country) AS country_count
			FROM declaration_items
			WHERE NOT deleted AND decl_year >= $1
			GROUP BY decl_year
			ORDER BY decl_year DESC`
	case Monthly:
		query = `
			SELECT
				to_char(registered_at, 'YYYY-MM') AS period,
				COUNT(*) AS declaration_count,
				COALESCE(SUM(tax_amount), 0) AS total_tax,
				COALESCE(SUM(invoice_usd_amount), 0) AS total_value_usd,
				COALESCE(AVG(tax_amount), 0) AS avg_tax_per_item,
				COUNT(DISTINCT LEFT(hs_code, 2)) AS hs_chapter_count,
				COUNT(DISTINCT origin_country) AS country_count
			FROM declaration_items
			WHERE NOT deleted
			  AND decl_year >= $1
			  AND registered_at >= now() - interval '36 months'
			GROUP BY to_char(registered_at, 'YYYY-MM')
			ORDER BY period DESC`
	case Quarterly:
		query = `
			SELECT
				'20' || decl_year || '-Q' || to_char(registered_at, 'Q') AS period,
				COUNT(*) AS declaration_count,
				COALESCE(SUM(tax_amount), 0) AS total_tax,
				COALESCE(SUM(invoice_usd_amount), 0) AS total_value_usd,
				COALESCE(AVG(tax_amount), 0) AS avg_tax_per_item,
				COUNT(DISTINCT LEFT(hs_code, 2)) AS hs_chapter_count,
				COUNT(DISTINCT origin_country) AS country_count
			FROM declaration_items
			WHERE NOT deleted AND decl_year >= $1
			GROUP BY decl_year, to_char(registered_at, 'Q')
			ORDER BY period DESC`
	default:
		return nil, fmt.Errorf("unknown granularity: %s", granularity)
	}

	rows, err := s.db.QueryContext(ctx, query, yearFilter)
	if err != nil {
		return nil, fmt.Errorf("query revenue by period: %w", err)
	}
	defer rows.Close()

	out := make([]store.PeriodAggregate, 0)
	for rows.Next() {
		var r store.PeriodAggregate
		if err := rows.Scan(&r.Period, &r.DeclarationCount, &r.TotalTax, &r.TotalValueUSD,
			&r.AvgTaxPerItem, &r.HsChapterCount, &r.CountryCount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) CategoryTotals(ctx context.Context, dimension Dimension, value ValueColumn, yearFilter string) ([]store.CategoryAggregate, error) {
	valueExpr := "SUM(tax_amount)"
	if value == ValueUSD {
		valueExpr = "SUM(invoice_usd_amount)"
	}

	var keyExpr string
	switch dimension {
	case DimensionHs2:
		keyExpr = "LEFT(hs_code, 2)"
	case DimensionCountry:
		// Null countries stay a distinct key; presentation decides the label.
		keyExpr = "COALESCE(origin_country, '')"
	default:
		return nil, fmt.Errorf("unknown dimension: %s", dimension)
	}

	query := fmt.Sprintf(`
		SELECT %s AS category, COALESCE(%s, 0) AS value
		FROM declaration_items
		WHERE NOT deleted AND decl_year >= $1
		GROUP BY 1
		ORDER BY value DESC`, keyExpr, valueExpr)

	rows, err := s.db.QueryContext(ctx, query, yearFilter)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	out := make([]store.CategoryAggregate, 0)
	for rows.Next() {
		var r store.CategoryAggregate
		if err := rows.Scan(&r.Category, &r.Value); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) CountryBreakdown(ctx context.Context, yearFilter string, limit int) ([]store.CountryBreakdown, error) {
	query := `
		SELECT
			COALESCE(origin_country, '') AS country,
			COUNT(*) AS declarations,
			COALESCE(SUM(tax_amount), 0) AS total_tax,
			COALESCE(SUM(invoice_usd_amount), 0) AS total_value_usd
		FROM declaration_items
		WHERE NOT deleted AND decl_year >= $1
		GROUP BY origin_country
		ORDER BY total_tax DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, yearFilter, limit)
	if err != nil {
		return nil, fmt.Errorf("query country breakdown: %w", err)
	}
	defer rows.Close()

	out := make([]store.CountryBreakdown, 0)
	for rows.Next() {
		var r store.CountryBreakdown
		if err := rows.Scan(&r.Country, &r.Declarations, &r.TotalTax, &r.TotalValueUSD); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) UndervaluationByPeriod(ctx context.Context, yearFilter string, threshold float64) ([]store.UndervaluationAggregate, error) {
	query := `
		SELECT
			'20' || decl_year AS period,
			COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
			                   AND declared_unit_usd > 0 THEN 1 ELSE 0 END), 0) AS underval_count,
			ROUND(COALESCE(SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
			                         AND declared_unit_usd > 0 THEN 1 ELSE 0 END), 0) * 100.0 / COUNT(*), 2) AS underval_rate,
			COALESCE(SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
			                   AND declared_unit_usd > 0
			                  THEN assessed_invoice_usd - declared_invoice_usd ELSE 0 END), 0) AS estimated_loss_usd
		FROM price_assessments
		WHERE NOT deleted AND decl_year >= $1
		GROUP BY decl_year
		ORDER BY period DESC`

	rows, err := s.db.QueryContext(ctx, query, yearFilter, threshold)
	if err != nil {
		return nil, fmt.Errorf("query undervaluation: %w", err)
	}
	defer rows.Close()

	out := make([]store.UndervaluationAggregate, 0)
	for rows.Next() {
		var r store.UndervaluationAggregate
		if err := rows.Scan(&r.Period, &r.TotalCount, &r.UndervalCount, &r.UndervalRate, &r.EstimatedLossUSD); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) MisclassificationByPeriod(ctx context.Context, yearFilter string) ([]store.MisclassificationAggregate, error) {
	query := `
		SELECT
			'20' || decl_year AS period,
			COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN declared_hs <> assessed_hs THEN 1 ELSE 0 END), 0) AS misclass_count,
			ROUND(COALESCE(SUM(CASE WHEN declared_hs <> assessed_hs THEN 1 ELSE 0 END), 0) * 100.0 / COUNT(*), 2) AS misclass_rate
		FROM price_assessments
		WHERE NOT deleted AND decl_year >= $1
		GROUP BY decl_year
		ORDER BY period DESC`

	rows, err := s.db.QueryContext(ctx, query, yearFilter)
	if err != nil {
		return nil, fmt.Errorf("query misclassification: %w", err)
	}
	defer rows.Close()

	out := make([]store.MisclassificationAggregate, 0)
	for rows.Next() {
		var r store.MisclassificationAggregate
		if err := rows.Scan(&r.Period, &r.TotalCount, &r.MisclassCount, &r.MisclassRate); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) RiskCombinations(ctx context.Context, yearFilter string, threshold float64, minCount int) ([]store.HsCountryRisk, error) {
	// Raw counts only; scoring and grading happen in the analytics engine.
	query := `
		SELECT
			LEFT(assessed_hs, 4) AS hs4,
			COALESCE(origin_country, '') AS country,
			COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
			                   AND declared_unit_usd > 0 THEN 1 ELSE 0 END), 0) AS underval_count,
			COALESCE(SUM(CASE WHEN declared_hs <> assessed_hs THEN 1 ELSE 0 END), 0) AS hs_change_count,
			COALESCE(SUM(assessed_invoice_usd), 0) AS total_value_usd
		FROM price_assessments
		WHERE NOT deleted AND decl_year >= $1 AND assessed_hs IS NOT NULL
		GROUP BY LEFT(assessed_hs, 4), origin_country
		HAVING COUNT(*) >= $3
		   AND (SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
		                  AND declared_unit_usd > 0 THEN 1 ELSE 0 END) > 0
		        OR SUM(CASE WHEN declared_hs <> assessed_hs THEN 1 ELSE 0 END) > 0)`

	rows, err := s.db.QueryContext(ctx, query, yearFilter, threshold, minCount)
	if err != nil {
		return nil, fmt.Errorf("query risk combinations: %w", err)
	}
	defer rows.Close()

	out := make([]store.HsCountryRisk, 0)
	for rows.Next() {
		var r store.HsCountryRisk
		if err := rows.Scan(&r.Hs4, &r.Country, &r.TotalCount, &r.UndervalCount, &r.HsChangeCount, &r.TotalValueUSD); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) ImporterRisks(ctx context.Context, yearFilter string, threshold float64, minCount, minFlagged int) ([]store.ImporterRisk, error) {
	query := `
		SELECT
			importer_tin AS tin,
			MAX(importer_name) AS importer_name,
			COUNT(*) AS total_count,
			COALESCE(SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
			                   AND declared_unit_usd > 0 THEN 1 ELSE 0 END), 0) AS underval_count,
			COALESCE(SUM(CASE WHEN declared_hs <> assessed_hs THEN 1 ELSE 0 END), 0) AS hs_change_count,
			COALESCE(SUM(assessed_invoice_usd), 0) AS total_value_usd
		FROM price_assessments
		WHERE NOT deleted AND decl_year >= $1
		GROUP BY importer_tin
		HAVING COUNT(*) >= $3
		   AND (SUM(CASE WHEN assessed_unit_usd > declared_unit_usd * $2
		                  AND declared_unit_usd > 0 THEN 1 ELSE 0 END) >= $4
		        OR SUM(CASE WHEN declared_hs <> assessed_hs THEN 1 ELSE 0 END) >= $4)`

	rows, err := s.db.QueryContext(ctx, query, yearFilter, threshold, minCount, minFlagged)
	if err != nil {
		return nil, fmt.Errorf("query importer risks: %w", err)
	}
	defer rows.Close()

	out := make([]store.ImporterRisk, 0)
	for rows.Next() {
		var r store.ImporterRisk
		var name sql.NullString
		if err := rows.Scan(&r.TIN, &name, &r.TotalCount, &r.UndervalCount, &r.HsChangeCount, &r.TotalValueUSD); err != nil {
			return nil, err
		}
		r.ImporterName = name.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) PriceVariances(ctx context.Context, yearFilter string, minCount int) ([]store.PriceVariance, error) {
	query := `
		SELECT
			assessed_hs AS hs_code,
			COUNT(*) AS cnt,
			ROUND(AVG(assessed_unit_usd), 2) AS avg_price,
			ROUND(STDDEV_SAMP(assessed_unit_usd), 2) AS std_price,
			ROUND(MIN(assessed_unit_usd), 2) AS min_price,
			ROUND(MAX(assessed_unit_usd), 2) AS max_price,
			ROUND(STDDEV_SAMP(assessed_unit_usd) / NULLIF(AVG(assessed_unit_usd), 0) * 100, 1) AS cv_pct
		FROM price_assessments
		WHERE NOT deleted AND decl_year >= $1 AND assessed_unit_usd > 0
		GROUP BY assessed_hs
		HAVING COUNT(*) >= $2 AND STDDEV_SAMP(assessed_unit_usd) > AVG(assessed_unit_usd)
		ORDER BY std_price DESC
		LIMIT 50`

	rows, err := s.db.QueryContext(ctx, query, yearFilter, minCount)
	if err != nil {
		return nil, fmt.Errorf("query price variances: %w", err)
	}
	defer rows.Close()

	out := make([]store.PriceVariance, 0)
	for rows.Next() {
		var r store.PriceVariance
		var cv sql.NullFloat64
		if err := rows.Scan(&r.HsCode, &r.Count, &r.AvgPrice, &r.StdPrice, &r.MinPrice, &r.MaxPrice, &cv); err != nil {
			return nil, err
		}
		r.CvPct = cv.Float64
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) HsChangePatterns(ctx context.Context, yearFilter string, minCount int) ([]store.HsChangePattern, error) {
	query := `
		SELECT
			declared_hs,
			assessed_hs,
			COUNT(*) AS cnt,
			COALESCE(SUM(assessed_invoice_usd), 0) AS total_value_usd
		FROM price_assessments
		WHERE NOT deleted
		  AND decl_year >= $1
		  AND declared_hs IS NOT NULL
		  AND assessed_hs IS NOT NULL
		  AND declared_hs <> assessed_hs
		GROUP BY declared_hs, assessed_hs
		HAVING COUNT(*) >= $2
		ORDER BY cnt DESC
		LIMIT 50`

	rows, err := s.db.QueryContext(ctx, query, yearFilter, minCount)
	if err != nil {
		return nil, fmt.Errorf("query hs change patterns: %w", err)
	}
	defer rows.Close()

	out := make([]store.HsChangePattern, 0)
	for rows.Next() {
		var r store.HsChangePattern
		if err := rows.Scan(&r.DeclaredHs, &r.AssessedHs, &r.Count, &r.TotalValueUSD); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *declStore) Headline(ctx context.Context, yearFilter string) (*store.HeadlineStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_declarations,
			COALESCE(SUM(tax_amount), 0) AS total_tax,
			COALESCE(SUM(invoice_usd_amount), 0) AS total_value_usd,
			COUNT(DISTINCT LEFT(hs_code, 2)) AS hs_chapters,
			COUNT(DISTINCT origin_country) AS countries
		FROM declaration_items
		WHERE NOT deleted AND decl_year >= $1`

	var h store.HeadlineStats
	err := s.db.QueryRowContext(ctx, query, yearFilter).Scan(
		&h.TotalDeclarations, &h.TotalTax, &h.TotalValueUSD, &h.HsChapters, &h.Countries)
	if err != nil {
		return nil, fmt.Errorf("query headline stats: %w", err)
	}
	return &h, nil
}
