package declarations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestRevenueByPeriod_Yearly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"period", "declaration_count", "total_tax", "total_value_usd",
		"avg_tax_per_item", "hs_chapter_count", "country_count",
	}).
		AddRow("2025", 1200, 5_400_000.0, 82_000_000.0, 4500.0, 64, 41).
		AddRow("2024", 1100, 4_900_000.0, 75_000_000.0, 4454.5, 61, 39)

	mock.ExpectQuery("FROM declaration_items").
		WithArgs("23").
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.RevenueByPeriod(context.Background(), Yearly, "23")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025", got[0].Period)
	assert.Equal(t, int64(1200), got[0].DeclarationCount)
	assert.Equal(t, 5_400_000.0, got[0].TotalTax)
	assert.Equal(t, int64(41), got[0].CountryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenueByPeriod_UnknownGranularity(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	_, err = s.RevenueByPeriod(context.Background(), Granularity("weekly"), "23")
	assert.ErrorContains(t, err, "unknown granularity")
}

func TestCategoryTotals_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM declaration_items").
		WithArgs("23").
		WillReturnRows(sqlmock.NewRows([]string{"category", "value"}))

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.CategoryTotals(context.Background(), DimensionHs2, ValueTax, "23")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUndervaluationByPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"period", "total_count", "underval_count", "underval_rate", "estimated_loss_usd",
	}).AddRow("2025", 500, 40, 8.0, 1_200_000.0)

	mock.ExpectQuery("FROM price_assessments").
		WithArgs("23", 1.3).
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.UndervaluationByPeriod(context.Background(), "23", 1.3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(40), got[0].UndervalCount)
	assert.Equal(t, 8.0, got[0].UndervalRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRiskCombinations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"hs4", "country", "total_count", "underval_count", "hs_change_count", "total_value_usd",
	}).AddRow("8517", "CN", 120, 24, 12, 15_000_000.0)

	mock.ExpectQuery("FROM price_assessments").
		WithArgs("23", 1.3, 50).
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.RiskCombinations(context.Background(), "23", 1.3, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "8517", got[0].Hs4)
	assert.Equal(t, int64(24), got[0].UndervalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImporterRisks_NullName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"tin", "importer_name", "total_count", "underval_count", "hs_change_count", "total_value_usd",
	}).AddRow("500123456", nil, 80, 12, 4, 2_000_000.0)

	mock.ExpectQuery("FROM price_assessments").
		WithArgs("23", 1.3, 20, 3).
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.ImporterRisks(context.Background(), "23", 1.3, 20, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "500123456", got[0].TIN)
	assert.Equal(t, "", got[0].ImporterName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHeadline(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"total_declarations", "total_tax", "total_value_usd", "hs_chapters", "countries",
	}).AddRow(4800, 21_000_000.0, 310_000_000.0, 72, 58)

	mock.ExpectQuery("FROM declaration_items").
		WithArgs("23").
		WillReturnRows(rows)

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.Headline(context.Background(), "23")
	require.NoError(t, err)
	assert.Equal(t, int64(4800), got.TotalDeclarations)
	assert.Equal(t, 310_000_000.0, got.TotalValueUSD)
	assert.NoError(t, mock.ExpectationsWereMet())
}
