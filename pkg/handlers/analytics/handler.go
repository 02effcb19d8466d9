package analytics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/customs-atlas/pkg/models/api"
	"github.com/de-tools/customs-atlas/pkg/services/kpi"
	"github.com/de-tools/customs-atlas/pkg/store/postgres/declarations"
)

type Handler struct {
	calc *kpi.Calculator
}

func NewHandler(calc *kpi.Calculator) *Handler {
	return &Handler{calc: calc}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	summary, err := h.calc.ExecutiveSummary(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute executive summary")
		http.Error(w, "summary unavailable", http.StatusInternalServerError)
		return
	}

	response := api.SummaryResponse{
		Period:            summary.Period,
		TotalDeclarations: summary.TotalDeclarations,
		TotalTax:          summary.TotalTax,
		TotalValueUSD:     summary.TotalValueUSD,
		YoYGrowthPct:      summary.YoYGrowthPct,
		VolatilityCV:      summary.VolatilityCV,
		HHICommodity:      summary.HHICommodity,
		HHICountry:        summary.HHICountry,
		UndervalRate:      summary.UndervalRate,
		Metrics:           summary.Metrics,
		GeneratedAt:       summary.GeneratedAt,
	}
	writeJSON(w, logger, response)
}

func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	entries, err := h.calc.Scorecard(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to evaluate scorecard")
		http.Error(w, "scorecard unavailable", http.StatusInternalServerError)
		return
	}

	response := make([]api.ScorecardEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, api.ScorecardEntry{
			Code:      e.Code,
			Name:      e.Name,
			Category:  string(e.Category),
			Actual:    e.Actual,
			Benchmark: e.Benchmark,
			Target:    e.Target,
			Unit:      e.Unit,
			Status:    e.Status,
		})
	}
	writeJSON(w, logger, response)
}

func (h *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	period := chi.URLParam(r, "period")

	granularity := declarations.Granularity(period)
	switch granularity {
	case declarations.Yearly, declarations.Monthly, declarations.Quarterly:
	default:
		http.Error(w, "unknown period: "+period, http.StatusBadRequest)
		return
	}

	rows, err := h.calc.RevenueByPeriod(ctx, granularity)
	if err != nil {
		logger.Error().Err(err).Str("period", period).Msg("failed to load revenue series")
		http.Error(w, "revenue unavailable", http.StatusInternalServerError)
		return
	}

	response := make([]api.RevenuePoint, 0, len(rows))
	for _, row := range rows {
		response = append(response, api.RevenuePoint{
			Period:           row.Period,
			DeclarationCount: row.DeclarationCount,
			TotalTax:         row.TotalTax,
			TotalValueUSD:    row.TotalValueUSD,
		})
	}
	writeJSON(w, logger, response)
}

func (h *Handler) GetRiskCombinations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	records, err := h.calc.RiskByHsCountry(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to score risk combinations")
		http.Error(w, "risk combinations unavailable", http.StatusInternalServerError)
		return
	}

	response := make([]api.RiskCombination, 0, len(records))
	for _, rec := range records {
		response = append(response, api.RiskCombination{
			Hs4:           rec.Hs4,
			Country:       rec.Country,
			TotalCount:    rec.TotalCount,
			UndervalCount: rec.UndervalCount,
			UndervalRate:  rec.UndervalRate,
			HsChangeCount: rec.HsChangeCount,
			HsChangeRate:  rec.HsChangeRate,
			RiskScore:     rec.RiskScore,
			Grade:         rec.Grade,
		})
	}
	writeJSON(w, logger, response)
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
