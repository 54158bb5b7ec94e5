package procurement

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-lifecycle/internal/transport"
)

type ServiceAPI interface {
	AggregateDemand(ctx context.Context, forecastMonths int) (*DemandAnalysis, error)
	Recommend(ctx context.Context, forecastMonths int, safetyStockPercent float64) (*Report, error)
	DetailedReport(ctx context.Context, includeDetails bool) (*Report, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetDemand returns the aggregated demand forecast without stock
// comparison. forecast_months overrides the configured horizon.
func (h *Handler) GetDemand(w http.ResponseWriter, r *http.Request) {
	forecastMonths, ok := h.forecastMonthsParam(w, r)
	if !ok {
		return
	}

	analysis, err := h.Service.AggregateDemand(r.Context(), forecastMonths)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, analysis)
}

// GetRecommendations returns per-device-type purchase recommendations.
// forecast_months and safety_stock_percent override the configured
// values for this call only.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	forecastMonths, ok := h.forecastMonthsParam(w, r)
	if !ok {
		return
	}

	safetyStockPercent := -1.0
	if raw := r.URL.Query().Get("safety_stock_percent"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			h.WriteError(w, http.StatusBadRequest, "invalid safety_stock_percent")
			return
		}
		safetyStockPercent = v
	}

	report, err := h.Service.Recommend(r.Context(), forecastMonths, safetyStockPercent)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// GetReport returns the full forecast; include_details=false strips the
// demand breakdown.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	includeDetails := r.URL.Query().Get("include_details") != "false"

	report, err := h.Service.DetailedReport(r.Context(), includeDetails)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

// GetSummary returns the condensed purchase-quantities view.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summarize(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) forecastMonthsParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("forecast_months")
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid forecast_months")
		return 0, false
	}
	return v, true
}
