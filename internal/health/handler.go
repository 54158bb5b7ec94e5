package health

import (
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-lifecycle/internal/transport"
)

type ServiceAPI interface {
	AssetsForRefresh() (*RefreshReport, error)
	HealthSummary() (*Summary, error)
	AssetsByAgeRange(minYears, maxYears float64) ([]RefreshCandidate, error)
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

func (h *Handler) GetRefreshReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.AssetsForRefresh()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) GetHealthSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.HealthSummary()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// GetAssetsByAgeRange filters the fleet by age. min_years defaults to 0,
// max_years to unbounded.
func (h *Handler) GetAssetsByAgeRange(w http.ResponseWriter, r *http.Request) {
	minYears := queryFloat(r, "min_years", 0)
	maxYears := queryFloat(r, "max_years", -1)

	assets, err := h.Service.AssetsByAgeRange(minYears, maxYears)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"min_years": minYears,
		"max_years": maxYears,
		"count":     len(assets),
		"assets":    assets,
	})
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}
