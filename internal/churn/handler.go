package churn

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-lifecycle/internal/transport"
	"github.com/go-chi/chi"

	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

type ServiceAPI interface {
	PredictEmployee(ctx context.Context, employeeID int64) (*Prediction, error)
	BatchPredict(ctx context.Context, employeeIDs []int64) (*BatchResult, error)
	HighRiskEmployees(ctx context.Context) (*HighRiskReport, error)
	DepartmentChurn(ctx context.Context, department employeeDatamodel.Department) (*DepartmentReport, error)
	ModelInfo(ctx context.Context) (*ModelInfo, error)
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

func (h *Handler) PredictEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	employeeID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	prediction, err := h.Service.PredictEmployee(r.Context(), employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, prediction)
}

func (h *Handler) GetHighRisk(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.HighRiskEmployees(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) BatchPredict(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeIDs []int64 `json:"employee_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.EmployeeIDs) == 0 {
		h.WriteError(w, http.StatusBadRequest, "employee_ids is required")
		return
	}

	result, err := h.Service.BatchPredict(r.Context(), req.EmployeeIDs)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Service.ModelInfo(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) GetDepartmentChurn(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	if department == "" {
		h.WriteError(w, http.StatusBadRequest, "department is required")
		return
	}

	report, err := h.Service.DepartmentChurn(r.Context(), employeeDatamodel.Department(department))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}
