package allocation

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-lifecycle/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	RequirementsForEmployee(employeeID int64) ([]Requirement, error)
	Assign(employeeID, assetID int64) (*AssignmentResult, error)
	AllocateForEmployee(employeeID int64) (*AllocationResult, error)
	AssignmentSummary(employeeID int64) (*AssignmentSummary, error)
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

// GetRequirements shows the standard equipment package for an employee.
func (h *Handler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	reqs, err := h.Service.RequirementsForEmployee(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee_id":  employeeID,
		"requirements": reqs,
	})
}

// Allocate runs the full onboarding allocation for an employee. Partial
// fulfillment still returns 200; the shortfalls are in the body.
func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	result, err := h.Service.AllocateForEmployee(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

type assignRequest struct {
	AssetID int64 `json:"asset_id"`
}

// Assign claims one specific asset for the employee.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AssetID == 0 {
		h.WriteError(w, http.StatusBadRequest, "asset_id is required")
		return
	}

	result, err := h.Service.Assign(employeeID, req.AssetID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// GetSummary returns the employee's current holdings grouped by type.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.AssignmentSummary(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, false
	}
	return id, true
}
