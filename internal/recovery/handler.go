package recovery

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ScheduleReturns(employeeID int64, dueDate time.Time) (*ScheduleResult, error)
	ProcessResignation(ctx context.Context, employeeID int64) (*RecoveryResult, error)
	Summary(employeeID int64) (*ResignationSummary, error)
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

// ProcessResignation runs the full recovery path for an employee whose
// resignation is already recorded.
func (h *Handler) ProcessResignation(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	result, err := h.Service.ProcessResignation(r.Context(), employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

type scheduleRequest struct {
	ReturnDueDate time.Time `json:"return_due_date"`
}

// ScheduleReturns stamps an explicit due date, overriding the grace
// period derivation.
func (h *Handler) ScheduleReturns(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReturnDueDate.IsZero() {
		h.WriteError(w, http.StatusBadRequest, "return_due_date is required")
		return
	}

	result, err := h.Service.ScheduleReturns(employeeID, req.ReturnDueDate)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// GetSummary returns the offboarding view of the employee's holdings.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Summary(employeeID)
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
