package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-lifecycle/internal/recovery"
	"github.com/frahmantamala/asset-lifecycle/internal/transport"
	"github.com/go-chi/chi"

	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

type ServiceAPI interface {
	CreateEmployee(dto CreateEmployeeDTO) (*employeeDatamodel.Employee, error)
	GetEmployee(id int64) (*employeeDatamodel.Employee, error)
	ListEmployees(limit, offset int) ([]*employeeDatamodel.Employee, error)
	ListByDepartment(department employeeDatamodel.Department) ([]*employeeDatamodel.Employee, error)
	ListByManager(managerID int64) ([]*employeeDatamodel.Employee, error)
	ListActive() ([]*employeeDatamodel.Employee, error)
	UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*employeeDatamodel.Employee, error)
	MarkResigned(id int64, dto ResignEmployeeDTO) (*employeeDatamodel.Employee, error)
	DeleteEmployee(id int64) error
}

// ResignationProcessor kicks off asset recovery once the resignation is
// recorded. Implemented by the recovery scheduler.
type ResignationProcessor interface {
	ProcessResignation(ctx context.Context, employeeID int64) (*recovery.RecoveryResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Recovery ResignationProcessor
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, recovery ResignationProcessor) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Recovery:    recovery,
	}
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.CreateEmployee(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	emp, err := h.Service.GetEmployee(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if department := r.URL.Query().Get("department"); department != "" {
		employees, err := h.Service.ListByDepartment(employeeDatamodel.Department(department))
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
		return
	}

	if raw := r.URL.Query().Get("manager_id"); raw != "" {
		managerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid manager ID")
			return
		}
		employees, err := h.Service.ListByManager(managerID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
		return
	}

	if r.URL.Query().Get("status") == string(employeeDatamodel.StatusActive) {
		employees, err := h.Service.ListActive()
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	employees, err := h.Service.ListEmployees(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"employees": employees})
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateEmployee(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

// ResignEmployee records the resignation and then runs asset recovery.
// The employee state change commits even if recovery fails; the response
// carries whichever recovery result there is.
func (h *Handler) ResignEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var dto ResignEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.MarkResigned(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	recovery, err := h.Recovery.ProcessResignation(r.Context(), id)
	if err != nil {
		h.Logger.Error("resignation recorded but recovery failed",
			"employee_id", id,
			"error", err)
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"employee":       emp,
			"recovery_error": err.Error(),
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"employee": emp,
		"recovery": recovery,
	})
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "employee deleted"})
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

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}
