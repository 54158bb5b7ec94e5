package asset

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-lifecycle/internal/transport"
	"github.com/go-chi/chi"

	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
)

type ServiceAPI interface {
	CreateAsset(dto CreateAssetDTO) (*assetDatamodel.Asset, error)
	GetAsset(id int64) (*assetDatamodel.Asset, error)
	GetAssetByTag(tag string) (*assetDatamodel.Asset, error)
	GetAssetBySerial(serial string) (*assetDatamodel.Asset, error)
	ListAssets(limit, offset int) ([]*assetDatamodel.Asset, error)
	ListByType(deviceType assetDatamodel.DeviceType) ([]*assetDatamodel.Asset, error)
	ListByStatus(status assetDatamodel.Status) ([]*assetDatamodel.Asset, error)
	ListByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error)
	FindAvailable(deviceType assetDatamodel.DeviceType, quantity int) (*AvailabilityResult, error)
	UpdateAsset(id int64, dto UpdateAssetDTO) (*assetDatamodel.Asset, error)
	DeleteAsset(id int64) error
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

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateAsset(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetID(w, r)
	if !ok {
		return
	}

	a, err := h.Service.GetAsset(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) GetAssetByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if tag == "" {
		h.WriteError(w, http.StatusBadRequest, "asset tag is required")
		return
	}

	a, err := h.Service.GetAssetByTag(tag)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) GetAssetBySerial(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")
	if serial == "" {
		h.WriteError(w, http.StatusBadRequest, "serial number is required")
		return
	}

	a, err := h.Service.GetAssetBySerial(serial)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if deviceType := query.Get("device_type"); deviceType != "" {
		assets, err := h.Service.ListByType(assetDatamodel.DeviceType(deviceType))
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
		return
	}

	if status := query.Get("status"); status != "" {
		assets, err := h.Service.ListByStatus(assetDatamodel.Status(status))
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
		return
	}

	if employeeIDStr := query.Get("employee_id"); employeeIDStr != "" {
		employeeID, err := strconv.ParseInt(employeeIDStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employee_id")
			return
		}
		assets, err := h.Service.ListByEmployee(employeeID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
		return
	}

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	assets, err := h.Service.ListAssets(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assets": assets})
}

// FindAvailable answers availability probes: how many assignable assets
// of a type exist, best condition first.
func (h *Handler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	deviceType := r.URL.Query().Get("device_type")
	if deviceType == "" {
		h.WriteError(w, http.StatusBadRequest, "device_type is required")
		return
	}

	quantity := queryInt(r, "quantity", 1)

	result, err := h.Service.FindAvailable(assetDatamodel.DeviceType(deviceType), quantity)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetID(w, r)
	if !ok {
		return
	}

	var dto UpdateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateAsset(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.assetID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteAsset(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}

func (h *Handler) assetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
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
