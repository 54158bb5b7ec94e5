package asset

import (
	"time"

	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
)

// Repository defines the data access methods for assets.
type Repository interface {
	Create(a *assetDatamodel.Asset) error
	GetByID(id int64) (*assetDatamodel.Asset, error)
	GetByTag(tag string) (*assetDatamodel.Asset, error)
	GetBySerial(serial string) (*assetDatamodel.Asset, error)
	GetAll(limit, offset int) ([]*assetDatamodel.Asset, error)
	GetEntirePopulation() ([]*assetDatamodel.Asset, error)
	GetByType(deviceType assetDatamodel.DeviceType) ([]*assetDatamodel.Asset, error)
	GetByStatus(status assetDatamodel.Status) ([]*assetDatamodel.Asset, error)
	GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error)
	FindAvailable(deviceType assetDatamodel.DeviceType, limit int) ([]*assetDatamodel.Asset, error)
	Claim(assetID, employeeID int64, assignmentDate time.Time) error
	ScheduleReturns(employeeID int64, dueDate time.Time) (int64, error)
	ReleaseByEmployee(employeeID int64) (int64, error)
	Update(a *assetDatamodel.Asset) error
	Delete(id int64) error
	Count() (int64, error)
}

// AvailabilityResult is the partial-result answer of FindAvailable: fewer
// assets than requested is a valid outcome the caller interprets, not an
// error.
type AvailabilityResult struct {
	DeviceType        assetDatamodel.DeviceType `json:"device_type"`
	RequestedQuantity int                       `json:"requested_quantity"`
	AvailableCount    int                       `json:"available_count"`
	Assets            []*assetDatamodel.Asset   `json:"assets"`
}
