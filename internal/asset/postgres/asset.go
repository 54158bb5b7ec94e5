package postgres

import (
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
	"github.com/frahmantamala/asset-lifecycle/internal/asset"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

// AssetRepository implements the asset.Repository interface using GORM
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(a *assetDatamodel.Asset) error {
	return r.db.Create(a).Error
}

func (r *AssetRepository) GetByID(id int64) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	err := r.db.Where("asset_id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) GetByTag(tag string) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	err := r.db.Where("asset_tag = ?", tag).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) GetBySerial(serial string) (*assetDatamodel.Asset, error) {
	var a assetDatamodel.Asset
	err := r.db.Where("serial_number = ?", serial).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepository) GetAll(limit, offset int) ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.Order("asset_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&assets).Error
	return assets, err
}

// GetEntirePopulation loads every asset row; the health classifier and
// demand aggregator recompute over the full population each call.
func (r *AssetRepository) GetEntirePopulation() ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.Order("asset_id ASC").Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) GetByType(deviceType assetDatamodel.DeviceType) ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.Where("device_type = ?", deviceType).Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) GetByStatus(status assetDatamodel.Status) ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.Where("status = ?", status).Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.Where("assigned_to = ? AND status = ?", employeeID, assetDatamodel.StatusAssigned).
		Find(&assets).Error
	return assets, err
}

// FindAvailable selects assignable stock ranked best condition first,
// asset ID ascending as the stable tiebreak.
func (r *AssetRepository) FindAvailable(deviceType assetDatamodel.DeviceType, limit int) ([]*assetDatamodel.Asset, error) {
	var assets []*assetDatamodel.Asset
	err := r.db.
		Where("device_type = ? AND status = ? AND assigned_to IS NULL", deviceType, assetDatamodel.StatusAvailable).
		Where("condition IN ?", []assetDatamodel.Condition{
			assetDatamodel.ConditionExcellent,
			assetDatamodel.ConditionGood,
			assetDatamodel.ConditionFair,
		}).
		Order("CASE condition WHEN 'excellent' THEN 3 WHEN 'good' THEN 2 WHEN 'fair' THEN 1 ELSE 0 END DESC, asset_id ASC").
		Limit(limit).
		Find(&assets).Error
	return assets, err
}

// Claim is the compare-and-swap that guards concurrent assignment: the
// conditional UPDATE only succeeds while the asset is still available
// and unassigned. Zero rows affected means another writer won the race
// (or the asset was never claimable) and the caller gets
// ErrAssetUnavailable.
func (r *AssetRepository) Claim(assetID, employeeID int64, assignmentDate time.Time) error {
	res := r.db.Model(&assetDatamodel.Asset{}).
		Where("asset_id = ? AND status = ? AND assigned_to IS NULL", assetID, assetDatamodel.StatusAvailable).
		Updates(map[string]interface{}{
			"assigned_to":     employeeID,
			"assignment_date": assignmentDate,
			"status":          assetDatamodel.StatusAssigned,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrAssetUnavailable
	}
	return nil
}

// ScheduleReturns stamps the due date on every asset the employee holds.
// Status stays assigned; scheduling does not release anything.
func (r *AssetRepository) ScheduleReturns(employeeID int64, dueDate time.Time) (int64, error) {
	res := r.db.Model(&assetDatamodel.Asset{}).
		Where("assigned_to = ? AND status = ?", employeeID, assetDatamodel.StatusAssigned).
		Updates(map[string]interface{}{
			"return_due_date": dueDate,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

// ReleaseByEmployee puts every asset held by the employee back in the
// pool: available, unassigned, no due date.
func (r *AssetRepository) ReleaseByEmployee(employeeID int64) (int64, error) {
	res := r.db.Model(&assetDatamodel.Asset{}).
		Where("assigned_to = ?", employeeID).
		Updates(map[string]interface{}{
			"status":          assetDatamodel.StatusAvailable,
			"assigned_to":     nil,
			"assignment_date": nil,
			"return_due_date": nil,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *AssetRepository) Update(a *assetDatamodel.Asset) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}

func (r *AssetRepository) Delete(id int64) error {
	return r.db.Where("asset_id = ?", id).Delete(&assetDatamodel.Asset{}).Error
}

func (r *AssetRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&assetDatamodel.Asset{}).Count(&count).Error
	return count, err
}
