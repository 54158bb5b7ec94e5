package asset

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
)

// Service handles asset master data and availability lookups.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateAsset(dto CreateAssetDTO) (*assetDatamodel.Asset, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("asset validation failed", "error", err, "asset_tag", dto.AssetTag)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByTag(dto.AssetTag); err == nil && existing != nil {
		return nil, internal.NewConflictError("asset tag already registered", internal.ErrCodeDuplicateAssetTag)
	}

	a := &assetDatamodel.Asset{
		AssetTag:       dto.AssetTag,
		SerialNumber:   dto.SerialNumber,
		DeviceType:     dto.DeviceType,
		Brand:          dto.Brand,
		Model:          dto.Model,
		PurchaseDate:   dto.PurchaseDate,
		PurchaseValue:  dto.PurchaseValue,
		CurrentValue:   dto.CurrentValue,
		Status:         assetDatamodel.StatusAvailable,
		Condition:      dto.Condition,
		ConditionNotes: dto.ConditionNotes,
		Location:       dto.Location,
		WarrantyExpiry: dto.WarrantyExpiry,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create asset", "error", err, "asset_tag", dto.AssetTag)
		return nil, err
	}

	s.logger.Info("asset registered",
		"asset_id", a.ID,
		"asset_tag", a.AssetTag,
		"device_type", a.DeviceType)

	return a, nil
}

func (s *Service) GetAsset(id int64) (*assetDatamodel.Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrAssetNotFound
	}
	return a, nil
}

func (s *Service) GetAssetByTag(tag string) (*assetDatamodel.Asset, error) {
	a, err := s.repo.GetByTag(tag)
	if err != nil {
		return nil, internal.ErrAssetNotFound
	}
	return a, nil
}

func (s *Service) GetAssetBySerial(serial string) (*assetDatamodel.Asset, error) {
	a, err := s.repo.GetBySerial(serial)
	if err != nil {
		return nil, internal.ErrAssetNotFound
	}
	return a, nil
}

func (s *Service) ListAssets(limit, offset int) ([]*assetDatamodel.Asset, error) {
	return s.repo.GetAll(limit, offset)
}

func (s *Service) ListByType(deviceType assetDatamodel.DeviceType) ([]*assetDatamodel.Asset, error) {
	return s.repo.GetByType(deviceType)
}

func (s *Service) ListByStatus(status assetDatamodel.Status) ([]*assetDatamodel.Asset, error) {
	return s.repo.GetByStatus(status)
}

func (s *Service) ListByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error) {
	return s.repo.GetByEmployee(employeeID)
}

func (s *Service) CountAssets() (int64, error) {
	return s.repo.Count()
}

// FindAvailable returns up to quantity assignable assets of the given
// type, best condition first. A short result is a partial answer, not an
// error; the caller decides what a shortfall means.
func (s *Service) FindAvailable(deviceType assetDatamodel.DeviceType, quantity int) (*AvailabilityResult, error) {
	if quantity <= 0 {
		return nil, internal.NewValidationError("quantity must be positive", internal.ErrCodeInvalidQuantity)
	}

	assets, err := s.repo.FindAvailable(deviceType, quantity)
	if err != nil {
		s.logger.Error("failed to find available assets", "error", err, "device_type", deviceType)
		return nil, err
	}

	return &AvailabilityResult{
		DeviceType:        deviceType,
		RequestedQuantity: quantity,
		AvailableCount:    len(assets),
		Assets:            assets,
	}, nil
}

func (s *Service) UpdateAsset(id int64, dto UpdateAssetDTO) (*assetDatamodel.Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrAssetNotFound
	}

	if dto.Brand != nil {
		a.Brand = *dto.Brand
	}
	if dto.Model != nil {
		a.Model = *dto.Model
	}
	if dto.CurrentValue != nil {
		a.CurrentValue = *dto.CurrentValue
	}
	if dto.Condition != nil {
		a.Condition = *dto.Condition
	}
	if dto.ConditionNotes != nil {
		a.ConditionNotes = *dto.ConditionNotes
	}
	if dto.Location != nil {
		a.Location = *dto.Location
	}
	if dto.WarrantyExpiry != nil {
		a.WarrantyExpiry = dto.WarrantyExpiry
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, err
	}

	return a, nil
}

func (s *Service) DeleteAsset(id int64) error {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ErrAssetNotFound
	}
	if a.Status == assetDatamodel.StatusAssigned {
		return internal.NewInvalidStateError("cannot delete an assigned asset", internal.ErrCodeAssetUnavailable)
	}
	return s.repo.Delete(id)
}
