package asset

import (
	"errors"
	"time"

	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	"github.com/shopspring/decimal"
)

// CreateAssetDTO represents the request payload for registering an asset
type CreateAssetDTO struct {
	AssetTag       string                     `json:"asset_tag"`
	SerialNumber   string                     `json:"serial_number"`
	DeviceType     assetDatamodel.DeviceType  `json:"device_type"`
	Brand          string                     `json:"brand"`
	Model          string                     `json:"model"`
	PurchaseDate   time.Time                  `json:"purchase_date"`
	PurchaseValue  decimal.Decimal            `json:"purchase_value"`
	CurrentValue   decimal.Decimal            `json:"current_value"`
	Condition      assetDatamodel.Condition   `json:"condition"`
	ConditionNotes string                     `json:"condition_notes,omitempty"`
	Location       string                     `json:"location"`
	WarrantyExpiry *time.Time                 `json:"warranty_expiry,omitempty"`
}

func (dto CreateAssetDTO) Validate() error {
	if dto.AssetTag == "" {
		return errors.New("asset tag is required")
	}
	if dto.SerialNumber == "" {
		return errors.New("serial number is required")
	}
	switch dto.DeviceType {
	case assetDatamodel.DeviceLaptop, assetDatamodel.DeviceMonitor, assetDatamodel.DevicePhone:
	default:
		return errors.New("device type must be laptop, monitor or phone")
	}
	if dto.PurchaseDate.IsZero() {
		return errors.New("purchase date is required")
	}
	if dto.PurchaseDate.After(time.Now()) {
		return errors.New("purchase date cannot be in the future")
	}
	if dto.PurchaseValue.IsNegative() {
		return errors.New("purchase value cannot be negative")
	}
	if dto.CurrentValue.IsNegative() {
		return errors.New("current value cannot be negative")
	}
	valid := false
	for _, c := range assetDatamodel.Conditions {
		if dto.Condition == c {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("unknown condition grade")
	}
	return nil
}

// UpdateAssetDTO carries partial updates; nil fields are left untouched.
// Assignment fields are deliberately absent: assignment state changes
// only through the allocation and recovery flows.
type UpdateAssetDTO struct {
	Brand          *string                   `json:"brand,omitempty"`
	Model          *string                   `json:"model,omitempty"`
	CurrentValue   *decimal.Decimal          `json:"current_value,omitempty"`
	Condition      *assetDatamodel.Condition `json:"condition,omitempty"`
	ConditionNotes *string                   `json:"condition_notes,omitempty"`
	Location       *string                   `json:"location,omitempty"`
	WarrantyExpiry *time.Time                `json:"warranty_expiry,omitempty"`
}
