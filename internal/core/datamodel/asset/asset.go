package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeviceType string

const (
	DeviceLaptop  DeviceType = "laptop"
	DeviceMonitor DeviceType = "monitor"
	DevicePhone   DeviceType = "phone"
)

// DeviceTypes lists every known device category, in reporting order.
var DeviceTypes = []DeviceType{DeviceLaptop, DeviceMonitor, DevicePhone}

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionDamaged   Condition = "damaged"
)

// Conditions lists every condition grade, best first.
var Conditions = []Condition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged}

// Rank orders conditions for assignment preference; higher is better.
func (c Condition) Rank() int {
	switch c {
	case ConditionExcellent:
		return 3
	case ConditionGood:
		return 2
	case ConditionFair:
		return 1
	case ConditionPoor:
		return 0
	case ConditionDamaged:
		return -1
	default:
		return 0
	}
}

// Assignable reports whether an asset in this condition may be offered
// for a new assignment. Poor and damaged assets never are.
func (c Condition) Assignable() bool {
	return c == ConditionExcellent || c == ConditionGood || c == ConditionFair
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusAssigned  Status = "assigned"
	StatusReturned  Status = "returned"
	StatusLost      Status = "lost"
	StatusDamaged   Status = "damaged"
)

// Asset is the persisted asset record. Invariant: AssignedTo is non-nil
// iff Status is assigned; an available asset carries no assignment and
// no return due date.
type Asset struct {
	ID             int64           `json:"asset_id" gorm:"column:asset_id;primaryKey"`
	AssetTag       string          `json:"asset_tag" gorm:"column:asset_tag;uniqueIndex;not null"`
	SerialNumber   string          `json:"serial_number" gorm:"column:serial_number;uniqueIndex;not null"`
	DeviceType     DeviceType      `json:"device_type" gorm:"column:device_type;not null"`
	Brand          string          `json:"brand" gorm:"column:brand;not null"`
	Model          string          `json:"model" gorm:"column:model;not null"`
	PurchaseDate   time.Time       `json:"purchase_date" gorm:"column:purchase_date;type:date;not null"`
	PurchaseValue  decimal.Decimal `json:"purchase_value" gorm:"column:purchase_value;type:numeric(10,2);not null"`
	CurrentValue   decimal.Decimal `json:"current_value" gorm:"column:current_value;type:numeric(10,2);not null"`
	AssignedTo     *int64          `json:"assigned_to,omitempty" gorm:"column:assigned_to"`
	AssignmentDate *time.Time      `json:"assignment_date,omitempty" gorm:"column:assignment_date;type:date"`
	Status         Status          `json:"status" gorm:"column:status;not null;default:available"`
	ReturnDate     *time.Time      `json:"return_date,omitempty" gorm:"column:return_date;type:date"`
	ReturnDueDate  *time.Time      `json:"return_due_date,omitempty" gorm:"column:return_due_date;type:date"`
	Condition      Condition       `json:"condition" gorm:"column:condition;not null"`
	ConditionNotes string          `json:"condition_notes,omitempty" gorm:"column:condition_notes"`
	Location       string          `json:"location" gorm:"column:location"`
	WarrantyExpiry *time.Time      `json:"warranty_expiry,omitempty" gorm:"column:warranty_expiry;type:date"`
	CreatedAt      time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

// AgeDays returns the asset age relative to today in whole days.
func (a *Asset) AgeDays(today time.Time) int {
	return int(today.Sub(a.PurchaseDate).Hours() / 24)
}

// AgeYears uses the fixed 365-day year the reporting pipeline is built
// on; it is intentionally not calendar-aware.
func (a *Asset) AgeYears(today time.Time) float64 {
	return float64(a.AgeDays(today)) / 365.0
}
