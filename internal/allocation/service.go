package allocation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

// EmployeeRepository is the slice of employee storage the matcher needs.
type EmployeeRepository interface {
	GetByID(id int64) (*employeeDatamodel.Employee, error)
}

// AssetRepository is the slice of asset storage the matcher needs. Claim
// must be atomic against concurrent claims of the same asset.
type AssetRepository interface {
	GetByID(id int64) (*assetDatamodel.Asset, error)
	FindAvailable(deviceType assetDatamodel.DeviceType, limit int) ([]*assetDatamodel.Asset, error)
	Claim(assetID, employeeID int64, assignmentDate time.Time) error
	GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error)
}

// AssignmentResult reports one committed asset assignment.
type AssignmentResult struct {
	AssetID      int64                     `json:"asset_id"`
	AssetTag     string                    `json:"asset_tag"`
	DeviceType   assetDatamodel.DeviceType `json:"device_type"`
	Condition    assetDatamodel.Condition  `json:"condition"`
	EmployeeID   int64                     `json:"employee_id"`
	EmployeeName string                    `json:"employee_name"`
	Message      string                    `json:"message"`
}

// Shortfall records a requirement the pool could not fully cover.
type Shortfall struct {
	DeviceType assetDatamodel.DeviceType `json:"device_type"`
	Required   int                       `json:"required"`
	Available  int                       `json:"available"`
	Message    string                    `json:"message"`
}

// AllocationResult aggregates a full onboarding allocation. Success means
// every requirement was covered; partial fulfillment is reported through
// Shortfalls, never rolled back.
type AllocationResult struct {
	Success        bool               `json:"success"`
	EmployeeID     int64              `json:"employee_id"`
	Assignments    []AssignmentResult `json:"assignments"`
	CompletedCount int                `json:"completed_count"`
	Shortfalls     []Shortfall        `json:"shortfalls"`
	Summary        *AssignmentSummary `json:"summary,omitempty"`
	Message        string             `json:"message"`
}

// AssignmentSummary groups an employee's currently assigned assets.
type AssignmentSummary struct {
	EmployeeID   int64                                                `json:"employee_id"`
	EmployeeName string                                               `json:"employee_name"`
	Department   employeeDatamodel.Department                         `json:"department"`
	Role         employeeDatamodel.Role                               `json:"role"`
	TotalAssets  int                                                  `json:"total_assets"`
	AssetsByType map[assetDatamodel.DeviceType][]*assetDatamodel.Asset `json:"assets_by_type"`
}

// Service is the allocation matcher: it pairs the requirement deriver
// with availability lookups and per-asset atomic claims.
type Service struct {
	employees EmployeeRepository
	assets    AssetRepository
	logger    *slog.Logger
}

func NewService(employees EmployeeRepository, assets AssetRepository, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		assets:    assets,
		logger:    logger,
	}
}

// RequirementsForEmployee derives the equipment package for an employee.
func (s *Service) RequirementsForEmployee(employeeID int64) ([]Requirement, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	reqs := DeriveRequirements(emp.Department, emp.Role)
	if len(reqs) == 0 {
		s.logger.Warn("no requirement profile for department",
			"employee_id", employeeID,
			"department", emp.Department)
	}
	return reqs, nil
}

// Assign claims one specific asset for one employee. The claim is the
// atomic unit; there is no wider transaction.
func (s *Service) Assign(employeeID, assetID int64) (*AssignmentResult, error) {
	a, err := s.assets.GetByID(assetID)
	if err != nil {
		return nil, internal.ErrAssetNotFound
	}

	if a.Status != assetDatamodel.StatusAvailable || a.AssignedTo != nil {
		return nil, internal.ErrAssetUnavailable
	}

	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if err := s.assets.Claim(assetID, employeeID, time.Now()); err != nil {
		s.logger.Warn("asset claim lost or rejected",
			"asset_id", assetID,
			"employee_id", employeeID,
			"error", err)
		return nil, err
	}

	s.logger.Info("asset assigned",
		"asset_id", assetID,
		"asset_tag", a.AssetTag,
		"employee_id", employeeID,
		"device_type", a.DeviceType)

	return &AssignmentResult{
		AssetID:      assetID,
		AssetTag:     a.AssetTag,
		DeviceType:   a.DeviceType,
		Condition:    a.Condition,
		EmployeeID:   employeeID,
		EmployeeName: emp.FullName,
		Message:      fmt.Sprintf("Asset %s assigned to %s", a.AssetTag, emp.FullName),
	}, nil
}

// AllocateForEmployee walks the derived requirements in priority order,
// records a shortfall whenever the pool is short and still assigns what
// is there. Not idempotent: the deriver does not know what was already
// assigned, so call at most once per onboarding event.
func (s *Service) AllocateForEmployee(employeeID int64) (*AllocationResult, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	reqs := DeriveRequirements(emp.Department, emp.Role)
	if len(reqs) == 0 {
		s.logger.Warn("no requirement profile for department",
			"employee_id", employeeID,
			"department", emp.Department)
	}

	result := &AllocationResult{
		EmployeeID: employeeID,
	}

	for _, req := range reqs {
		candidates, err := s.assets.FindAvailable(req.DeviceType, req.Quantity)
		if err != nil {
			s.logger.Error("availability lookup failed",
				"device_type", req.DeviceType,
				"error", err)
			return nil, err
		}

		if len(candidates) < req.Quantity {
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				DeviceType: req.DeviceType,
				Required:   req.Quantity,
				Available:  len(candidates),
				Message: fmt.Sprintf("Insufficient %ss: need %d, found %d",
					req.DeviceType, req.Quantity, len(candidates)),
			})
		}

		for _, candidate := range candidates {
			assignment, err := s.Assign(employeeID, candidate.ID)
			if err != nil {
				// Lost the claim race or state changed underneath us;
				// report it as a shortfall of one and keep going.
				result.Shortfalls = append(result.Shortfalls, Shortfall{
					DeviceType: req.DeviceType,
					Required:   1,
					Available:  0,
					Message:    fmt.Sprintf("Asset %d could not be assigned: %v", candidate.ID, err),
				})
				continue
			}
			result.Assignments = append(result.Assignments, *assignment)
		}
	}

	result.CompletedCount = len(result.Assignments)
	result.Success = len(result.Shortfalls) == 0
	result.Message = fmt.Sprintf("Asset allocation completed for employee %d. %d assets assigned, %d shortfalls.",
		employeeID, result.CompletedCount, len(result.Shortfalls))

	summary, err := s.AssignmentSummary(employeeID)
	if err == nil {
		result.Summary = summary
	}

	s.logger.Info("allocation completed",
		"employee_id", employeeID,
		"assigned", result.CompletedCount,
		"shortfalls", len(result.Shortfalls))

	return result, nil
}

// AssignmentSummary groups the employee's currently assigned assets by
// device type.
func (s *Service) AssignmentSummary(employeeID int64) (*AssignmentSummary, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	held, err := s.assets.GetByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	byType := make(map[assetDatamodel.DeviceType][]*assetDatamodel.Asset)
	for _, a := range held {
		byType[a.DeviceType] = append(byType[a.DeviceType], a)
	}

	return &AssignmentSummary{
		EmployeeID:   employeeID,
		EmployeeName: emp.FullName,
		Department:   emp.Department,
		Role:         emp.Role,
		TotalAssets:  len(held),
		AssetsByType: byType,
	}, nil
}
