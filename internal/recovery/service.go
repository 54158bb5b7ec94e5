package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"github.com/frahmantamala/asset-lifecycle/internal/core/events"
	"github.com/shopspring/decimal"
)

// DefaultGraceDays is the return window granted after the resignation
// date when the caller does not override it.
const DefaultGraceDays = 7

type EmployeeRepository interface {
	GetByID(id int64) (*employeeDatamodel.Employee, error)
}

type AssetRepository interface {
	GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error)
	ScheduleReturns(employeeID int64, dueDate time.Time) (int64, error)
}

// EventPublisher decouples scheduling from notification delivery; the
// scheduler never waits on downstream handlers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ScheduleResult reports a committed return schedule.
type ScheduleResult struct {
	EmployeeID     int64     `json:"employee_id"`
	ReturnDueDate  time.Time `json:"return_due_date"`
	AssetsAffected int64     `json:"assets_affected"`
	Message        string    `json:"message"`
}

// RecoveryResult aggregates a processed resignation.
type RecoveryResult struct {
	Success         bool       `json:"success"`
	EmployeeID      int64      `json:"employee_id"`
	EmployeeName    string     `json:"employee_name"`
	ResignationDate *time.Time `json:"resignation_date,omitempty"`
	ReturnDueDate   *time.Time `json:"return_due_date,omitempty"`
	TotalAssets     int        `json:"total_assets"`
	AssetsScheduled int64      `json:"assets_scheduled"`
	NoticeSent      bool       `json:"notice_sent"`
	Message         string     `json:"message"`
}

// ResignationSummary is the offboarding view of an employee's holdings.
type ResignationSummary struct {
	EmployeeID      int64                             `json:"employee_id"`
	EmployeeName    string                            `json:"employee_name"`
	EmployeeEmail   string                            `json:"employee_email"`
	ResignationDate *time.Time                        `json:"resignation_date,omitempty"`
	LastWorkingDay  *time.Time                        `json:"last_working_day,omitempty"`
	Status          employeeDatamodel.EmploymentStatus `json:"employment_status"`
	ManagerName     string                            `json:"manager_name,omitempty"`
	ManagerEmail    string                            `json:"manager_email,omitempty"`
	TotalAssets     int                               `json:"total_assets"`
	AssetsByType    map[assetDatamodel.DeviceType]int `json:"assets_by_type"`
	TotalValue      decimal.Decimal                   `json:"total_asset_value"`
	Assets          []*assetDatamodel.Asset           `json:"assets"`
}

// Service is the recovery scheduler: it stamps return due dates on every
// asset a resigning employee holds and emits the return notice event.
type Service struct {
	employees EmployeeRepository
	assets    AssetRepository
	publisher EventPublisher
	graceDays int
	logger    *slog.Logger
}

func NewService(employees EmployeeRepository, assets AssetRepository, publisher EventPublisher, graceDays int, logger *slog.Logger) *Service {
	if graceDays <= 0 {
		graceDays = DefaultGraceDays
	}
	return &Service{
		employees: employees,
		assets:    assets,
		publisher: publisher,
		graceDays: graceDays,
		logger:    logger,
	}
}

// ComputeDueDate is pure date addition over the grace period.
func ComputeDueDate(resignationDate time.Time, graceDays int) time.Time {
	return resignationDate.AddDate(0, 0, graceDays)
}

// ScheduleReturns stamps the due date on every asset currently held by
// the employee. Status stays assigned; the physical return transition
// happens outside this system.
func (s *Service) ScheduleReturns(employeeID int64, dueDate time.Time) (*ScheduleResult, error) {
	if _, err := s.employees.GetByID(employeeID); err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	affected, err := s.assets.ScheduleReturns(employeeID, dueDate)
	if err != nil {
		s.logger.Error("failed to schedule returns", "error", err, "employee_id", employeeID)
		return nil, err
	}

	s.logger.Info("return dates scheduled",
		"employee_id", employeeID,
		"return_due_date", dueDate.Format("2006-01-02"),
		"assets_affected", affected)

	return &ScheduleResult{
		EmployeeID:     employeeID,
		ReturnDueDate:  dueDate,
		AssetsAffected: affected,
		Message:        fmt.Sprintf("Return dates scheduled for %d assets", affected),
	}, nil
}

// ProcessResignation runs the offboarding path: no assets means a no-op
// success, a missing resignation date is an invalid state, otherwise the
// due date is computed, returns are scheduled and the notice event goes
// out. Event delivery is fire-and-forget.
func (s *Service) ProcessResignation(ctx context.Context, employeeID int64) (*RecoveryResult, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	held, err := s.assets.GetByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	if len(held) == 0 {
		s.logger.Info("no assets to recover", "employee_id", employeeID)
		return &RecoveryResult{
			Success:      true,
			EmployeeID:   employeeID,
			EmployeeName: emp.FullName,
			Message:      fmt.Sprintf("Employee %s has no assigned assets", emp.FullName),
		}, nil
	}

	if emp.ResignationDate == nil {
		s.logger.Error("resignation date not set", "employee_id", employeeID)
		return nil, internal.ErrMissingResignationDate
	}

	dueDate := ComputeDueDate(*emp.ResignationDate, s.graceDays)

	schedule, err := s.ScheduleReturns(employeeID, dueDate)
	if err != nil {
		return nil, err
	}

	noticeSent := s.publishReturnNotice(ctx, emp, dueDate, held)

	return &RecoveryResult{
		Success:         true,
		EmployeeID:      employeeID,
		EmployeeName:    emp.FullName,
		ResignationDate: emp.ResignationDate,
		ReturnDueDate:   &dueDate,
		TotalAssets:     len(held),
		AssetsScheduled: schedule.AssetsAffected,
		NoticeSent:      noticeSent,
		Message:         fmt.Sprintf("Asset recovery initiated for %s", emp.FullName),
	}, nil
}

func (s *Service) publishReturnNotice(ctx context.Context, emp *employeeDatamodel.Employee, dueDate time.Time, held []*assetDatamodel.Asset) bool {
	event := events.NewReturnScheduled(emp.ID)
	event.EmployeeName = emp.FullName
	event.EmployeeEmail = emp.Email
	event.ResignationDate = *emp.ResignationDate
	event.ReturnDueDate = dueDate

	if emp.ManagerID != nil {
		if manager, err := s.employees.GetByID(*emp.ManagerID); err == nil {
			event.ManagerEmail = manager.Email
		} else {
			s.logger.Warn("manager lookup failed for return notice",
				"employee_id", emp.ID,
				"manager_id", *emp.ManagerID)
		}
	}

	for _, a := range held {
		event.Assets = append(event.Assets, events.ReturnAsset{
			AssetTag:      a.AssetTag,
			DeviceType:    string(a.DeviceType),
			Brand:         a.Brand,
			Model:         a.Model,
			Condition:     string(a.Condition),
			ReturnDueDate: dueDate.Format("2006-01-02"),
		})
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		// Scheduling already committed; a lost notice is logged, not fatal.
		s.logger.Error("failed to publish return notice", "error", err, "employee_id", emp.ID)
		return false
	}
	return true
}

// Summary builds the offboarding view of an employee's holdings.
func (s *Service) Summary(employeeID int64) (*ResignationSummary, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	held, err := s.assets.GetByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	byType := make(map[assetDatamodel.DeviceType]int)
	total := decimal.Zero
	for _, a := range held {
		byType[a.DeviceType]++
		total = total.Add(a.CurrentValue)
	}

	summary := &ResignationSummary{
		EmployeeID:      employeeID,
		EmployeeName:    emp.FullName,
		EmployeeEmail:   emp.Email,
		ResignationDate: emp.ResignationDate,
		LastWorkingDay:  emp.LastWorkingDay,
		Status:          emp.EmploymentStatus,
		TotalAssets:     len(held),
		AssetsByType:    byType,
		TotalValue:      total,
		Assets:          held,
	}

	if emp.ManagerID != nil {
		if manager, err := s.employees.GetByID(*emp.ManagerID); err == nil {
			summary.ManagerName = manager.FullName
			summary.ManagerEmail = manager.Email
		}
	}

	return summary, nil
}
