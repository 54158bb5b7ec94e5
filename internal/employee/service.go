package employee

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

// Service handles employee master data and the resignation state change.
type Service struct {
	repo     Repository
	releaser AssetReleaser
	logger   *slog.Logger
}

func NewService(repo Repository, releaser AssetReleaser, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		releaser: releaser,
		logger:   logger,
	}
}

func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*employeeDatamodel.Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("employee email already registered", internal.ErrCodeDuplicateEmail)
	}

	workMode := dto.WorkMode
	if workMode == "" {
		workMode = "office"
	}

	emp := &employeeDatamodel.Employee{
		FullName:         dto.FullName,
		Email:            dto.Email,
		Department:       dto.Department,
		Role:             dto.Role,
		ManagerID:        dto.ManagerID,
		HireDate:         dto.HireDate,
		TenureMonths:     tenureMonths(dto.HireDate, time.Now()),
		EmploymentStatus: employeeDatamodel.StatusActive,
		Location:         dto.Location,
		WorkMode:         workMode,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("employee created",
		"employee_id", emp.ID,
		"department", emp.Department,
		"role", emp.Role)

	return emp, nil
}

func (s *Service) GetEmployee(id int64) (*employeeDatamodel.Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) GetEmployeeByEmail(email string) (*employeeDatamodel.Employee, error) {
	emp, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) ListEmployees(limit, offset int) ([]*employeeDatamodel.Employee, error) {
	return s.repo.GetAll(limit, offset)
}

func (s *Service) ListByDepartment(department employeeDatamodel.Department) ([]*employeeDatamodel.Employee, error) {
	return s.repo.GetByDepartment(department)
}

func (s *Service) ListByManager(managerID int64) ([]*employeeDatamodel.Employee, error) {
	return s.repo.GetByManager(managerID)
}

func (s *Service) ListActive() ([]*employeeDatamodel.Employee, error) {
	return s.repo.GetActive()
}

func (s *Service) CountEmployees() (int64, error) {
	return s.repo.Count()
}

func (s *Service) UpdateEmployee(id int64, dto UpdateEmployeeDTO) (*employeeDatamodel.Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	if dto.FullName != nil {
		emp.FullName = *dto.FullName
	}
	if dto.Email != nil {
		emp.Email = *dto.Email
	}
	if dto.Department != nil {
		emp.Department = *dto.Department
	}
	if dto.Role != nil {
		emp.Role = *dto.Role
	}
	if dto.ManagerID != nil {
		emp.ManagerID = dto.ManagerID
	}
	if dto.HireDate != nil {
		emp.HireDate = *dto.HireDate
		emp.TenureMonths = tenureMonths(emp.HireDate, time.Now())
	}
	if dto.Status != nil {
		emp.EmploymentStatus = *dto.Status
	}
	if dto.Location != nil {
		emp.Location = *dto.Location
	}
	if dto.WorkMode != nil {
		emp.WorkMode = *dto.WorkMode
	}
	if dto.LastWorkingDay != nil {
		emp.LastWorkingDay = dto.LastWorkingDay
	}
	emp.UpdatedAt = time.Now()

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	return emp, nil
}

// MarkResigned stamps the resignation date and flips employment status.
// Asset recovery is a separate step owned by the recovery scheduler.
func (s *Service) MarkResigned(id int64, dto ResignEmployeeDTO) (*employeeDatamodel.Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDate)
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	emp.EmploymentStatus = employeeDatamodel.StatusResigned
	emp.ResignationDate = &dto.ResignationDate
	if dto.LastWorkingDay != nil {
		emp.LastWorkingDay = dto.LastWorkingDay
	}
	emp.UpdatedAt = time.Now()

	if err := s.repo.Update(emp); err != nil {
		s.logger.Error("failed to mark employee resigned", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee marked resigned",
		"employee_id", id,
		"resignation_date", dto.ResignationDate.Format("2006-01-02"))

	return emp, nil
}

// DeleteEmployee releases every held asset back to the pool before the
// record is removed, so no asset is left pointing at a dead employee.
func (s *Service) DeleteEmployee(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrEmployeeNotFound
	}

	released, err := s.releaser.ReleaseByEmployee(id)
	if err != nil {
		s.logger.Error("failed to release assets for employee", "error", err, "employee_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return err
	}

	s.logger.Info("employee deleted", "employee_id", id, "assets_released", released)
	return nil
}

func tenureMonths(hireDate, now time.Time) int {
	if hireDate.IsZero() {
		return 0
	}
	days := int(now.Sub(hireDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 30
}
