package employee

import (
	"errors"
	"time"

	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

// CreateEmployeeDTO represents the request payload for creating an employee
type CreateEmployeeDTO struct {
	FullName   string                         `json:"full_name"`
	Email      string                         `json:"email"`
	Department employeeDatamodel.Department   `json:"department"`
	Role       employeeDatamodel.Role         `json:"role"`
	ManagerID  *int64                         `json:"manager_id,omitempty"`
	HireDate   time.Time                      `json:"hire_date"`
	Location   string                         `json:"location,omitempty"`
	WorkMode   string                         `json:"work_mode,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.FullName == "" {
		return errors.New("full name is required")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Department == "" {
		return errors.New("department is required")
	}
	if dto.Role != employeeDatamodel.RoleStaff && dto.Role != employeeDatamodel.RoleManager {
		return errors.New("role must be either 'staff' or 'manager'")
	}
	if dto.HireDate.IsZero() {
		return errors.New("hire date is required")
	}
	if dto.HireDate.After(time.Now()) {
		return errors.New("hire date cannot be in the future")
	}
	return nil
}

// UpdateEmployeeDTO carries partial updates; nil fields are left untouched.
type UpdateEmployeeDTO struct {
	FullName       *string                             `json:"full_name,omitempty"`
	Email          *string                             `json:"email,omitempty"`
	Department     *employeeDatamodel.Department       `json:"department,omitempty"`
	Role           *employeeDatamodel.Role             `json:"role,omitempty"`
	ManagerID      *int64                              `json:"manager_id,omitempty"`
	HireDate       *time.Time                          `json:"hire_date,omitempty"`
	Status         *employeeDatamodel.EmploymentStatus `json:"employment_status,omitempty"`
	Location       *string                             `json:"location,omitempty"`
	WorkMode       *string                             `json:"work_mode,omitempty"`
	LastWorkingDay *time.Time                          `json:"last_working_day,omitempty"`
}

// ResignEmployeeDTO marks an employee as resigning.
type ResignEmployeeDTO struct {
	ResignationDate time.Time  `json:"resignation_date"`
	LastWorkingDay  *time.Time `json:"last_working_day,omitempty"`
}

func (dto ResignEmployeeDTO) Validate() error {
	if dto.ResignationDate.IsZero() {
		return errors.New("resignation date is required")
	}
	return nil
}
