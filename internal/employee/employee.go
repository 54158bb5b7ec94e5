package employee

import (
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

// Repository defines the data access methods for employees.
type Repository interface {
	Create(emp *employeeDatamodel.Employee) error
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByEmail(email string) (*employeeDatamodel.Employee, error)
	GetAll(limit, offset int) ([]*employeeDatamodel.Employee, error)
	GetByDepartment(department employeeDatamodel.Department) ([]*employeeDatamodel.Employee, error)
	GetByManager(managerID int64) ([]*employeeDatamodel.Employee, error)
	GetActive() ([]*employeeDatamodel.Employee, error)
	Update(emp *employeeDatamodel.Employee) error
	Delete(id int64) error
	Count() (int64, error)
}

// AssetReleaser returns every asset held by an employee to the pool.
// Implemented by the asset repository; used by the delete cascade.
type AssetReleaser interface {
	ReleaseByEmployee(employeeID int64) (int64, error)
}
