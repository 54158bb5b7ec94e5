package postgres

import (
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal/employee"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("employee_id = ?", id).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetAll(limit, offset int) ([]*employeeDatamodel.Employee, error) {
	var emps []*employeeDatamodel.Employee
	err := r.db.Order("employee_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&emps).Error
	return emps, err
}

func (r *EmployeeRepository) GetByDepartment(department employeeDatamodel.Department) ([]*employeeDatamodel.Employee, error) {
	var emps []*employeeDatamodel.Employee
	err := r.db.Where("department = ?", department).Find(&emps).Error
	return emps, err
}

func (r *EmployeeRepository) GetByManager(managerID int64) ([]*employeeDatamodel.Employee, error) {
	var emps []*employeeDatamodel.Employee
	err := r.db.Where("manager_id = ?", managerID).Find(&emps).Error
	return emps, err
}

func (r *EmployeeRepository) GetActive() ([]*employeeDatamodel.Employee, error) {
	var emps []*employeeDatamodel.Employee
	err := r.db.Where("employment_status = ?", employeeDatamodel.StatusActive).Find(&emps).Error
	return emps, err
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	emp.UpdatedAt = time.Now()
	return r.db.Save(emp).Error
}

func (r *EmployeeRepository) Delete(id int64) error {
	return r.db.Where("employee_id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
}

func (r *EmployeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).Count(&count).Error
	return count, err
}
