package employee

import (
	"time"
)

type Department string

const (
	DepartmentIT        Department = "it"
	DepartmentMarketing Department = "marketing"
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

type EmploymentStatus string

const (
	StatusActive       EmploymentStatus = "active"
	StatusNoticePeriod EmploymentStatus = "notice_period"
	StatusResigned     EmploymentStatus = "resigned"
)

// Employee is the persisted employee record. An employee may hold any
// number of assets; the asset rows carry the assignment, the employee
// side is a lookup only.
type Employee struct {
	ID               int64            `json:"employee_id" gorm:"column:employee_id;primaryKey"`
	FullName         string           `json:"full_name" gorm:"column:full_name;not null"`
	Email            string           `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Department       Department       `json:"department" gorm:"column:department;not null"`
	Role             Role             `json:"role" gorm:"column:role;not null"`
	ManagerID        *int64           `json:"manager_id,omitempty" gorm:"column:manager_id"`
	HireDate         time.Time        `json:"hire_date" gorm:"column:hire_date;type:date;not null"`
	TenureMonths     int              `json:"tenure_months" gorm:"column:tenure_months"`
	EmploymentStatus EmploymentStatus `json:"employment_status" gorm:"column:employment_status;not null;default:active"`
	ResignationDate  *time.Time       `json:"resignation_date,omitempty" gorm:"column:resignation_date;type:date"`
	LastWorkingDay   *time.Time       `json:"last_working_day,omitempty" gorm:"column:last_working_day;type:date"`
	Location         string           `json:"location,omitempty" gorm:"column:location"`
	WorkMode         string           `json:"work_mode" gorm:"column:work_mode;default:office"`
	CreatedAt        time.Time        `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) IsActive() bool {
	return e.EmploymentStatus == StatusActive
}
