package hranalytic

import "time"

// HRAnalytic is one monthly metrics snapshot for an employee. The churn
// feature extractor reads the most recent 24 records.
type HRAnalytic struct {
	ID                       int64     `json:"record_id" gorm:"column:record_id;primaryKey"`
	EmployeeID               int64     `json:"employee_id" gorm:"column:employee_id;index;not null"`
	RecordDate               time.Time `json:"record_date" gorm:"column:record_date;type:date;not null"`
	PerformanceRating        *float64  `json:"performance_rating,omitempty" gorm:"column:performance_rating"`
	PromotionCount           *int      `json:"promotion_count,omitempty" gorm:"column:promotion_count"`
	MonthsSinceLastPromotion *int      `json:"months_since_last_promotion,omitempty" gorm:"column:months_since_last_promotion"`
	SalaryChangePercent      *float64  `json:"salary_change_percent,omitempty" gorm:"column:salary_change_percent"`
	SickDaysYTD              *int      `json:"sick_days_ytd,omitempty" gorm:"column:sick_days_ytd"`
	UnplannedLeaves          *int      `json:"unplanned_leaves,omitempty" gorm:"column:unplanned_leaves"`
	EngagementScore          *float64  `json:"engagement_score,omitempty" gorm:"column:engagement_score"`
	TrainingHours            *int      `json:"training_hours,omitempty" gorm:"column:training_hours"`
	ManagerChanges           *int      `json:"manager_changes,omitempty" gorm:"column:manager_changes"`
	DepartmentChanges        *int      `json:"department_changes,omitempty" gorm:"column:department_changes"`
	OvertimeHours            *int      `json:"overtime_hours,omitempty" gorm:"column:overtime_hours"`
	RemoteWorkPercent        *float64  `json:"remote_work_percent,omitempty" gorm:"column:remote_work_percent"`
	ProjectCount             *int      `json:"project_count,omitempty" gorm:"column:project_count"`
	TenureMonths             *int      `json:"tenure_months,omitempty" gorm:"column:tenure_months"`
}

func (HRAnalytic) TableName() string {
	return "hr_analytics"
}
