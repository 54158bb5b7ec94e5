package churn

import (
	"context"

	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/hranalytic"
)

// Risk categories derived from the model probability.
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// Probability cutoffs for the risk categories.
const (
	HighRiskCutoff   = 0.7
	MediumRiskCutoff = 0.4
)

// Features is the input vector the churn model scores. Field names match
// the model's training schema; unknown values carry the population
// defaults the extractor fills in.
type Features struct {
	TenureMonths             int     `json:"tenure_months"`
	MonthsSinceLastPromotion int     `json:"months_since_last_promotion"`
	SalaryChangePercent1Y    float64 `json:"salary_change_percent_1y"`
	PerformanceRatingAvg     float64 `json:"performance_rating_avg"`
	PerformanceRatingTrend   float64 `json:"performance_rating_trend"`
	SickDaysYTD              int     `json:"sick_days_ytd"`
	UnplannedLeavesYTD       int     `json:"unplanned_leaves_ytd"`
	EngagementScoreLatest    float64 `json:"engagement_score_latest"`
	EngagementScoreTrend     float64 `json:"engagement_score_trend"`
	ManagerChanges           int     `json:"manager_changes"`
	DepartmentChanges        int     `json:"department_changes"`
	TrainingHoursYTD         int     `json:"training_hours_ytd"`
	OvertimeHoursAvg         float64 `json:"overtime_hours_avg"`
	RemoteWorkPercent        float64 `json:"remote_work_percent"`
	ProjectCount             int     `json:"project_count"`
	ReportsCount             int     `json:"reports_count"`
}

// Factor is one model feature contributing to a prediction.
type Factor struct {
	Feature      string  `json:"feature"`
	Value        float64 `json:"value"`
	Importance   float64 `json:"importance"`
	IsRiskFactor bool    `json:"is_risk_factor"`
}

// Prediction is one scored employee.
type Prediction struct {
	EmployeeID   int64    `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	Probability  float64  `json:"probability"`
	Prediction   int      `json:"prediction"`
	RiskCategory string   `json:"risk_category"`
	RiskLevel    int      `json:"risk_level"`
	TopFactors   []Factor `json:"top_factors,omitempty"`
	ModelVersion string   `json:"model_version,omitempty"`
}

// Categorize maps a probability to its risk category and level.
func Categorize(probability float64) (string, int) {
	switch {
	case probability >= HighRiskCutoff:
		return RiskHigh, 3
	case probability >= MediumRiskCutoff:
		return RiskMedium, 2
	default:
		return RiskLow, 1
	}
}

// ModelInfo is the model service's self-description, passed through
// untouched.
type ModelInfo struct {
	ModelVersion string             `json:"model_version"`
	TrainedAt    string             `json:"trained_at,omitempty"`
	Algorithm    string             `json:"algorithm,omitempty"`
	FeatureNames []string           `json:"feature_names,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

// Predictor scores a feature vector. The production implementation calls
// the external model service.
type Predictor interface {
	Predict(ctx context.Context, features Features) (*Prediction, error)
}

// InfoProvider exposes the model service's metadata endpoint.
type InfoProvider interface {
	Info(ctx context.Context) (*ModelInfo, error)
}

type EmployeeRepository interface {
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetActive() ([]*employeeDatamodel.Employee, error)
	GetByDepartment(department employeeDatamodel.Department) ([]*employeeDatamodel.Employee, error)
}

// AnalyticsRepository serves the monthly HR snapshots the feature
// extractor reads.
type AnalyticsRepository interface {
	GetRecentByEmployee(employeeID int64, limit int) ([]*hranalytic.HRAnalytic, error)
}
