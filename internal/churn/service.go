package churn

import (
	"context"
	"log/slog"
	"sort"

	"github.com/frahmantamala/asset-lifecycle/internal"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
)

// HighRiskReport lists employees scored at or above the threshold.
type HighRiskReport struct {
	TotalEmployees int           `json:"total_employees"`
	HighRiskCount  int           `json:"high_risk_count"`
	Threshold      float64       `json:"threshold"`
	Employees      []*Prediction `json:"high_risk_employees"`
}

// RiskSummary counts predictions per category.
type RiskSummary struct {
	HighRisk   int `json:"high_risk"`
	MediumRisk int `json:"medium_risk"`
	LowRisk    int `json:"low_risk"`
}

// CommonFactor is a risk factor shared across a department.
type CommonFactor struct {
	Feature           string  `json:"feature"`
	AffectedEmployees int     `json:"affected_employees"`
	AvgImportance     float64 `json:"avg_importance"`
}

// DepartmentReport aggregates churn risk over one department.
type DepartmentReport struct {
	Department         employeeDatamodel.Department `json:"department"`
	TotalEmployees     int                          `json:"total_employees"`
	PredictionsCount   int                          `json:"predictions_count"`
	ErrorsCount        int                          `json:"errors_count"`
	AverageProbability float64                      `json:"average_churn_probability"`
	RiskSummary        RiskSummary                  `json:"risk_summary"`
	CommonRiskFactors  []CommonFactor               `json:"common_risk_factors"`
	Predictions        []*Prediction                `json:"predictions"`
}

// Service runs churn scoring over the employee base: feature extraction
// from HR snapshots, one model call per employee.
type Service struct {
	employees EmployeeRepository
	analytics AnalyticsRepository
	predictor Predictor
	threshold float64
	logger    *slog.Logger
}

func NewService(employees EmployeeRepository, analytics AnalyticsRepository, predictor Predictor, threshold float64, logger *slog.Logger) *Service {
	if threshold <= 0 || threshold > 1 {
		threshold = HighRiskCutoff
	}
	return &Service{
		employees: employees,
		analytics: analytics,
		predictor: predictor,
		threshold: threshold,
		logger:    logger,
	}
}

// PredictEmployee scores one employee end to end.
func (s *Service) PredictEmployee(ctx context.Context, employeeID int64) (*Prediction, error) {
	emp, err := s.employees.GetByID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	records, err := s.analytics.GetRecentByEmployee(employeeID, featureHistoryMonths)
	if err != nil {
		s.logger.Error("failed to load HR snapshots", "error", err, "employee_id", employeeID)
		return nil, err
	}

	features, err := ExtractFeatures(emp, records)
	if err != nil {
		return nil, err
	}

	prediction, err := s.predictor.Predict(ctx, features)
	if err != nil {
		return nil, err
	}

	prediction.EmployeeID = emp.ID
	prediction.EmployeeName = emp.FullName

	s.logger.Info("churn prediction computed",
		"employee_id", emp.ID,
		"probability", prediction.Probability,
		"risk_category", prediction.RiskCategory)

	return prediction, nil
}

// BatchResult collects per-employee outcomes of a batch scoring run.
type BatchResult struct {
	Requested   int              `json:"requested"`
	Scored      int              `json:"scored"`
	Failed      int              `json:"failed"`
	Predictions []*Prediction    `json:"predictions"`
	Errors      map[int64]string `json:"errors,omitempty"`
}

// BatchPredict scores a caller-supplied set of employees. Individual
// failures are collected, not fatal.
func (s *Service) BatchPredict(ctx context.Context, employeeIDs []int64) (*BatchResult, error) {
	result := &BatchResult{Requested: len(employeeIDs)}

	for _, id := range employeeIDs {
		prediction, err := s.PredictEmployee(ctx, id)
		if err != nil {
			if result.Errors == nil {
				result.Errors = make(map[int64]string)
			}
			result.Errors[id] = err.Error()
			result.Failed++
			continue
		}
		result.Predictions = append(result.Predictions, prediction)
	}
	result.Scored = len(result.Predictions)

	return result, nil
}

// ModelInfo passes the model service's metadata through, when the
// predictor exposes it.
func (s *Service) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	provider, ok := s.predictor.(InfoProvider)
	if !ok {
		return nil, internal.ErrChurnModelUnavailable
	}
	return provider.Info(ctx)
}

// HighRiskEmployees scores every active employee and keeps those at or
// above the threshold, highest probability first. Employees that cannot
// be scored are skipped, not fatal.
func (s *Service) HighRiskEmployees(ctx context.Context) (*HighRiskReport, error) {
	active, err := s.employees.GetActive()
	if err != nil {
		s.logger.Error("failed to load active employees", "error", err)
		return nil, err
	}

	report := &HighRiskReport{
		TotalEmployees: len(active),
		Threshold:      s.threshold,
	}

	for _, emp := range active {
		prediction, err := s.PredictEmployee(ctx, emp.ID)
		if err != nil {
			s.logger.Warn("skipping unscoreable employee",
				"employee_id", emp.ID,
				"error", err)
			continue
		}
		if prediction.Probability >= s.threshold {
			report.Employees = append(report.Employees, prediction)
		}
	}

	sort.Slice(report.Employees, func(i, j int) bool {
		return report.Employees[i].Probability > report.Employees[j].Probability
	})
	report.HighRiskCount = len(report.Employees)

	return report, nil
}

// DepartmentChurn scores everyone in one department and summarizes the
// risk distribution and the factors the predictions have in common.
func (s *Service) DepartmentChurn(ctx context.Context, department employeeDatamodel.Department) (*DepartmentReport, error) {
	members, err := s.employees.GetByDepartment(department)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, internal.NewNotFoundError("no employees found in department", internal.ErrCodeEmployeeNotFound)
	}

	report := &DepartmentReport{
		Department:     department,
		TotalEmployees: len(members),
	}

	var totalProbability float64
	factorStats := make(map[string]*CommonFactor)

	for _, emp := range members {
		prediction, err := s.PredictEmployee(ctx, emp.ID)
		if err != nil {
			report.ErrorsCount++
			continue
		}

		report.Predictions = append(report.Predictions, prediction)
		totalProbability += prediction.Probability

		switch prediction.RiskCategory {
		case RiskHigh:
			report.RiskSummary.HighRisk++
		case RiskMedium:
			report.RiskSummary.MediumRisk++
		default:
			report.RiskSummary.LowRisk++
		}

		for _, factor := range prediction.TopFactors {
			stat, ok := factorStats[factor.Feature]
			if !ok {
				stat = &CommonFactor{Feature: factor.Feature}
				factorStats[factor.Feature] = stat
			}
			stat.AffectedEmployees++
			stat.AvgImportance += factor.Importance
		}
	}

	report.PredictionsCount = len(report.Predictions)
	if report.PredictionsCount > 0 {
		report.AverageProbability = totalProbability / float64(report.PredictionsCount)
	}

	sort.Slice(report.Predictions, func(i, j int) bool {
		return report.Predictions[i].Probability > report.Predictions[j].Probability
	})

	for _, stat := range factorStats {
		stat.AvgImportance /= float64(stat.AffectedEmployees)
		report.CommonRiskFactors = append(report.CommonRiskFactors, *stat)
	}
	sort.Slice(report.CommonRiskFactors, func(i, j int) bool {
		return report.CommonRiskFactors[i].AffectedEmployees > report.CommonRiskFactors[j].AffectedEmployees
	})
	if len(report.CommonRiskFactors) > 5 {
		report.CommonRiskFactors = report.CommonRiskFactors[:5]
	}

	return report, nil
}
