package churn

import (
	"github.com/frahmantamala/asset-lifecycle/internal"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/hranalytic"
)

// Feature history window: monthly snapshots covering the last two years.
const featureHistoryMonths = 24

// Population defaults substituted when an employee's history does not
// carry a value. These match the distributions the model was trained on.
const (
	defaultTenureMonths    = 12
	defaultPromotionGap    = 12
	defaultSalaryChange    = 5.0
	defaultPerformance     = 3.0
	defaultSickDays        = 5
	defaultUnplannedLeaves = 2
	defaultEngagement      = 3.0
	defaultTrainingHours   = 40
	defaultOvertimeHours   = 10.0
	defaultRemotePercent   = 50.0
	defaultProjectCount    = 3
)

// ExtractFeatures derives the model input vector from an employee record
// and their recent HR snapshots, newest first. No history at all is an
// error; individual missing values fall back to the defaults.
func ExtractFeatures(emp *employeeDatamodel.Employee, records []*hranalytic.HRAnalytic) (Features, error) {
	if len(records) == 0 {
		return Features{}, internal.ErrNoFeatureHistory
	}

	latest := records[0]
	f := Features{
		TenureMonths:             defaultTenureMonths,
		MonthsSinceLastPromotion: defaultPromotionGap,
		SickDaysYTD:              defaultSickDays,
		UnplannedLeavesYTD:       defaultUnplannedLeaves,
		TrainingHoursYTD:         defaultTrainingHours,
		RemoteWorkPercent:        defaultRemotePercent,
		ProjectCount:             defaultProjectCount,
	}

	if emp.TenureMonths > 0 {
		f.TenureMonths = emp.TenureMonths
	}
	if latest.MonthsSinceLastPromotion != nil && *latest.MonthsSinceLastPromotion > 0 {
		f.MonthsSinceLastPromotion = *latest.MonthsSinceLastPromotion
	}
	if latest.SickDaysYTD != nil && *latest.SickDaysYTD > 0 {
		f.SickDaysYTD = *latest.SickDaysYTD
	}
	if latest.UnplannedLeaves != nil && *latest.UnplannedLeaves > 0 {
		f.UnplannedLeavesYTD = *latest.UnplannedLeaves
	}
	if latest.TrainingHours != nil && *latest.TrainingHours > 0 {
		f.TrainingHoursYTD = *latest.TrainingHours
	}
	if latest.RemoteWorkPercent != nil && *latest.RemoteWorkPercent > 0 {
		f.RemoteWorkPercent = *latest.RemoteWorkPercent
	}
	if latest.ProjectCount != nil && *latest.ProjectCount > 0 {
		f.ProjectCount = *latest.ProjectCount
	}

	var perfRatings []float64
	var engScores []float64
	for _, r := range records {
		if r.PerformanceRating != nil {
			perfRatings = append(perfRatings, *r.PerformanceRating)
		}
		if r.EngagementScore != nil {
			engScores = append(engScores, *r.EngagementScore)
		}
		if r.ManagerChanges != nil && *r.ManagerChanges > 0 {
			f.ManagerChanges++
		}
		if r.DepartmentChanges != nil && *r.DepartmentChanges > 0 {
			f.DepartmentChanges++
		}
	}

	f.PerformanceRatingAvg = meanOrDefault(perfRatings, defaultPerformance)
	if len(perfRatings) >= 2 {
		f.PerformanceRatingTrend = perfRatings[0] - perfRatings[len(perfRatings)-1]
	}

	if len(engScores) > 0 {
		f.EngagementScoreLatest = engScores[0]
	} else {
		f.EngagementScoreLatest = defaultEngagement
	}
	if len(engScores) >= 2 {
		f.EngagementScoreTrend = engScores[0] - engScores[len(engScores)-1]
	}

	var salaryChanges []float64
	for i, r := range records {
		if i >= 12 {
			break
		}
		if r.SalaryChangePercent != nil {
			salaryChanges = append(salaryChanges, *r.SalaryChangePercent)
		}
	}
	f.SalaryChangePercent1Y = meanOrDefault(salaryChanges, defaultSalaryChange)

	var overtime []float64
	for _, r := range records {
		if r.OvertimeHours != nil {
			overtime = append(overtime, float64(*r.OvertimeHours))
		}
	}
	f.OvertimeHoursAvg = meanOrDefault(overtime, defaultOvertimeHours)

	return f, nil
}

func meanOrDefault(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
