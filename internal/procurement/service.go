package procurement

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal/churn"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	"github.com/frahmantamala/asset-lifecycle/internal/health"
)

// Procurement priorities, most pressing first.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
	PriorityNone   = "NONE"
)

// urgentRefreshAgeYears is the demand-side urgency split. It sits at the
// boundary the classifier treats as strictly-greater; a device exactly
// five 365-day years old counts as urgent demand while the classifier
// still reports it as recommended.
const urgentRefreshAgeYears = 5.0

// RefreshReporter supplies the aging side of the forecast.
type RefreshReporter interface {
	AssetsForRefresh() (*health.RefreshReport, error)
}

// ChurnScorer supplies the resignation-risk side of the forecast.
type ChurnScorer interface {
	HighRiskEmployees(ctx context.Context) (*churn.HighRiskReport, error)
}

type AssetRepository interface {
	GetByEmployee(employeeID int64) ([]*assetDatamodel.Asset, error)
	GetByStatus(status assetDatamodel.Status) ([]*assetDatamodel.Asset, error)
}

// TypeDemand is the per-device-type demand breakdown. TotalDemand is the
// plain sum of both drivers: an aging asset held by a high-risk employee
// is counted by each, which deliberately overstates demand rather than
// understating it.
type TypeDemand struct {
	RefreshUrgent      int `json:"refresh_urgent"`
	RefreshRecommended int `json:"refresh_recommended"`
	RefreshNeeded      int `json:"refresh_needed"`
	ChurnReplacement   int `json:"churn_replacement"`
	TotalDemand        int `json:"total_demand"`
}

// AtRiskEmployee details one high-churn-risk employee and their holdings.
type AtRiskEmployee struct {
	EmployeeID       int64                   `json:"employee_id"`
	EmployeeName     string                  `json:"employee_name"`
	ChurnProbability float64                 `json:"churn_probability"`
	AssetCount       int                     `json:"asset_count"`
	Assets           []*assetDatamodel.Asset `json:"assets"`
}

// DemandAnalysis is the aggregated forecast input.
type DemandAnalysis struct {
	ForecastMonths    int                                      `json:"forecast_period_months"`
	ForecastDate      time.Time                                `json:"forecast_date"`
	RefreshTotal      int                                      `json:"refresh_total"`
	ChurnAssetsAtRisk int                                      `json:"churn_assets_at_risk"`
	HighRiskEmployees int                                      `json:"high_risk_employees"`
	AtRiskDetail      []AtRiskEmployee                         `json:"at_risk_employees"`
	DemandByType      map[assetDatamodel.DeviceType]TypeDemand `json:"demand_by_type"`
}

// Recommendation is one per-device-type procurement decision.
type Recommendation struct {
	DeviceType            assetDatamodel.DeviceType `json:"device_type"`
	RefreshNeeded         int                       `json:"refresh_needed"`
	ChurnReplacement      int                       `json:"churn_replacement"`
	TotalBaseDemand       int                       `json:"total_base_demand"`
	SafetyBuffer          int                       `json:"safety_buffer"`
	TotalNeededWithBuffer int                       `json:"total_needed_with_buffer"`
	AvailableStock        int                       `json:"available_stock"`
	Shortage              int                       `json:"shortage"`
	Surplus               int                       `json:"surplus"`
	ActionRequired        bool                      `json:"action_required"`
	PurchaseQuantity      int                       `json:"purchase_quantity"`
	Priority              string                    `json:"priority"`
	EstimatedTimeline     string                    `json:"estimated_timeline"`
	Recommendation        string                    `json:"recommendation"`
}

// Summary is the condensed forecast view: just what to buy and why.
type Summary struct {
	ProcurementNeeded    bool                              `json:"procurement_needed"`
	TotalUnitsToPurchase int                               `json:"total_units_to_purchase"`
	PurchaseByType       map[assetDatamodel.DeviceType]int `json:"purchase_by_type"`
	UrgentItems          []string                          `json:"urgent_items"`
	Message              string                            `json:"message"`
	ForecastPeriod       string                            `json:"forecast_period"`
}

// Report is the full procurement forecast.
type Report struct {
	ForecastMonths       int                               `json:"forecast_period_months"`
	ForecastDate         time.Time                         `json:"forecast_date"`
	SafetyStockPercent   float64                           `json:"safety_stock_percent"`
	TotalDeviceTypes     int                               `json:"total_device_types"`
	TypesNeedingPurchase int                               `json:"types_needing_procurement"`
	TotalUnitsToPurchase int                               `json:"total_units_to_purchase"`
	InventorySufficient  bool                              `json:"inventory_sufficient"`
	SummaryMessage       string                            `json:"summary_message"`
	Recommendations      []Recommendation                  `json:"recommendations"`
	Demand               *DemandAnalysis                   `json:"demand_details,omitempty"`
	AvailableInventory   map[assetDatamodel.DeviceType]int `json:"available_inventory"`
}

// Service combines the aging report and the churn forecast into
// per-device-type purchase recommendations.
type Service struct {
	refresh            RefreshReporter
	scorer             ChurnScorer
	assets             AssetRepository
	forecastMonths     int
	safetyStockPercent float64
	logger             *slog.Logger
}

func NewService(refresh RefreshReporter, scorer ChurnScorer, assets AssetRepository, forecastMonths int, safetyStockPercent float64, logger *slog.Logger) *Service {
	return &Service{
		refresh:            refresh,
		scorer:             scorer,
		assets:             assets,
		forecastMonths:     forecastMonths,
		safetyStockPercent: safetyStockPercent,
		logger:             logger,
	}
}

// AggregateDemand sums refresh-driven and churn-driven demand per device
// type. A failed churn forecast degrades to a refresh-only analysis; the
// aging side failing is fatal. A non-positive forecastMonths falls back
// to the configured horizon.
func (s *Service) AggregateDemand(ctx context.Context, forecastMonths int) (*DemandAnalysis, error) {
	if forecastMonths <= 0 {
		forecastMonths = s.forecastMonths
	}

	refreshReport, err := s.refresh.AssetsForRefresh()
	if err != nil {
		s.logger.Error("refresh report failed", "error", err)
		return nil, err
	}

	analysis := &DemandAnalysis{
		ForecastMonths: forecastMonths,
		ForecastDate:   time.Now(),
		RefreshTotal:   len(refreshReport.Candidates),
		DemandByType:   make(map[assetDatamodel.DeviceType]TypeDemand),
	}

	for _, candidate := range refreshReport.Candidates {
		demand := analysis.DemandByType[candidate.DeviceType]
		if candidate.AgeYears >= urgentRefreshAgeYears {
			demand.RefreshUrgent++
		} else {
			demand.RefreshRecommended++
		}
		demand.RefreshNeeded = demand.RefreshUrgent + demand.RefreshRecommended
		analysis.DemandByType[candidate.DeviceType] = demand
	}

	highRisk, err := s.scorer.HighRiskEmployees(ctx)
	if err != nil {
		s.logger.Warn("churn forecast unavailable, demand is refresh-only", "error", err)
	} else {
		analysis.HighRiskEmployees = highRisk.HighRiskCount
		for _, prediction := range highRisk.Employees {
			held, err := s.assets.GetByEmployee(prediction.EmployeeID)
			if err != nil {
				s.logger.Warn("failed to load assets for at-risk employee",
					"employee_id", prediction.EmployeeID,
					"error", err)
				continue
			}

			for _, a := range held {
				demand := analysis.DemandByType[a.DeviceType]
				demand.ChurnReplacement++
				analysis.DemandByType[a.DeviceType] = demand
				analysis.ChurnAssetsAtRisk++
			}

			analysis.AtRiskDetail = append(analysis.AtRiskDetail, AtRiskEmployee{
				EmployeeID:       prediction.EmployeeID,
				EmployeeName:     prediction.EmployeeName,
				ChurnProbability: prediction.Probability,
				AssetCount:       len(held),
				Assets:           held,
			})
		}
	}

	for deviceType, demand := range analysis.DemandByType {
		demand.TotalDemand = demand.RefreshNeeded + demand.ChurnReplacement
		analysis.DemandByType[deviceType] = demand
	}

	s.logger.Info("demand aggregated",
		"refresh_total", analysis.RefreshTotal,
		"churn_assets_at_risk", analysis.ChurnAssetsAtRisk,
		"high_risk_employees", analysis.HighRiskEmployees)

	return analysis, nil
}

// Recommend compares demand against available stock, adds the safety
// buffer and emits one recommendation per device type with demand,
// sorted most actionable first. A non-positive forecastMonths and a
// negative safetyStockPercent fall back to the configured values; an
// explicit zero percent means no buffer.
func (s *Service) Recommend(ctx context.Context, forecastMonths int, safetyStockPercent float64) (*Report, error) {
	if forecastMonths <= 0 {
		forecastMonths = s.forecastMonths
	}
	if safetyStockPercent < 0 {
		safetyStockPercent = s.safetyStockPercent
	}

	demand, err := s.AggregateDemand(ctx, forecastMonths)
	if err != nil {
		return nil, err
	}

	available, err := s.assets.GetByStatus(assetDatamodel.StatusAvailable)
	if err != nil {
		s.logger.Error("failed to load available stock", "error", err)
		return nil, err
	}

	availableByType := make(map[assetDatamodel.DeviceType]int)
	for _, a := range available {
		availableByType[a.DeviceType]++
	}

	report := &Report{
		ForecastMonths:     forecastMonths,
		ForecastDate:       time.Now(),
		SafetyStockPercent: safetyStockPercent,
		Demand:             demand,
		AvailableInventory: availableByType,
	}

	for deviceType, typeDemand := range demand.DemandByType {
		stock := availableByType[deviceType]
		// Buffer is truncated, never rounded up.
		neededWithBuffer := int(float64(typeDemand.TotalDemand) * (1 + safetyStockPercent))
		shortage := max(0, neededWithBuffer-stock)
		surplus := max(0, stock-neededWithBuffer)

		rec := Recommendation{
			DeviceType:            deviceType,
			RefreshNeeded:         typeDemand.RefreshNeeded,
			ChurnReplacement:      typeDemand.ChurnReplacement,
			TotalBaseDemand:       typeDemand.TotalDemand,
			SafetyBuffer:          neededWithBuffer - typeDemand.TotalDemand,
			TotalNeededWithBuffer: neededWithBuffer,
			AvailableStock:        stock,
			Shortage:              shortage,
			Surplus:               surplus,
			ActionRequired:        shortage > 0,
			PurchaseQuantity:      shortage,
			Priority:              classifyPriority(typeDemand, shortage),
			EstimatedTimeline:     fmt.Sprintf("%d months", forecastMonths),
			Recommendation:        recommendationMessage(deviceType, shortage, surplus, typeDemand),
		}
		report.Recommendations = append(report.Recommendations, rec)
	}

	sort.Slice(report.Recommendations, func(i, j int) bool {
		a, b := report.Recommendations[i], report.Recommendations[j]
		if a.ActionRequired != b.ActionRequired {
			return a.ActionRequired
		}
		if priorityRank(a.Priority) != priorityRank(b.Priority) {
			return priorityRank(a.Priority) > priorityRank(b.Priority)
		}
		return a.PurchaseQuantity > b.PurchaseQuantity
	})

	var toPurchase []string
	for _, rec := range report.Recommendations {
		if !rec.ActionRequired {
			continue
		}
		report.TypesNeedingPurchase++
		report.TotalUnitsToPurchase += rec.PurchaseQuantity
		toPurchase = append(toPurchase, fmt.Sprintf("%s: purchase %d units (%s priority)",
			rec.DeviceType, rec.PurchaseQuantity, rec.Priority))
	}

	report.TotalDeviceTypes = len(report.Recommendations)
	report.InventorySufficient = report.TypesNeedingPurchase == 0
	if report.InventorySufficient {
		report.SummaryMessage = "Current inventory is sufficient for forecasted demand."
	} else {
		report.SummaryMessage = fmt.Sprintf("Procurement needed for %d device type(s): %s",
			report.TypesNeedingPurchase, strings.Join(toPurchase, "; "))
	}

	s.logger.Info("procurement recommendations generated",
		"device_types", report.TotalDeviceTypes,
		"types_needing_procurement", report.TypesNeedingPurchase,
		"total_units", report.TotalUnitsToPurchase)

	return report, nil
}

// DetailedReport is the full forecast with the demand breakdown
// optionally stripped for callers that only want the decision.
func (s *Service) DetailedReport(ctx context.Context, includeDetails bool) (*Report, error) {
	report, err := s.Recommend(ctx, 0, -1)
	if err != nil {
		return nil, err
	}
	if !includeDetails {
		report.Demand = nil
	}
	return report, nil
}

// Summarize condenses the forecast into purchase quantities per type.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	report, err := s.Recommend(ctx, 0, -1)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		PurchaseByType: make(map[assetDatamodel.DeviceType]int),
		ForecastPeriod: fmt.Sprintf("%d months", report.ForecastMonths),
	}

	var items []string
	for _, rec := range report.Recommendations {
		if !rec.ActionRequired {
			continue
		}
		summary.PurchaseByType[rec.DeviceType] = rec.PurchaseQuantity
		summary.TotalUnitsToPurchase += rec.PurchaseQuantity
		items = append(items, fmt.Sprintf("%d %s(s)", rec.PurchaseQuantity, rec.DeviceType))
		if rec.Priority == PriorityHigh {
			summary.UrgentItems = append(summary.UrgentItems, fmt.Sprintf("%d %s(s)", rec.PurchaseQuantity, rec.DeviceType))
		}
	}

	summary.ProcurementNeeded = len(summary.PurchaseByType) > 0
	if summary.ProcurementNeeded {
		summary.Message = fmt.Sprintf("Purchase needed: %s", strings.Join(items, ", "))
	} else {
		summary.Message = "Inventory sufficient for forecasted demand"
	}

	return summary, nil
}

// classifyPriority buckets a shortage. The HIGH branch is checked first:
// any refresh-driven demand escalates regardless of shortage size.
func classifyPriority(demand TypeDemand, shortage int) string {
	if shortage == 0 {
		return PriorityNone
	}
	if demand.RefreshNeeded > 0 || shortage >= 5 {
		return PriorityHigh
	}
	if shortage >= 2 || demand.TotalDemand >= 3 {
		return PriorityMedium
	}
	return PriorityLow
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func recommendationMessage(deviceType assetDatamodel.DeviceType, shortage, surplus int, demand TypeDemand) string {
	if shortage > 0 {
		var reasons []string
		if demand.RefreshNeeded > 0 {
			reasons = append(reasons, fmt.Sprintf("%d aging assets need replacement", demand.RefreshNeeded))
		}
		if demand.ChurnReplacement > 0 {
			reasons = append(reasons, fmt.Sprintf("%d assets at risk due to employee churn", demand.ChurnReplacement))
		}
		return fmt.Sprintf("Purchase %d %s(s) to meet demand. %s.",
			shortage, deviceType, strings.Join(reasons, " and "))
	}
	if surplus > 0 {
		return fmt.Sprintf("Inventory sufficient. %d surplus %s(s) available.", surplus, deviceType)
	}
	return fmt.Sprintf("Inventory matches demand for %s.", deviceType)
}
