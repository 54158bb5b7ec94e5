package health

import (
	"log/slog"
	"sort"
	"time"

	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	"github.com/shopspring/decimal"
)

// Refresh classifications, most severe first.
const (
	RefreshUrgent      = "URGENT"
	RefreshRecommended = "RECOMMENDED"
	RefreshOK          = "OK"
)

// UrgentAgeYears marks the age past which a device is overdue for
// replacement regardless of the configured refresh cycle.
const UrgentAgeYears = 5.0

type AssetRepository interface {
	GetEntirePopulation() ([]*assetDatamodel.Asset, error)
}

// RefreshCandidate is one asset flagged by the aging classifier.
type RefreshCandidate struct {
	AssetID        int64                     `json:"asset_id"`
	AssetTag       string                    `json:"asset_tag"`
	DeviceType     assetDatamodel.DeviceType `json:"device_type"`
	Brand          string                    `json:"brand"`
	Model          string                    `json:"model"`
	AgeYears       float64                   `json:"age_years"`
	Condition      assetDatamodel.Condition  `json:"condition"`
	Status         assetDatamodel.Status     `json:"status"`
	CurrentValue   decimal.Decimal           `json:"current_value"`
	Classification string                    `json:"classification"`
}

// RefreshReport lists every asset past the refresh threshold, oldest
// first, with the book value tied up in them.
type RefreshReport struct {
	GeneratedAt       time.Time          `json:"generated_at"`
	RefreshAgeYears   int                `json:"refresh_age_years"`
	TotalAssets       int                `json:"total_assets"`
	UrgentCount       int                `json:"urgent_count"`
	RecommendedCount  int                `json:"recommended_count"`
	TotalRefreshValue decimal.Decimal    `json:"total_refresh_value"`
	Candidates        []RefreshCandidate `json:"candidates"`
}

// AgeBucket counts assets falling in one age range.
type AgeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the fleet-wide health view.
type Summary struct {
	GeneratedAt         time.Time                         `json:"generated_at"`
	TotalAssets         int                               `json:"total_assets"`
	AverageAgeYears     float64                           `json:"average_age_years"`
	OldestAgeYears      float64                           `json:"oldest_age_years"`
	NewestAgeYears      float64                           `json:"newest_age_years"`
	AgeBuckets          []AgeBucket                       `json:"age_buckets"`
	ByCondition         map[assetDatamodel.Condition]int  `json:"by_condition"`
	ByDeviceType        map[assetDatamodel.DeviceType]int `json:"by_device_type"`
	ByStatus            map[assetDatamodel.Status]int     `json:"by_status"`
	TotalPurchaseValue  decimal.Decimal                   `json:"total_purchase_value"`
	TotalCurrentValue   decimal.Decimal                   `json:"total_current_value"`
	DepreciationPercent float64                           `json:"depreciation_percent"`
	RefreshNeededCount  int                               `json:"refresh_needed_count"`
	RefreshUrgentCount  int                               `json:"refresh_urgent_count"`
}

// Service recomputes aging reports over the full asset population on
// every call; nothing is cached or persisted.
type Service struct {
	repo            AssetRepository
	refreshAgeYears int
	logger          *slog.Logger
}

func NewService(repo AssetRepository, refreshAgeYears int, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		refreshAgeYears: refreshAgeYears,
		logger:          logger,
	}
}

// Classify buckets an asset age against the refresh cycle. Ages are in
// 365-day years; the urgent threshold does not move with configuration.
func Classify(ageYears float64, refreshAgeYears int) string {
	if ageYears > UrgentAgeYears {
		return RefreshUrgent
	}
	if ageYears > float64(refreshAgeYears) {
		return RefreshRecommended
	}
	return RefreshOK
}

// AssetsForRefresh returns everything classified past OK, oldest first.
func (s *Service) AssetsForRefresh() (*RefreshReport, error) {
	population, err := s.repo.GetEntirePopulation()
	if err != nil {
		s.logger.Error("failed to load asset population", "error", err)
		return nil, err
	}

	now := time.Now()
	report := &RefreshReport{
		GeneratedAt:       now,
		RefreshAgeYears:   s.refreshAgeYears,
		TotalAssets:       len(population),
		TotalRefreshValue: decimal.Zero,
	}

	for _, a := range population {
		age := a.AgeYears(now)
		classification := Classify(age, s.refreshAgeYears)
		if classification == RefreshOK {
			continue
		}

		if classification == RefreshUrgent {
			report.UrgentCount++
		} else {
			report.RecommendedCount++
		}
		report.TotalRefreshValue = report.TotalRefreshValue.Add(a.CurrentValue)
		report.Candidates = append(report.Candidates, RefreshCandidate{
			AssetID:        a.ID,
			AssetTag:       a.AssetTag,
			DeviceType:     a.DeviceType,
			Brand:          a.Brand,
			Model:          a.Model,
			AgeYears:       age,
			Condition:      a.Condition,
			Status:         a.Status,
			CurrentValue:   a.CurrentValue,
			Classification: classification,
		})
	}

	sort.Slice(report.Candidates, func(i, j int) bool {
		return report.Candidates[i].AgeYears > report.Candidates[j].AgeYears
	})

	s.logger.Info("refresh report computed",
		"total_assets", report.TotalAssets,
		"urgent", report.UrgentCount,
		"recommended", report.RecommendedCount)

	return report, nil
}

// HealthSummary aggregates age, condition, type and value distributions
// over the whole fleet. An empty fleet yields a zeroed summary rather
// than an error.
func (s *Service) HealthSummary() (*Summary, error) {
	population, err := s.repo.GetEntirePopulation()
	if err != nil {
		s.logger.Error("failed to load asset population", "error", err)
		return nil, err
	}

	now := time.Now()
	summary := &Summary{
		GeneratedAt:        now,
		TotalAssets:        len(population),
		ByCondition:        make(map[assetDatamodel.Condition]int),
		ByDeviceType:       make(map[assetDatamodel.DeviceType]int),
		ByStatus:           make(map[assetDatamodel.Status]int),
		TotalPurchaseValue: decimal.Zero,
		TotalCurrentValue:  decimal.Zero,
	}

	buckets := []AgeBucket{
		{Label: "0-1 years"},
		{Label: "1-3 years"},
		{Label: "3+ years"},
	}

	if len(population) == 0 {
		summary.AgeBuckets = buckets
		return summary, nil
	}

	var totalAge float64
	oldest := -1.0
	newest := -1.0

	for _, a := range population {
		age := a.AgeYears(now)
		totalAge += age
		if oldest < 0 || age > oldest {
			oldest = age
		}
		if newest < 0 || age < newest {
			newest = age
		}

		switch {
		case age <= 1:
			buckets[0].Count++
		case age <= 3:
			buckets[1].Count++
		default:
			buckets[2].Count++
		}

		summary.ByCondition[a.Condition]++
		summary.ByDeviceType[a.DeviceType]++
		summary.ByStatus[a.Status]++
		summary.TotalPurchaseValue = summary.TotalPurchaseValue.Add(a.PurchaseValue)
		summary.TotalCurrentValue = summary.TotalCurrentValue.Add(a.CurrentValue)

		switch Classify(age, s.refreshAgeYears) {
		case RefreshUrgent:
			summary.RefreshUrgentCount++
			summary.RefreshNeededCount++
		case RefreshRecommended:
			summary.RefreshNeededCount++
		}
	}

	summary.AverageAgeYears = totalAge / float64(len(population))
	summary.OldestAgeYears = oldest
	summary.NewestAgeYears = newest
	summary.AgeBuckets = buckets

	// Depreciation over a fleet bought for nothing is reported as zero.
	if summary.TotalPurchaseValue.IsPositive() {
		retained := summary.TotalCurrentValue.Div(summary.TotalPurchaseValue)
		summary.DepreciationPercent, _ = decimal.NewFromInt(1).Sub(retained).Mul(decimal.NewFromInt(100)).Float64()
	}

	return summary, nil
}

// AssetsByAgeRange returns assets whose age in 365-day years falls in
// [minYears, maxYears). A negative maxYears means no upper bound.
func (s *Service) AssetsByAgeRange(minYears, maxYears float64) ([]RefreshCandidate, error) {
	population, err := s.repo.GetEntirePopulation()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var matched []RefreshCandidate
	for _, a := range population {
		age := a.AgeYears(now)
		if age < minYears {
			continue
		}
		if maxYears >= 0 && age >= maxYears {
			continue
		}
		matched = append(matched, RefreshCandidate{
			AssetID:        a.ID,
			AssetTag:       a.AssetTag,
			DeviceType:     a.DeviceType,
			Brand:          a.Brand,
			Model:          a.Model,
			AgeYears:       age,
			Condition:      a.Condition,
			Status:         a.Status,
			CurrentValue:   a.CurrentValue,
			Classification: Classify(age, s.refreshAgeYears),
		})
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].AgeYears > matched[j].AgeYears
	})

	return matched, nil
}
