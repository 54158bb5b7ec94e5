package postgres

import (
	"github.com/frahmantamala/asset-lifecycle/internal/churn"
	"github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/hranalytic"
	"gorm.io/gorm"
)

// AnalyticsRepository implements churn.AnalyticsRepository using GORM
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) churn.AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// GetRecentByEmployee returns the newest snapshots first.
func (r *AnalyticsRepository) GetRecentByEmployee(employeeID int64, limit int) ([]*hranalytic.HRAnalytic, error) {
	var records []*hranalytic.HRAnalytic
	err := r.db.Where("employee_id = ?", employeeID).
		Order("record_date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
