package repository

import (
	"context"

	"tapr/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitRepository struct {
	DB *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{DB: db}
}

// Record appends the visit and bumps the day's counter atomically.
func (r *VisitRepository) Record(ctx context.Context, visit *entity.Visit, day string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Venue").Create(visit).Error; err != nil {
			return err
		}
		stat := entity.DailyStat{Date: day, TotalVisits: 1}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"total_visits": gorm.Expr("daily_stats.total_visits + 1"),
			}),
		}).Create(&stat).Error
	})
}

func (r *VisitRepository) CountByVenue(ctx context.Context, venueID string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Visit{}).Where("venue_id = ?", venueID).Count(&n).Error
	return n, err
}
