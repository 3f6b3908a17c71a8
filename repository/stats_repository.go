package repository

import (
	"context"

	"tapr/entity"

	"gorm.io/gorm"
)

type Totals struct {
	Venues         int64   `json:"venues"`
	MenuItems      int64   `json:"menuItems"`
	MenuCategories int64   `json:"menuCategories"`
	Users          int64   `json:"users"`
	Tips           int64   `json:"tips"`
	CompletedTips  float64 `json:"completedTipVolume"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Totals(ctx context.Context) (*Totals, error) {
	db := r.db.WithContext(ctx)
	var t Totals
	if err := db.Model(&entity.Venue{}).Count(&t.Venues).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.MenuItem{}).Count(&t.MenuItems).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.MenuCategory{}).Count(&t.MenuCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.User{}).Count(&t.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Tip{}).Count(&t.Tips).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entity.Tip{}).
		Where("status = ?", entity.TipCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&t.CompletedTips).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// DailyVisits returns counters for days >= since (YYYY-MM-DD), oldest first.
func (r *StatsRepository) DailyVisits(ctx context.Context, since string) ([]entity.DailyStat, error) {
	stats := []entity.DailyStat{}
	err := r.db.WithContext(ctx).Where("date >= ?", since).Order("date ASC").Find(&stats).Error
	return stats, err
}
