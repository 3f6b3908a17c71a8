package repository

import (
	"context"

	"tapr/entity"

	"gorm.io/gorm"
)

type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) FindByID(ctx context.Context, id string) (*entity.Staff, error) {
	var s entity.Staff
	if err := r.DB.WithContext(ctx).Preload("Venue").Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindAny returns the oldest staff record. Only the demo tip fallback uses it.
func (r *StaffRepository) FindAny(ctx context.Context) (*entity.Staff, error) {
	var s entity.Staff
	if err := r.DB.WithContext(ctx).Preload("Venue").Order("created_at ASC").Order("id").First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
