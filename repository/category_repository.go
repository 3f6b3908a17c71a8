package repository

import (
	"context"

	"tapr/entity"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) ListByVenue(ctx context.Context, venueID string) ([]entity.MenuCategory, error) {
	categories := []entity.MenuCategory{}
	err := r.DB.WithContext(ctx).Where("venue_id = ?", venueID).Order("name ASC").Find(&categories).Error
	return categories, err
}

// Create relies on the (venue_id, slug) unique index; a clash surfaces as
// gorm.ErrDuplicatedKey.
func (r *CategoryRepository) Create(ctx context.Context, category *entity.MenuCategory) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.MenuCategory{})
	return res.RowsAffected, res.Error
}
