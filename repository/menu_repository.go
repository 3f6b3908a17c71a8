package repository

import (
	"context"

	"tapr/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ListAvailable returns the venue's available items ordered by category,
// then price ascending. An empty category means all.
func (r *MenuRepository) ListAvailable(ctx context.Context, venueID, category string) ([]entity.MenuItem, error) {
	q := r.DB.WithContext(ctx).Where("venue_id = ? AND is_available = ?", venueID, true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	items := []entity.MenuItem{}
	err := q.Order("category ASC").Order("price ASC").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// Update applies column updates; a map keeps false/zero values.
func (r *MenuRepository) Update(ctx context.Context, id string, updates map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *MenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&entity.MenuItem{})
	return res.RowsAffected, res.Error
}
