package repository

import (
	"context"

	"tapr/entity"

	"gorm.io/gorm"
)

type TipRepository struct {
	DB *gorm.DB
}

func NewTipRepository(db *gorm.DB) *TipRepository {
	return &TipRepository{DB: db}
}

func (r *TipRepository) Create(ctx context.Context, tip *entity.Tip) error {
	return r.DB.WithContext(ctx).Omit("Staff", "User").Create(tip).Error
}

func (r *TipRepository) FindByID(ctx context.Context, id string) (*entity.Tip, error) {
	var tip entity.Tip
	if err := r.DB.WithContext(ctx).Preload("Staff.Venue").Where("id = ?", id).First(&tip).Error; err != nil {
		return nil, err
	}
	return &tip, nil
}

// ListByUser returns the user's tips newest first with staff and venue.
func (r *TipRepository) ListByUser(ctx context.Context, userID string) ([]entity.Tip, error) {
	tips := []entity.Tip{}
	err := r.DB.WithContext(ctx).
		Preload("Staff.Venue").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id").
		Find(&tips).Error
	return tips, err
}

// CompleteGuard moves a pending tip to completed. Zero rows affected means
// the tip is missing or no longer pending.
func (r *TipRepository) CompleteGuard(ctx context.Context, id string, externalPaymentID *string) (int64, error) {
	updates := map[string]any{"status": entity.TipCompleted}
	if externalPaymentID != nil {
		updates["external_payment_id"] = *externalPaymentID
	}
	res := r.DB.WithContext(ctx).Model(&entity.Tip{}).
		Where("id = ? AND status = ?", id, entity.TipPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}
