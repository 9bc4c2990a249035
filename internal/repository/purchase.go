package repository

import (
	"context"
	"video-paywall-demo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error
	Exists(ctx context.Context, reference string) (bool, error)
	IsAuthorized(ctx context.Context, videoID, email string) (bool, error)
	ListByEmail(ctx context.Context, email string) ([]*model.Purchase, error)
}

type purchaseRepositoryImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepositoryImpl{
		db: db,
	}
}

// Create appends a purchase to the ledger. A reference that is already
// recorded leaves the ledger untouched and returns ErrDuplicateReference.
func (r *purchaseRepositoryImpl) Create(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reference"}},
		DoNothing: true,
	}).Create(purchase)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrDuplicateReference
	}

	return nil
}

func (r *purchaseRepositoryImpl) Exists(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("reference = ?", reference).
		Count(&count).Error

	return count > 0, err
}

// IsAuthorized matches both fields exactly; email comparison is case-sensitive.
func (r *purchaseRepositoryImpl) IsAuthorized(ctx context.Context, videoID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("video_id = ? AND customer_email = ?", videoID, email).
		Count(&count).Error

	return count > 0, err
}

func (r *purchaseRepositoryImpl) ListByEmail(ctx context.Context, email string) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("paid_at DESC").
		Order("id DESC").
		Find(&purchases).
		Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}
