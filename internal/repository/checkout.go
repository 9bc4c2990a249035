package repository

import (
	"context"
	"errors"
	"time"
	"video-paywall-demo/internal/model"

	"gorm.io/gorm"
)

type CheckoutRepository interface {
	Create(ctx context.Context, checkout *model.Checkout) error
	FindByReference(ctx context.Context, reference string) (*model.Checkout, error)
	SetGatewayRef(ctx context.Context, reference, gatewayRef string) error
	MarkPaid(ctx context.Context, tx *gorm.DB, reference string) error
	MarkFailed(ctx context.Context, reference string) error
}

type checkoutRepoImpl struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepoImpl{
		db: db,
	}
}

func (r *checkoutRepoImpl) Create(ctx context.Context, checkout *model.Checkout) error {
	return r.db.WithContext(ctx).Create(checkout).Error
}

func (r *checkoutRepoImpl) FindByReference(ctx context.Context, reference string) (*model.Checkout, error) {
	var checkout model.Checkout
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&checkout).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &checkout, nil
}

func (r *checkoutRepoImpl) SetGatewayRef(ctx context.Context, reference, gatewayRef string) error {
	return r.update(ctx, r.db, reference, map[string]interface{}{
		"gateway_ref": gatewayRef,
		"updated_at":  time.Now(),
	})
}

func (r *checkoutRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, reference string) error {
	if tx == nil {
		tx = r.db
	}
	return r.update(ctx, tx, reference, map[string]interface{}{
		"status":     model.CheckoutPaid,
		"updated_at": time.Now(),
	})
}

// MarkFailed only moves pending checkouts; a paid checkout stays paid.
func (r *checkoutRepoImpl) MarkFailed(ctx context.Context, reference string) error {
	return r.db.WithContext(ctx).Model(&model.Checkout{}).
		Where("reference = ? AND status = ?", reference, model.CheckoutPending).
		Updates(map[string]interface{}{
			"status":     model.CheckoutFailed,
			"updated_at": time.Now(),
		}).Error
}

func (r *checkoutRepoImpl) update(ctx context.Context, tx *gorm.DB, reference string, values map[string]interface{}) error {
	result := tx.WithContext(ctx).Model(&model.Checkout{}).
		Where("reference = ?", reference).
		Updates(values)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}
