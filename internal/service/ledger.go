package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/repository"

	"gorm.io/gorm"
)

// LedgerService owns the purchase ledger and the gate in front of
// protected video files.
type LedgerService interface {
	RecordPurchase(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error
	IsAuthorized(ctx context.Context, videoID, email string) (bool, error)
	PurchasedFile(ctx context.Context, videoID, email string) (string, error)
	ListPurchases(ctx context.Context, email string) ([]*model.Purchase, error)
}

type ledgerServiceImpl struct {
	purchaseRepo repository.PurchaseRepository
	videoRepo    repository.VideoRepository
	protectedDir string
}

func NewLedgerService(
	purchaseRepo repository.PurchaseRepository,
	videoRepo repository.VideoRepository,
	protectedDir string,
) LedgerService {
	return &ledgerServiceImpl{
		purchaseRepo: purchaseRepo,
		videoRepo:    videoRepo,
		protectedDir: protectedDir,
	}
}

func (s *ledgerServiceImpl) RecordPurchase(ctx context.Context, tx *gorm.DB, purchase *model.Purchase) error {
	if purchase.Reference == "" || purchase.VideoID == "" {
		return fmt.Errorf("%w: purchase needs a reference and a video", model.ErrInvalidInput)
	}
	if purchase.CustomerEmail == "" {
		return model.ErrMissingEmail
	}
	if purchase.Currency == "" {
		purchase.Currency = "NGN"
	}
	if purchase.PaidAt.IsZero() {
		purchase.PaidAt = time.Now().UTC()
	}

	if err := s.purchaseRepo.Create(ctx, tx, purchase); err != nil {
		if errors.Is(err, model.ErrDuplicateReference) {
			return err
		}
		return fmt.Errorf("store purchase %s: %w", purchase.Reference, err)
	}

	return nil
}

func (s *ledgerServiceImpl) IsAuthorized(ctx context.Context, videoID, email string) (bool, error) {
	if videoID == "" || email == "" {
		return false, nil
	}
	return s.purchaseRepo.IsAuthorized(ctx, videoID, email)
}

// PurchasedFile returns the on-disk path of a protected video once the
// ledger shows email bought videoID.
func (s *ledgerServiceImpl) PurchasedFile(ctx context.Context, videoID, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: email required", model.ErrUnauthorized)
	}

	ok, err := s.IsAuthorized(ctx, videoID, email)
	if err != nil {
		return "", fmt.Errorf("check purchase: %w", err)
	}
	if !ok {
		return "", model.ErrUnauthorized
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("find video %s: %w", videoID, err)
	}

	path := filepath.Join(s.protectedDir, filepath.Base(video.Filename))
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", fmt.Errorf("video file %s: %w", video.Filename, model.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	return path, nil
}

func (s *ledgerServiceImpl) ListPurchases(ctx context.Context, email string) ([]*model.Purchase, error) {
	if email == "" {
		return nil, model.ErrMissingEmail
	}
	return s.purchaseRepo.ListByEmail(ctx, email)
}
