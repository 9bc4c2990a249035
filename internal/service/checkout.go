package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"video-paywall-demo/internal/client"
	"video-paywall-demo/internal/dto"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusSuccess   = "success"
	StatusCancelled = "cancelled"

	paystackChargeSuccess = "charge.success"
)

type CheckoutService interface {
	InitPaystack(ctx context.Context, videoID, email string) (*dto.CheckoutResponse, error)
	VerifyPaystack(ctx context.Context, reference string) (*dto.VerifyResponse, error)
	HandlePaystackWebhook(ctx context.Context, signature string, body []byte) error

	InitBraintree(ctx context.Context, videoID, email string) (*dto.BraintreeInitResponse, error)
	CompleteBraintree(ctx context.Context, reference, nonce string) (*dto.VerifyResponse, error)
	VerifyBraintree(ctx context.Context, reference string) (*dto.VerifyResponse, error)
}

type checkoutServiceImpl struct {
	db               *gorm.DB
	log              *zap.Logger
	paystackClient   client.PaystackClient
	braintreeClient  client.BraintreeClient
	serviceBaseUrl   string
	ledger           LedgerService
	videoRepo        repository.VideoRepository
	checkoutRepo     repository.CheckoutRepository
	webhookEventRepo repository.WebhookEventRepository
}

// NewCheckoutService wires the gateways to the ledger. braintreeClient may be
// nil when Braintree is not configured.
func NewCheckoutService(
	db *gorm.DB,
	log *zap.Logger,
	paystackClient client.PaystackClient,
	braintreeClient client.BraintreeClient,
	serviceBaseUrl string,
	ledger LedgerService,
	videoRepo repository.VideoRepository,
	checkoutRepo repository.CheckoutRepository,
	webhookEventRepo repository.WebhookEventRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		db:               db,
		log:              log,
		paystackClient:   paystackClient,
		braintreeClient:  braintreeClient,
		serviceBaseUrl:   strings.TrimRight(serviceBaseUrl, "/"),
		ledger:           ledger,
		videoRepo:        videoRepo,
		checkoutRepo:     checkoutRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

// resolveVideo validates the checkout input in the order the API reports it:
// unknown video first, then a missing email.
func (s *checkoutServiceImpl) resolveVideo(ctx context.Context, videoID, email string) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInvalidVideo
	}
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}

	if strings.TrimSpace(email) == "" {
		return nil, model.ErrMissingEmail
	}

	return video, nil
}

func (s *checkoutServiceImpl) InitPaystack(ctx context.Context, videoID, email string) (*dto.CheckoutResponse, error) {
	video, err := s.resolveVideo(ctx, videoID, email)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	resp, err := s.paystackClient.InitializeTransaction(ctx, &client.InitializeRequest{
		Email:       email,
		Amount:      video.Price,
		Currency:    video.Currency,
		Reference:   reference,
		CallbackURL: s.serviceBaseUrl + "/paystack/callback",
		Metadata:    map[string]string{"video_id": video.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}
	if resp.Reference != "" {
		reference = resp.Reference
	}

	err = s.checkoutRepo.Create(ctx, &model.Checkout{
		Reference: reference,
		Provider:  model.ProviderPaystack,
		VideoID:   video.ID,
		Email:     email,
		Amount:    video.Price,
		Currency:  video.Currency,
		Status:    model.CheckoutPending,
	})
	if err != nil {
		return nil, fmt.Errorf("store checkout: %w", err)
	}

	return &dto.CheckoutResponse{
		AuthURL: resp.AuthorizationURL,
		Ref:     reference,
	}, nil
}

func (s *checkoutServiceImpl) VerifyPaystack(ctx context.Context, reference string) (*dto.VerifyResponse, error) {
	tx, err := s.paystackClient.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}

	if tx.Status != StatusSuccess {
		s.markFailed(ctx, reference)
		return &dto.VerifyResponse{Status: StatusCancelled, Reference: reference}, nil
	}

	return s.settlePaystack(ctx, reference, tx, nil)
}

func (s *checkoutServiceImpl) HandlePaystackWebhook(ctx context.Context, signature string, body []byte) error {
	if err := s.paystackClient.VerifyWebhookSignature(body, signature); err != nil {
		return fmt.Errorf("verify webhook signature: %w", err)
	}

	var event model.PaystackWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: decode webhook payload: %v", model.ErrInvalidInput, err)
	}

	eventID := fmt.Sprintf("%s:%d:%s", event.Event, event.Data.ID, event.Data.Reference)
	processed, err := s.webhookEventRepo.Exists(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		s.log.Info("webhook event already processed", zap.String("event_id", eventID))
		return nil
	}

	switch event.Event {
	case paystackChargeSuccess:
		_, err := s.settlePaystack(ctx, event.Data.Reference, &event.Data, func(tx *gorm.DB) error {
			return s.webhookEventRepo.MarkProcessed(ctx, tx, eventID, event.Event)
		})
		return err
	default:
		s.log.Info("ignoring webhook event", zap.String("event", event.Event))
		return s.webhookEventRepo.MarkProcessed(ctx, nil, eventID, event.Event)
	}
}

// settlePaystack records a successful Paystack transaction. The video comes
// from the local checkout, falling back to the metadata sent at init.
func (s *checkoutServiceImpl) settlePaystack(ctx context.Context, reference string, tx *model.PaystackTransaction, also func(tx *gorm.DB) error) (*dto.VerifyResponse, error) {
	checkout, err := s.checkoutRepo.FindByReference(ctx, reference)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("find checkout: %w", err)
	}

	if checkout == nil {
		checkout, err = s.checkoutFromMetadata(ctx, reference, tx)
		if err != nil {
			return nil, err
		}
		if checkout == nil {
			return &dto.VerifyResponse{Status: StatusCancelled, Reference: reference}, nil
		}
	}

	// the buyer is who opened the checkout; the gateway may normalize the email
	email := checkout.Email
	if email == "" {
		email = tx.Customer.Email
	}
	currency := checkout.Currency
	if currency == "" {
		currency = tx.Currency
	}

	err = s.settle(ctx, checkout, &model.Purchase{
		VideoID:       checkout.VideoID,
		CustomerEmail: email,
		Reference:     reference,
		Amount:        tx.Amount,
		Currency:      currency,
		Provider:      model.ProviderPaystack,
		PaidAt:        parsePaidAt(tx.PaidAt),
	}, also)
	if err != nil {
		return nil, err
	}

	return &dto.VerifyResponse{Status: StatusSuccess, Reference: reference, VideoID: checkout.VideoID}, nil
}

// checkoutFromMetadata rebuilds an unsaved checkout for a transaction that
// was opened elsewhere, priced from the catalog. It returns nil when the
// metadata names no known video.
func (s *checkoutServiceImpl) checkoutFromMetadata(ctx context.Context, reference string, tx *model.PaystackTransaction) (*model.Checkout, error) {
	videoID := tx.VideoID()
	if videoID == "" {
		s.log.Warn("paid transaction has no checkout and no video", zap.String("reference", reference))
		return nil, nil
	}

	video, err := s.videoRepo.FindByID(ctx, videoID)
	if errors.Is(err, model.ErrNotFound) {
		s.log.Warn("paid transaction names an unknown video",
			zap.String("reference", reference), zap.String("video_id", videoID))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}

	return &model.Checkout{
		Reference: reference,
		Provider:  model.ProviderPaystack,
		VideoID:   video.ID,
		Email:     tx.Customer.Email,
		Amount:    video.Price,
		Currency:  video.Currency,
	}, nil
}

// settle writes the purchase and flips the checkout to PAID in one
// transaction. A reference that is already in the ledger counts as settled.
func (s *checkoutServiceImpl) settle(ctx context.Context, checkout *model.Checkout, purchase *model.Purchase, also func(tx *gorm.DB) error) error {
	if checkout.Amount > 0 && purchase.Amount < checkout.Amount {
		s.markFailed(ctx, checkout.Reference)
		return fmt.Errorf("%w: paid %d, expected %d for %s", model.ErrGateway, purchase.Amount, checkout.Amount, checkout.Reference)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.ledger.RecordPurchase(ctx, tx, purchase)
		if errors.Is(err, model.ErrDuplicateReference) {
			s.log.Info("purchase already recorded", zap.String("reference", purchase.Reference))
		} else if err != nil {
			return fmt.Errorf("record purchase: %w", err)
		}

		if checkout.Status != "" {
			if err := s.checkoutRepo.MarkPaid(ctx, tx, checkout.Reference); err != nil {
				return fmt.Errorf("mark checkout paid: %w", err)
			}
		}

		if also != nil {
			return also(tx)
		}
		return nil
	})
}

func (s *checkoutServiceImpl) markFailed(ctx context.Context, reference string) {
	if err := s.checkoutRepo.MarkFailed(ctx, reference); err != nil {
		s.log.Warn("mark checkout failed", zap.String("reference", reference), zap.Error(err))
	}
}

func (s *checkoutServiceImpl) requireBraintree() error {
	if s.braintreeClient == nil {
		return fmt.Errorf("%w: braintree is not configured", model.ErrGateway)
	}
	return nil
}

func (s *checkoutServiceImpl) InitBraintree(ctx context.Context, videoID, email string) (*dto.BraintreeInitResponse, error) {
	if err := s.requireBraintree(); err != nil {
		return nil, err
	}

	video, err := s.resolveVideo(ctx, videoID, email)
	if err != nil {
		return nil, err
	}

	token, err := s.braintreeClient.ClientToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("braintree client token: %w", err)
	}

	reference := uuid.NewString()
	err = s.checkoutRepo.Create(ctx, &model.Checkout{
		Reference: reference,
		Provider:  model.ProviderBraintree,
		VideoID:   video.ID,
		Email:     email,
		Amount:    video.Price,
		Currency:  video.Currency,
		Status:    model.CheckoutPending,
	})
	if err != nil {
		return nil, fmt.Errorf("store checkout: %w", err)
	}

	return &dto.BraintreeInitResponse{
		ClientToken: token,
		Ref:         reference,
		Amount:      minorToDecimal(video.Price).StringFixed(2),
		Currency:    video.Currency,
	}, nil
}

func (s *checkoutServiceImpl) CompleteBraintree(ctx context.Context, reference, nonce string) (*dto.VerifyResponse, error) {
	if err := s.requireBraintree(); err != nil {
		return nil, err
	}
	if reference == "" || nonce == "" {
		return nil, fmt.Errorf("%w: reference and nonce required", model.ErrInvalidInput)
	}

	checkout, err := s.braintreeCheckout(ctx, reference)
	if err != nil {
		return nil, err
	}
	if checkout.Status == model.CheckoutPaid {
		return &dto.VerifyResponse{Status: StatusSuccess, Reference: reference, VideoID: checkout.VideoID}, nil
	}

	sale, err := s.braintreeClient.Sale(ctx, nonce, reference, minorToDecimal(checkout.Amount))
	if err != nil {
		s.markFailed(ctx, reference)
		return nil, fmt.Errorf("braintree sale: %w", err)
	}

	if err := s.checkoutRepo.SetGatewayRef(ctx, reference, sale.TransactionID); err != nil {
		return nil, fmt.Errorf("store braintree transaction id: %w", err)
	}

	return s.settleBraintree(ctx, checkout, sale)
}

// VerifyBraintree re-reads a charged checkout from Braintree and settles it
// if the sale went through but was never recorded.
func (s *checkoutServiceImpl) VerifyBraintree(ctx context.Context, reference string) (*dto.VerifyResponse, error) {
	if err := s.requireBraintree(); err != nil {
		return nil, err
	}

	checkout, err := s.braintreeCheckout(ctx, reference)
	if err != nil {
		return nil, err
	}
	if checkout.Status == model.CheckoutPaid {
		return &dto.VerifyResponse{Status: StatusSuccess, Reference: reference, VideoID: checkout.VideoID}, nil
	}
	if checkout.GatewayRef == "" {
		return &dto.VerifyResponse{Status: StatusCancelled, Reference: reference}, nil
	}

	sale, err := s.braintreeClient.Find(ctx, checkout.GatewayRef)
	if err != nil {
		return nil, fmt.Errorf("braintree find: %w", err)
	}

	return s.settleBraintree(ctx, checkout, sale)
}

func (s *checkoutServiceImpl) braintreeCheckout(ctx context.Context, reference string) (*model.Checkout, error) {
	checkout, err := s.checkoutRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find checkout %s: %w", reference, err)
	}
	if checkout.Provider != model.ProviderBraintree {
		return nil, fmt.Errorf("checkout %s: %w", reference, model.ErrNotFound)
	}
	return checkout, nil
}

func (s *checkoutServiceImpl) settleBraintree(ctx context.Context, checkout *model.Checkout, sale *client.SaleResult) (*dto.VerifyResponse, error) {
	if !sale.Settled {
		s.markFailed(ctx, checkout.Reference)
		return &dto.VerifyResponse{Status: StatusCancelled, Reference: checkout.Reference}, nil
	}

	err := s.settle(ctx, checkout, &model.Purchase{
		VideoID:       checkout.VideoID,
		CustomerEmail: checkout.Email,
		Reference:     checkout.Reference,
		Amount:        decimalToMinor(sale.Amount),
		Currency:      checkout.Currency,
		Provider:      model.ProviderBraintree,
	}, nil)
	if err != nil {
		return nil, err
	}

	return &dto.VerifyResponse{Status: StatusSuccess, Reference: checkout.Reference, VideoID: checkout.VideoID}, nil
}

// Prices are stored in minor units with two decimal places (kobo, cents).
func minorToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

func decimalToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func parsePaidAt(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
