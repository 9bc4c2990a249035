package client

import (
	"context"
	"fmt"
	"video-paywall-demo/internal/config"
	"video-paywall-demo/internal/model"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

// --- INTERFACE ---

type BraintreeClient interface {
	// ClientToken issues a token the drop-in UI uses to tokenize a card into a nonce
	ClientToken(ctx context.Context) (string, error)

	// Sale charges a nonce once and submits it for settlement. orderID is our checkout reference.
	Sale(ctx context.Context, nonce, orderID string, amount decimal.Decimal) (*SaleResult, error)

	// Find looks up a transaction by its braintree id
	Find(ctx context.Context, transactionID string) (*SaleResult, error)
}

type SaleResult struct {
	TransactionID string
	Status        string
	Settled       bool
	Amount        decimal.Decimal
}

// --- IMPLEMENTATION ---

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway
func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

// --- METHODS ---

func (c *braintreeClientImpl) ClientToken(ctx context.Context) (string, error) {
	token, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: generate client token: %v", model.ErrGateway, err)
	}
	return token, nil
}

func (c *braintreeClientImpl) Sale(ctx context.Context, nonce, orderID string, amount decimal.Decimal) (*SaleResult, error) {
	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             toBraintreeDecimal(amount),
		PaymentMethodNonce: nonce,
		OrderId:            orderID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true, // Captures the funds immediately
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction creation failed: %v", model.ErrGateway, err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined || tx.Status == braintree.TransactionStatusGatewayRejected {
		return nil, fmt.Errorf("%w: transaction declined by processor: %s", model.ErrGateway, tx.ProcessorResponseText)
	}

	return toSaleResult(tx), nil
}

func (c *braintreeClientImpl) Find(ctx context.Context, transactionID string) (*SaleResult, error) {
	tx, err := c.gateway.Transaction().Find(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: find transaction %s: %v", model.ErrGateway, transactionID, err)
	}
	return toSaleResult(tx), nil
}

func toSaleResult(tx *braintree.Transaction) *SaleResult {
	res := &SaleResult{
		TransactionID: tx.Id,
		Status:        string(tx.Status),
		Settled:       isSettledStatus(tx.Status),
	}
	if tx.Amount != nil {
		res.Amount = decimal.New(tx.Amount.Unscaled, -int32(tx.Amount.Scale))
	}
	return res
}

func isSettledStatus(status braintree.TransactionStatus) bool {
	switch status {
	case braintree.TransactionStatusSubmittedForSettlement,
		braintree.TransactionStatusSettling,
		braintree.TransactionStatusSettled:
		return true
	}
	return false
}

// Braintree expects NewDecimal(unscaled, scale). For 2 decimal places:
// "500.00" -> braintree.NewDecimal(50000, 2)
func toBraintreeDecimal(amount decimal.Decimal) *braintree.Decimal {
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	return braintree.NewDecimal(cents, 2)
}
