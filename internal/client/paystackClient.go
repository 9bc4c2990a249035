package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"video-paywall-demo/internal/config"
	"video-paywall-demo/internal/model"
)

type PaystackClient interface {
	InitializeTransaction(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*model.PaystackTransaction, error)
	VerifyWebhookSignature(body []byte, signature string) error
}

type paystackClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	secretKey  string
}

type InitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// paystackEnvelope is the wrapper every Paystack endpoint responds with.
type paystackEnvelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func NewPaystackClient(cfg *config.Paystack) PaystackClient {
	return &paystackClientImpl{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseApiURL: cfg.BaseApiURL,
		secretKey:  cfg.SecretKey,
	}
}

func (c *paystackClientImpl) InitializeTransaction(ctx context.Context, payload *InitializeRequest) (*InitializeResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/transaction/initialize",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res paystackEnvelope[InitializeResponse]
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	if !res.Status {
		return nil, fmt.Errorf("%w: paystack initialize: %s", model.ErrGateway, res.Message)
	}

	return &res.Data, nil
}

func (c *paystackClientImpl) VerifyTransaction(ctx context.Context, reference string) (*model.PaystackTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseApiURL+"/transaction/verify/"+url.PathEscape(reference),
		nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	var res paystackEnvelope[model.PaystackTransaction]
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	if !res.Status {
		return nil, fmt.Errorf("%w: paystack verify: %s", model.ErrGateway, res.Message)
	}

	return &res.Data, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header: a hex
// HMAC-SHA512 of the raw body keyed with the secret key.
func (c *paystackClientImpl) VerifyWebhookSignature(body []byte, signature string) error {
	if signature == "" {
		return model.ErrInvalidSignature
	}

	got, err := hex.DecodeString(signature)
	if err != nil {
		return model.ErrInvalidSignature
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return model.ErrInvalidSignature
	}

	return nil
}

func (c *paystackClientImpl) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: http client do: %v", model.ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", model.ErrGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: paystack status=%d body=%s", model.ErrGateway, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode paystack response: %v", model.ErrGateway, err)
	}

	return nil
}
