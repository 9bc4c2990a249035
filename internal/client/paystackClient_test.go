package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"video-paywall-demo/internal/config"
	"video-paywall-demo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaystack(t *testing.T, h http.HandlerFunc) PaystackClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewPaystackClient(&config.Paystack{
		BaseApiURL: srv.URL,
		SecretKey:  "sk_test",
		Timeout:    5 * time.Second,
	})
}

func TestInitializeTransaction(t *testing.T) {
	c := newTestPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@x.com", req.Email)
		assert.EqualValues(t, 50000, req.Amount)
		assert.Equal(t, "vid1", req.Metadata["video_id"])

		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"` + req.Reference + `"}}`))
	})

	res, err := c.InitializeTransaction(context.Background(), &InitializeRequest{
		Email:     "a@x.com",
		Amount:    50000,
		Reference: "ref-1",
		Metadata:  map[string]string{"video_id": "vid1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", res.AuthorizationURL)
	assert.Equal(t, "ref-1", res.Reference)
}

func TestInitializeTransaction_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"status false", http.StatusOK, `{"status":false,"message":"Invalid key"}`},
		{"http error", http.StatusUnauthorized, `{"status":false,"message":"Invalid key"}`},
		{"garbage", http.StatusOK, `not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestPaystack(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := c.InitializeTransaction(context.Background(), &InitializeRequest{Email: "a@x.com"})
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrGateway)
		})
	}
}

func TestVerifyTransaction(t *testing.T) {
	c := newTestPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref-9", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"id":1,"status":"success","reference":"ref-9","amount":80000,"currency":"NGN",
			"customer":{"email":"b@x.com"},"metadata":{"video_id":"vid2"}}}`))
	})

	tx, err := c.VerifyTransaction(context.Background(), "ref-9")
	require.NoError(t, err)
	assert.Equal(t, "success", tx.Status)
	assert.EqualValues(t, 80000, tx.Amount)
	assert.Equal(t, "b@x.com", tx.Customer.Email)
	assert.Equal(t, "vid2", tx.VideoID())
}

func TestVerifyTransaction_EmptyMetadata(t *testing.T) {
	c := newTestPaystack(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"data":{"status":"abandoned","reference":"r","metadata":""}}`))
	})

	tx, err := c.VerifyTransaction(context.Background(), "r")
	require.NoError(t, err)
	assert.Equal(t, "abandoned", tx.Status)
	assert.Empty(t, tx.VideoID())
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := NewPaystackClient(&config.Paystack{SecretKey: "sk_test"})
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte("sk_test"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.NoError(t, c.VerifyWebhookSignature(body, valid))
	assert.ErrorIs(t, c.VerifyWebhookSignature(body, ""), model.ErrInvalidSignature)
	assert.ErrorIs(t, c.VerifyWebhookSignature(body, "zz"), model.ErrInvalidSignature)
	assert.ErrorIs(t, c.VerifyWebhookSignature([]byte(`{"event":"forged"}`), valid), model.ErrInvalidSignature)
}
