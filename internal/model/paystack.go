package model

import "encoding/json"

type PaystackCustomer struct {
	Email string `json:"email"`
}

type PaystackTransaction struct {
	ID        int64            `json:"id"`
	Status    string           `json:"status"` // success, failed, abandoned
	Reference string           `json:"reference"`
	Amount    int64            `json:"amount"`
	Currency  string           `json:"currency"`
	PaidAt    string           `json:"paid_at"`
	Customer  PaystackCustomer `json:"customer"`
	// Paystack sends an empty string when no metadata was attached.
	Metadata json.RawMessage `json:"metadata"`
}

// VideoID returns the video id attached to the transaction at init time.
func (t *PaystackTransaction) VideoID() string {
	var meta struct {
		VideoID string `json:"video_id"`
	}
	if err := json.Unmarshal(t.Metadata, &meta); err != nil {
		return ""
	}
	return meta.VideoID
}

type PaystackWebhookEvent struct {
	Event string              `json:"event"`
	Data  PaystackTransaction `json:"data"`
}
