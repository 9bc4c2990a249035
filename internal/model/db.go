package model

import "time"

type CheckoutStatus string

const (
	CheckoutPending CheckoutStatus = "PENDING"
	CheckoutPaid    CheckoutStatus = "PAID"
	CheckoutFailed  CheckoutStatus = "FAILED"
)

type Provider string

const (
	ProviderPaystack  Provider = "paystack"
	ProviderBraintree Provider = "braintree"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:128;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Video struct {
	ID       string `gorm:"primaryKey;size:50;not null" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	Price    int64  `gorm:"not null" json:"price"` // minor units (kobo, cents)
	Currency string `gorm:"size:10;not null;default:NGN" json:"currency"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	VideoID   string    `gorm:"size:50;index;not null" json:"video_id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Purchase is the only authorization record: a (VideoID, CustomerEmail)
// pair with at least one row grants access to the protected file.
type Purchase struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	VideoID       string    `gorm:"size:50;index:idx_purchase_access;not null" json:"video_id"`
	CustomerEmail string    `gorm:"size:255;index:idx_purchase_access;not null" json:"customer_email"`
	Reference     string    `gorm:"size:120;uniqueIndex;not null" json:"reference"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"size:10;not null;default:NGN" json:"currency"`
	Provider      Provider  `gorm:"size:32" json:"provider"`
	PaidAt        time.Time `json:"paid_at"`
}

// Checkout is a transaction opened with a gateway and not yet settled.
type Checkout struct {
	Reference  string         `gorm:"primaryKey;size:120;not null"`
	Provider   Provider       `gorm:"size:32;not null"`
	VideoID    string         `gorm:"size:50;not null"`
	Email      string         `gorm:"size:255;not null"`
	Amount     int64          `gorm:"not null"`
	Currency   string         `gorm:"size:10;not null"`
	Status     CheckoutStatus `gorm:"size:32;index;not null"`
	GatewayRef string         `gorm:"size:120"` // braintree transaction id
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;uniqueIndex;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

// Item is an opaque JSON object. Items have no schema and are addressed by
// their position in the store.
type Item map[string]any
