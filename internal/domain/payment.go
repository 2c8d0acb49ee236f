package domain

import "time"

type CheckoutStatus string

const (
	CheckoutCreated   CheckoutStatus = "created"
	CheckoutCompleted CheckoutStatus = "completed"
	CheckoutFailed    CheckoutStatus = "failed"
)

// CheckoutSession is the local record of a provider-hosted checkout flow.
// One row per session; completion is marked idempotently so replayed
// webhook deliveries do not double-apply.
type CheckoutSession struct {
	ID          int64          `json:"id"`
	BookingID   int64          `json:"booking_id"`
	SessionID   string         `json:"session_id"`
	ClientRef   string         `json:"client_ref"`
	AmountMinor int64          `json:"amount_minor"`
	Currency    string         `json:"currency"`
	Status      CheckoutStatus `json:"status"`
	RawEvent    string         `json:"-"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
