package domain

import "time"

// Notification kinds surfaced to operators.
const (
	NotifBookingCreated    = "booking.created"
	NotifPaymentReconciled = "payment.reconciled"
	NotifReconcileFailed   = "payment.reconcile_failed"
)

// Notification is an operator-visibility record. Reconciliation failures in
// particular must land here: the webhook is acknowledged to the provider even
// when no local booking matches, so this row is the only trace.
type Notification struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	BookingID *int64    `json:"booking_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
