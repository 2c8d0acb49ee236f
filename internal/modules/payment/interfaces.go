package payment

import (
	"context"
	"time"

	"turfbook/internal/domain"
)

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type bookingPaymentWriter interface {
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error)
}

type turfReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
}

type sessionRepo interface {
	Create(ctx context.Context, s *domain.CheckoutSession) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
	MarkCompletedIdempotent(ctx context.Context, sessionID, rawEvent string, paidAt time.Time) (bool, error)
}

type notificationSender interface {
	NotifyPaymentReconciled(ctx context.Context, bookingID int64) error
	NotifyReconcileFailed(ctx context.Context, bookingID *int64, reason string) error
}

// SessionParams is what the bridge asks the provider to host.
type SessionParams struct {
	AmountMinor int64
	Currency    string
	Description string
	ClientRef   string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// ProviderSession is the provider's answer: an opaque id and the hosted URL.
type ProviderSession struct {
	ID  string
	URL string
}

// CheckoutProvider abstracts the hosted-checkout vendor so the service can be
// exercised without network access.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, p SessionParams) (*ProviderSession, error)
}
