package booking

import (
	"context"

	"turfbook/internal/domain"
	"turfbook/internal/repository"
)

// BookingRepository is the ledger storage surface the service needs.
type BookingRepository interface {
	CreateInSlot(ctx context.Context, b *domain.Booking) (conflicting *domain.Booking, err error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetUserBookingsWithDetails(ctx context.Context, userID int64) ([]repository.UserBookingDetails, error)
	GetAllWithDetails(ctx context.Context) ([]repository.AdminBookingDetails, error)
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error)
}

// TurfReader resolves turf references during booking validation.
type TurfReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
}

// NotificationSender records operator-visibility events; failures are
// best-effort and never fail the booking.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, bookingID, turfID int64) error
}
