package notification

import (
	"context"
	"fmt"
	"log"

	"turfbook/internal/domain"
)

type notificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// Service writes operator-visibility records. Callers treat it as
// best-effort; a failed write is logged and swallowed so it never fails the
// operation being recorded.
type Service struct {
	repo notificationRepo
}

func NewService(repo notificationRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, bookingID, turfID int64) error {
	return s.record(ctx, &domain.Notification{
		Kind:      domain.NotifBookingCreated,
		BookingID: &bookingID,
		Message:   fmt.Sprintf("New booking %d created for turf %d", bookingID, turfID),
	})
}

func (s *Service) NotifyPaymentReconciled(ctx context.Context, bookingID int64) error {
	return s.record(ctx, &domain.Notification{
		Kind:      domain.NotifPaymentReconciled,
		BookingID: &bookingID,
		Message:   fmt.Sprintf("Payment confirmed for booking %d", bookingID),
	})
}

func (s *Service) NotifyReconcileFailed(ctx context.Context, bookingID *int64, reason string) error {
	return s.record(ctx, &domain.Notification{
		Kind:      domain.NotifReconcileFailed,
		BookingID: bookingID,
		Message:   reason,
	})
}

func (s *Service) record(ctx context.Context, n *domain.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("level=error msg=failed to record notification kind=%s err=%v", n.Kind, err)
		return err
	}
	return nil
}
