package booking

import (
	"context"
	"errors"
	"time"

	"turfbook/internal/domain"
	"turfbook/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	turfs    TurfReader
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, turfs TurfReader, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		turfs:    turfs,
		notifs:   notifs,
	}
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return nil, ErrValidation
	}

	start, err := normalizeClock(req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := normalizeClock(req.EndTime)
	if err != nil {
		return nil, ErrValidation
	}
	if start >= end {
		return nil, ErrValidation
	}

	if req.TotalAmount <= 0 {
		return nil, ErrValidation
	}

	if _, err := s.turfs.GetByID(ctx, req.TurfID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTurfNotFound
		}
		return nil, err
	}

	b := &domain.Booking{
		UserID:        userID,
		TurfID:        req.TurfID,
		BookingDate:   date,
		StartTime:     start,
		EndTime:       end,
		TotalAmount:   req.TotalAmount,
		PaymentStatus: domain.PaymentPending,
	}

	conflicting, err := s.bookings.CreateInSlot(ctx, b)
	if err != nil {
		// The partial unique index is the cross-process backstop; a
		// violation means somebody else won the identical slot.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	if conflicting != nil {
		return nil, &SlotConflictError{Conflicting: conflicting}
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.ID, b.TurfID)
	}

	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64) ([]repository.UserBookingDetails, error) {
	return s.bookings.GetUserBookingsWithDetails(ctx, userID)
}

func (s *Service) GetAllBookings(ctx context.Context, actor domain.Identity) ([]repository.AdminBookingDetails, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.bookings.GetAllWithDetails(ctx)
}

// UpdatePaymentStatus is the admin override. Any-to-any transitions are kept
// on purpose: operators use it to fix reconciliation mistakes, and the
// provider callback path never goes through here.
func (s *Service) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus, actor domain.Identity) (*domain.Booking, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if !domain.ValidPaymentStatus(status) {
		return nil, ErrValidation
	}

	b, err := s.bookings.UpdatePaymentStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func parseBookingDate(raw string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC), nil
}

// normalizeClock parses a wall-clock "HH:MM" and re-formats it zero-padded,
// so lexicographic comparison matches chronological order.
func normalizeClock(raw string) (string, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}
