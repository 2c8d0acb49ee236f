package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"turfbook/internal/domain"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"
)

// Config is the checkout policy: a flat advance deposit per booking, charged
// before the slot is confirmed paid. The booking always exists (pending)
// before checkout starts, so a failed payment never strands a charge.
type Config struct {
	WebhookSecret      string
	DepositAmountMinor int64
	Currency           string
	FrontendURL        string
}

type Service struct {
	sessions      sessionRepo
	bookings      bookingReader
	bookingWriter bookingPaymentWriter
	turfs         turfReader
	notifs        notificationSender
	provider      CheckoutProvider
	cfg           Config
	loggerf       func(format string, args ...interface{})
}

func NewService(
	sessions sessionRepo,
	bookings bookingReader,
	bookingWriter bookingPaymentWriter,
	turfs turfReader,
	notifs notificationSender,
	provider CheckoutProvider,
	cfg Config,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		sessions:      sessions,
		bookings:      bookings,
		bookingWriter: bookingWriter,
		turfs:         turfs,
		notifs:        notifs,
		provider:      provider,
		cfg:           cfg,
		loggerf:       loggerf,
	}
}

func (s *Service) InitiateCheckout(ctx context.Context, bookingID int64, actor domain.Identity) (*CreateCheckoutResponse, error) {
	if bookingID <= 0 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != actor.UserID && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	description := fmt.Sprintf("Turf booking advance for %s (%s-%s)",
		b.BookingDate.Format("2006-01-02"), b.StartTime, b.EndTime)
	if turf, terr := s.turfs.GetByID(ctx, b.TurfID); terr == nil {
		description = fmt.Sprintf("%s, %s on %s (%s-%s)",
			turf.Name, turf.Location, b.BookingDate.Format("2006-01-02"), b.StartTime, b.EndTime)
	}

	clientRef := uuid.NewString()
	sess, err := s.provider.CreateSession(ctx, SessionParams{
		AmountMinor: s.cfg.DepositAmountMinor,
		Currency:    s.cfg.Currency,
		Description: description,
		ClientRef:   clientRef,
		SuccessURL:  s.cfg.FrontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   s.cfg.FrontendURL + "/payment-cancel",
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(b.ID, 10),
			"turf_id":    strconv.FormatInt(b.TurfID, 10),
			"user_id":    strconv.FormatInt(b.UserID, 10),
		},
	})
	if err != nil {
		s.loggerf("level=error msg=checkout session request failed booking_id=%d err=%v", b.ID, err)
		return nil, ErrUpstream
	}

	record := &domain.CheckoutSession{
		BookingID:   b.ID,
		SessionID:   sess.ID,
		ClientRef:   clientRef,
		AmountMinor: s.cfg.DepositAmountMinor,
		Currency:    s.cfg.Currency,
		Status:      domain.CheckoutCreated,
	}
	if err := s.sessions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save checkout session: %w", err)
	}

	s.loggerf("level=info msg=checkout session created booking_id=%d session_id=%s", b.ID, sess.ID)
	return &CreateCheckoutResponse{URL: sess.URL, SessionID: sess.ID}, nil
}

// HandleWebhook verifies and applies a provider callback. Signature failures
// reject the event with no state change. Everything after a valid signature
// is acknowledged even when local reconciliation fails, so the provider does
// not redeliver forever; failures are recorded for operators instead.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		s.loggerf("level=warn msg=webhook signature verification failed err=%v", err)
		return ErrInvalidSignature
	}

	if event.Type != "checkout.session.completed" {
		s.loggerf("level=info msg=webhook event ignored type=%s", event.Type)
		return nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		s.loggerf("level=error msg=webhook payload unmarshal failed err=%v", err)
		_ = s.notifs.NotifyReconcileFailed(ctx, nil, "unparseable checkout.session.completed payload")
		return nil
	}

	bookingID, err := strconv.ParseInt(cs.Metadata["booking_id"], 10, 64)
	if err != nil || bookingID <= 0 {
		s.loggerf("level=error msg=webhook missing booking metadata session_id=%s", cs.ID)
		_ = s.notifs.NotifyReconcileFailed(ctx, nil, fmt.Sprintf("session %s has no booking_id metadata", cs.ID))
		return nil
	}

	changed, err := s.sessions.MarkCompletedIdempotent(ctx, cs.ID, string(payload), time.Now().UTC())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.loggerf("level=error msg=failed to mark checkout session completed session_id=%s err=%v", cs.ID, err)
		}
		// Unknown session row: the booking metadata is still authoritative,
		// keep reconciling.
		changed = true
	}
	if !changed {
		s.loggerf("level=info msg=idempotent webhook delivery session_id=%s booking_id=%d", cs.ID, bookingID)
		return nil
	}

	if _, err := s.bookingWriter.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.loggerf("level=error msg=no booking matches webhook booking_id=%d session_id=%s", bookingID, cs.ID)
			_ = s.notifs.NotifyReconcileFailed(ctx, &bookingID, fmt.Sprintf("paid session %s references missing booking", cs.ID))
			return nil
		}
		s.loggerf("level=error msg=failed to update booking payment status booking_id=%d err=%v", bookingID, err)
		_ = s.notifs.NotifyReconcileFailed(ctx, &bookingID, "storage failure while reconciling paid session "+cs.ID)
		return nil
	}

	_ = s.notifs.NotifyPaymentReconciled(ctx, bookingID)
	s.loggerf("level=info msg=payment reconciled booking_id=%d session_id=%s", bookingID, cs.ID)
	return nil
}
