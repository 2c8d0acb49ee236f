package repository

import (
	"context"
	"errors"
	"time"

	"turfbook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutSessionRepository struct {
	db *gorm.DB
}

func NewCheckoutSessionRepository(db *gorm.DB) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{db: db}
}

type checkoutSessionModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	BookingID   int64      `gorm:"column:booking_id;index"`
	SessionID   string     `gorm:"column:session_id;uniqueIndex"`
	ClientRef   string     `gorm:"column:client_ref"`
	AmountMinor int64      `gorm:"column:amount_minor"`
	Currency    string     `gorm:"column:currency"`
	Status      string     `gorm:"column:status"`
	RawEvent    string     `gorm:"column:raw_event;type:text"`
	PaidAt      *time.Time `gorm:"column:paid_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (checkoutSessionModel) TableName() string { return "checkout_sessions" }

func toDomainCheckoutSession(m checkoutSessionModel) *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:          m.ID,
		BookingID:   m.BookingID,
		SessionID:   m.SessionID,
		ClientRef:   m.ClientRef,
		AmountMinor: m.AmountMinor,
		Currency:    m.Currency,
		Status:      domain.CheckoutStatus(m.Status),
		RawEvent:    m.RawEvent,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *CheckoutSessionRepository) Create(ctx context.Context, s *domain.CheckoutSession) error {
	m := checkoutSessionModel{
		BookingID:   s.BookingID,
		SessionID:   s.SessionID,
		ClientRef:   s.ClientRef,
		AmountMinor: s.AmountMinor,
		Currency:    s.Currency,
		Status:      string(s.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*s = *toDomainCheckoutSession(m)
	return nil
}

func (r *CheckoutSessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	var m checkoutSessionModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainCheckoutSession(m), nil
}

// MarkCompletedIdempotent flips the session to completed exactly once.
// Returns false without writing when it is already completed, so replayed
// webhook deliveries are no-ops.
func (r *CheckoutSessionRepository) MarkCompletedIdempotent(ctx context.Context, sessionID, rawEvent string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("session_id = ?", sessionID)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var m checkoutSessionModel
		if err := q.First(&m).Error; err != nil {
			return err
		}
		if m.Status == string(domain.CheckoutCompleted) {
			changed = false
			return nil
		}
		res := tx.Model(&checkoutSessionModel{}).Where("session_id = ?", sessionID).Updates(map[string]interface{}{
			"status":    string(domain.CheckoutCompleted),
			"raw_event": rawEvent,
			"paid_at":   paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("checkout session row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}

func (r *CheckoutSessionRepository) MarkFailed(ctx context.Context, sessionID, rawEvent string) error {
	return r.db.WithContext(ctx).
		Model(&checkoutSessionModel{}).
		Where("session_id = ? AND status <> ?", sessionID, string(domain.CheckoutCompleted)).
		Updates(map[string]interface{}{
			"status":    string(domain.CheckoutFailed),
			"raw_event": rawEvent,
		}).Error
}
