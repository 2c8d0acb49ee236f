package repository

import (
	"context"
	"time"

	"turfbook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	UserID        int64     `gorm:"column:user_id;index"`
	TurfID        int64     `gorm:"column:turf_id;index"`
	BookingDate   time.Time `gorm:"column:booking_date"`
	StartTime     string    `gorm:"column:start_time"`
	EndTime       string    `gorm:"column:end_time"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		TurfID:        m.TurfID,
		BookingDate:   m.BookingDate,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		TotalAmount:   m.TotalAmount,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		TurfID:        b.TurfID,
		BookingDate:   b.BookingDate,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalAmount:   b.TotalAmount,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// CreateInSlot runs the overlap check and the insert as one transaction.
// On Postgres the turf row is locked FOR UPDATE first, so concurrent
// submissions for the same turf serialize; SQLite has a single writer and
// needs no explicit lock. If the slot is taken, the blocking booking is
// returned and nothing is written.
func (r *BookingRepository) CreateInSlot(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	var conflicting *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := tx.Table("turfs").Where("id = ?", b.TurfID)
		if tx.Dialector.Name() == "postgres" {
			lock = lock.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var turfID int64
		if err := lock.Select("id").Scan(&turfID).Error; err != nil {
			return err
		}

		var existing bookingModel
		res := tx.
			Where("turf_id = ? AND booking_date = ?", b.TurfID, b.BookingDate).
			Where("payment_status <> ?", string(domain.PaymentCancelled)).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Limit(1).Find(&existing)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			conflicting = toDomainBooking(existing)
			return nil
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		*b = *toDomainBooking(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conflicting, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainBooking(m), nil
}

// UserBookingDetails is a booking row joined with its turf summary for the
// "my bookings" screen.
type UserBookingDetails struct {
	ID             int64     `gorm:"column:id" json:"id"`
	BookingDate    time.Time `gorm:"column:booking_date" json:"booking_date"`
	StartTime      string    `gorm:"column:start_time" json:"start_time"`
	EndTime        string    `gorm:"column:end_time" json:"end_time"`
	TotalAmount    float64   `gorm:"column:total_amount" json:"total_amount"`
	PaymentStatus  string    `gorm:"column:payment_status" json:"payment_status"`
	TurfID         int64     `gorm:"column:turf_id" json:"turf_id"`
	TurfName       string    `gorm:"column:turf_name" json:"turf_name"`
	TurfLocation   string    `gorm:"column:turf_location" json:"turf_location"`
	TurfImageURL   string    `gorm:"column:turf_image_url" json:"turf_image_url"`
	TurfPricePerHr float64   `gorm:"column:turf_price_per_hour" json:"turf_price_per_hour"`
}

func (r *BookingRepository) GetUserBookingsWithDetails(ctx context.Context, userID int64) ([]UserBookingDetails, error) {
	var rows []UserBookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.booking_date, bookings.start_time, bookings.end_time,
			bookings.total_amount, bookings.payment_status, bookings.turf_id,
			turfs.name AS turf_name, turfs.location AS turf_location,
			turfs.image_url AS turf_image_url, turfs.price_per_hour AS turf_price_per_hour`).
		Joins("JOIN turfs ON turfs.id = bookings.turf_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AdminBookingDetails adds the owning user summary for the admin listing.
type AdminBookingDetails struct {
	UserBookingDetails
	UserID    int64  `gorm:"column:user_id" json:"user_id"`
	UserName  string `gorm:"column:user_name" json:"user_name"`
	UserEmail string `gorm:"column:user_email" json:"user_email"`
}

func (r *BookingRepository) GetAllWithDetails(ctx context.Context) ([]AdminBookingDetails, error) {
	var rows []AdminBookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.booking_date, bookings.start_time, bookings.end_time,
			bookings.total_amount, bookings.payment_status, bookings.turf_id,
			turfs.name AS turf_name, turfs.location AS turf_location,
			turfs.image_url AS turf_image_url, turfs.price_per_hour AS turf_price_per_hour,
			users.id AS user_id, users.name AS user_name, users.email AS user_email`).
		Joins("JOIN turfs ON turfs.id = bookings.turf_id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Order("bookings.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdatePaymentStatus touches payment_status only; last write wins, no other
// booking fields move.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("payment_status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, bookingID)
}

// CountActiveByTurf counts non-cancelled bookings referencing a turf. Used by
// the catalog to refuse deleting turfs with booking history.
func (r *BookingRepository) CountActiveByTurf(ctx context.Context, turfID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("turf_id = ? AND payment_status <> ?", turfID, string(domain.PaymentCancelled)).
		Count(&cnt).Error
	return cnt, err
}
