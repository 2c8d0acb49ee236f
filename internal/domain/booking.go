package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// ValidPaymentStatus reports whether s is one of the three known states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// Booking reserves one turf for one [StartTime, EndTime) interval on
// BookingDate. The date is calendar-only (midnight UTC); start and end are
// wall-clock "HH:MM" strings on that date, start < end.
type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id" validate:"required"`
	TurfID        int64         `json:"turf_id" validate:"required"`
	BookingDate   time.Time     `json:"booking_date" validate:"required"`
	StartTime     string        `json:"start_time" validate:"required"`
	EndTime       string        `json:"end_time" validate:"required"`
	TotalAmount   float64       `json:"total_amount" validate:"required,gt=0"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"-"`
	Turf *Turf `json:"turf,omitempty" gorm:"-"`
}
