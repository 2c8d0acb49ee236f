package catalog

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("turf not found")
	ErrForbidden       = errors.New("forbidden")
	ErrTurfHasBookings = errors.New("turf has bookings")
)
