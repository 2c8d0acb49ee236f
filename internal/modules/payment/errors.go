package payment

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyPaid      = errors.New("booking already paid")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUpstream         = errors.New("payment provider error")
)
