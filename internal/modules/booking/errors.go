package booking

import (
	"errors"

	"turfbook/internal/domain"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrTurfNotFound = errors.New("turf not found")
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("forbidden")
	ErrSlotTaken    = errors.New("slot already booked")
)

// SlotConflictError carries the blocking booking so the client can show why
// the slot is taken. errors.Is(err, ErrSlotTaken) matches it.
type SlotConflictError struct {
	Conflicting *domain.Booking
}

func (e *SlotConflictError) Error() string { return ErrSlotTaken.Error() }

func (e *SlotConflictError) Is(target error) bool { return target == ErrSlotTaken }
