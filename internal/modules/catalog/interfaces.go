package catalog

import (
	"context"

	"turfbook/internal/domain"
)

type TurfRepository interface {
	Create(ctx context.Context, t *domain.Turf) error
	GetByID(ctx context.Context, id int64) (*domain.Turf, error)
	List(ctx context.Context) ([]domain.Turf, error)
	Update(ctx context.Context, t *domain.Turf) error
	Delete(ctx context.Context, id int64) error
}

// BookingCounter guards turf deletion: a turf with live bookings stays.
type BookingCounter interface {
	CountActiveByTurf(ctx context.Context, turfID int64) (int64, error)
}
