package catalog

import (
	"context"
	"errors"

	"turfbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	turfs    TurfRepository
	bookings BookingCounter
}

func NewService(turfs TurfRepository, bookings BookingCounter) *Service {
	return &Service{turfs: turfs, bookings: bookings}
}

func (s *Service) ListTurfs(ctx context.Context) ([]domain.Turf, error) {
	return s.turfs.List(ctx)
}

func (s *Service) GetTurf(ctx context.Context, id int64) (*domain.Turf, error) {
	t, err := s.turfs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) CreateTurf(ctx context.Context, actor domain.Identity, req CreateTurfRequest) (*domain.Turf, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if req.PricePerHour <= 0 {
		return nil, ErrValidation
	}

	t := &domain.Turf{
		Name:         req.Name,
		Location:     req.Location,
		PricePerHour: req.PricePerHour,
		Size:         req.Size,
		ImageURL:     req.ImageURL,
		Description:  req.Description,
		Facilities:   req.Facilities,
	}
	if err := s.turfs.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTurf(ctx context.Context, actor domain.Identity, turfID int64, req UpdateTurfRequest) (*domain.Turf, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	t, err := s.turfs.GetByID(ctx, turfID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Location != nil {
		t.Location = *req.Location
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrValidation
		}
		t.PricePerHour = *req.PricePerHour
	}
	if req.Size != nil {
		t.Size = *req.Size
	}
	if req.ImageURL != nil {
		t.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Facilities != nil {
		t.Facilities = *req.Facilities
	}

	if err := s.turfs.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTurf refuses while any non-cancelled booking references the turf;
// historical reservations keep their turf rows.
func (s *Service) DeleteTurf(ctx context.Context, actor domain.Identity, turfID int64) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	cnt, err := s.bookings.CountActiveByTurf(ctx, turfID)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrTurfHasBookings
	}

	if err := s.turfs.Delete(ctx, turfID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
