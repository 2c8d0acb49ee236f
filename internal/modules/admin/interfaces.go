package admin

import (
	"context"

	"turfbook/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type NotificationLister interface {
	List(ctx context.Context, limit int) ([]domain.Notification, error)
}
