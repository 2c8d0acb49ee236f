package admin

import (
	"context"
	"errors"

	"turfbook/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotDeleteAdmin = errors.New("cannot delete admin user")
)

type Service struct {
	users  UserRepository
	notifs NotificationLister
}

func NewService(users UserRepository, notifs NotificationLister) *Service {
	return &Service{users: users, notifs: notifs}
}

func (s *Service) GetUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// DeleteUser refuses to remove admin accounts, same as the rest of the
// admin surface treats them.
func (s *Service) DeleteUser(ctx context.Context, actor domain.Identity, userID int64) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsAdmin {
		return ErrCannotDeleteAdmin
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListNotifications(ctx context.Context, actor domain.Identity, limit int) ([]domain.Notification, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.notifs.List(ctx, limit)
}
