package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated principal handlers hand to services.
// The core only ever consumes {user id, admin flag}; password and session
// mechanics stay at the access gate.
type Identity struct {
	UserID  int64
	IsAdmin bool
}
