package domain

import "time"

type Turf struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Location     string    `json:"location" validate:"required"`
	PricePerHour float64   `json:"price_per_hour" validate:"required,gt=0"`
	Size         string    `json:"size"`
	ImageURL     string    `json:"image_url"`
	Description  string    `json:"description"`
	Facilities   []string  `json:"facilities,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
