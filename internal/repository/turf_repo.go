package repository

import (
	"context"
	"encoding/json"
	"time"

	"turfbook/internal/domain"

	"gorm.io/gorm"
)

type TurfRepository struct {
	db *gorm.DB
}

func NewTurfRepository(db *gorm.DB) *TurfRepository {
	return &TurfRepository{db: db}
}

type turfModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Location     string    `gorm:"column:location"`
	PricePerHour float64   `gorm:"column:price_per_hour"`
	Size         string    `gorm:"column:size"`
	ImageURL     string    `gorm:"column:image_url"`
	Description  string    `gorm:"column:description;type:text"`
	Facilities   string    `gorm:"column:facilities;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (turfModel) TableName() string { return "turfs" }

func toDomainTurf(m turfModel) *domain.Turf {
	var facilities []string
	if m.Facilities != "" {
		_ = json.Unmarshal([]byte(m.Facilities), &facilities)
	}

	return &domain.Turf{
		ID:           m.ID,
		Name:         m.Name,
		Location:     m.Location,
		PricePerHour: m.PricePerHour,
		Size:         m.Size,
		ImageURL:     m.ImageURL,
		Description:  m.Description,
		Facilities:   facilities,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toTurfModel(t *domain.Turf) turfModel {
	var facilities string
	if len(t.Facilities) > 0 {
		raw, _ := json.Marshal(t.Facilities)
		facilities = string(raw)
	}

	return turfModel{
		ID:           t.ID,
		Name:         t.Name,
		Location:     t.Location,
		PricePerHour: t.PricePerHour,
		Size:         t.Size,
		ImageURL:     t.ImageURL,
		Description:  t.Description,
		Facilities:   facilities,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (r *TurfRepository) Create(ctx context.Context, t *domain.Turf) error {
	m := toTurfModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*t = *toDomainTurf(m)
	return nil
}

func (r *TurfRepository) GetByID(ctx context.Context, id int64) (*domain.Turf, error) {
	var m turfModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainTurf(m), nil
}

func (r *TurfRepository) List(ctx context.Context) ([]domain.Turf, error) {
	var models []turfModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Turf, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTurf(m))
	}
	return out, nil
}

func (r *TurfRepository) Update(ctx context.Context, t *domain.Turf) error {
	m := toTurfModel(t)
	res := r.db.WithContext(ctx).Model(&turfModel{}).Where("id = ?", t.ID).Updates(map[string]interface{}{
		"name":           m.Name,
		"location":       m.Location,
		"price_per_hour": m.PricePerHour,
		"size":           m.Size,
		"image_url":      m.ImageURL,
		"description":    m.Description,
		"facilities":     m.Facilities,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TurfRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&turfModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
