package repository

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

type IncentiveRepository struct {
	db *gorm.DB
}

func NewIncentiveRepository(db *gorm.DB) *IncentiveRepository {
	return &IncentiveRepository{db: db}
}

type incentiveConfigModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Active    bool      `gorm:"column:active"`
	Cleaner   []byte    `gorm:"column:cleaner;type:jsonb"`
	Homeowner []byte    `gorm:"column:homeowner;type:jsonb"`
	UpdatedBy *int64    `gorm:"column:updated_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (incentiveConfigModel) TableName() string { return "incentive_configs" }

func toDomainIncentive(m incentiveConfigModel) *domain.IncentiveConfig {
	return &domain.IncentiveConfig{
		ID:        m.ID,
		Active:    m.Active,
		Cleaner:   m.Cleaner,
		Homeowner: m.Homeowner,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// GetLatest returns the most recent config row, or nil when none was
// ever saved.
func (r *IncentiveRepository) GetLatest(ctx context.Context) (*domain.IncentiveConfig, error) {
	var m incentiveConfigModel
	err := r.db.WithContext(ctx).Order("id DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainIncentive(m), nil
}

// Save appends a new config row; history stays queryable.
func (r *IncentiveRepository) Save(ctx context.Context, cfg *domain.IncentiveConfig) error {
	m := incentiveConfigModel{
		Active:    cfg.Active,
		Cleaner:   cfg.Cleaner,
		Homeowner: cfg.Homeowner,
		UpdatedBy: cfg.UpdatedBy,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*cfg = *toDomainIncentive(m)
	return nil
}
