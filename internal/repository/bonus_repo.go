package repository

import (
	"context"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

type BonusRepository struct {
	db *gorm.DB
}

func NewBonusRepository(db *gorm.DB) *BonusRepository {
	return &BonusRepository{db: db}
}

type bonusModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	Reference   string     `gorm:"column:reference;uniqueIndex"`
	CleanerID   int64      `gorm:"column:cleaner_id;index"`
	PayerID     int64      `gorm:"column:payer_id;index"`
	JobID       *int64     `gorm:"column:job_id"`
	AmountCents int64      `gorm:"column:amount_cents"`
	Note        string     `gorm:"column:note;type:text"`
	Status      string     `gorm:"column:status;index"`
	InitiatedAt time.Time  `gorm:"column:initiated_at"`
	PaidAt      *time.Time `gorm:"column:paid_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (bonusModel) TableName() string { return "bonuses" }

func toDomainBonus(m bonusModel) *domain.Bonus {
	return &domain.Bonus{
		ID:          m.ID,
		Reference:   m.Reference,
		CleanerID:   m.CleanerID,
		PayerID:     m.PayerID,
		JobID:       m.JobID,
		Amount:      domain.Cents(m.AmountCents),
		Note:        m.Note,
		Status:      domain.PayoutStatus(m.Status),
		InitiatedAt: m.InitiatedAt,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *BonusRepository) Create(ctx context.Context, b *domain.Bonus) error {
	m := bonusModel{
		Reference:   b.Reference,
		CleanerID:   b.CleanerID,
		PayerID:     b.PayerID,
		JobID:       b.JobID,
		AmountCents: int64(b.Amount),
		Note:        b.Note,
		Status:      string(b.Status),
		InitiatedAt: b.InitiatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBonus(m)
	return nil
}

func (r *BonusRepository) GetByID(ctx context.Context, id int64) (*domain.Bonus, error) {
	var m bonusModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBonus(m), nil
}

func (r *BonusRepository) ListByCleaner(ctx context.Context, cleanerID int64, limit, offset int) ([]domain.Bonus, error) {
	var models []bonusModel
	tx := r.db.WithContext(ctx).
		Where("cleaner_id = ?", cleanerID).
		Order("initiated_at DESC").
		Limit(limit).Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Bonus, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBonus(m))
	}
	return out, nil
}

func (r *BonusRepository) UpdateStatus(ctx context.Context, id int64, status domain.PayoutStatus, paidAt *time.Time) error {
	updates := map[string]interface{}{"status": string(status)}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}
	return r.db.WithContext(ctx).Model(&bonusModel{}).
		Where("id = ?", id).
		Updates(updates).Error
}
