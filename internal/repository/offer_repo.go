package repository

import (
	"context"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

type offerModel struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	JobID                int64      `gorm:"column:job_id;index"`
	CleanerID            int64      `gorm:"column:cleaner_id;index"`
	Status               string     `gorm:"column:status;index"`
	ExpiresAt            time.Time  `gorm:"column:expires_at"`
	TotalJobPriceCents   int64      `gorm:"column:total_job_price_cents"`
	PlatformFeeCents     int64      `gorm:"column:platform_fee_cents"`
	EarningsOfferedCents int64      `gorm:"column:earnings_offered_cents"`
	PercentOfWork        float64    `gorm:"column:percent_of_work"`
	DeclineReason        *string    `gorm:"column:decline_reason"`
	RespondedAt          *time.Time `gorm:"column:responded_at"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
}

func (offerModel) TableName() string { return "offers" }

func toDomainOffer(m offerModel) *domain.Offer {
	var reason string
	if m.DeclineReason != nil {
		reason = *m.DeclineReason
	}
	return &domain.Offer{
		ID:              m.ID,
		JobID:           m.JobID,
		CleanerID:       m.CleanerID,
		Status:          domain.OfferStatus(m.Status),
		ExpiresAt:       m.ExpiresAt,
		TotalJobPrice:   domain.Cents(m.TotalJobPriceCents),
		PlatformFee:     domain.Cents(m.PlatformFeeCents),
		EarningsOffered: domain.Cents(m.EarningsOfferedCents),
		PercentOfWork:   m.PercentOfWork,
		DeclineReason:   reason,
		RespondedAt:     m.RespondedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func toOfferModel(o *domain.Offer) offerModel {
	var reason *string
	if o.DeclineReason != "" {
		v := o.DeclineReason
		reason = &v
	}
	return offerModel{
		ID:                   o.ID,
		JobID:                o.JobID,
		CleanerID:            o.CleanerID,
		Status:               string(o.Status),
		ExpiresAt:            o.ExpiresAt,
		TotalJobPriceCents:   int64(o.TotalJobPrice),
		PlatformFeeCents:     int64(o.PlatformFee),
		EarningsOfferedCents: int64(o.EarningsOffered),
		PercentOfWork:        o.PercentOfWork,
		DeclineReason:        reason,
		RespondedAt:          o.RespondedAt,
		CreatedAt:            o.CreatedAt,
	}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	m := toOfferModel(o)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*o = *toDomainOffer(m)
	return nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var m offerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainOffer(m), nil
}

func (r *OfferRepository) ListPendingForCleaner(ctx context.Context, cleanerID int64) ([]domain.Offer, error) {
	var models []offerModel
	tx := r.db.WithContext(ctx).
		Where("cleaner_id = ? AND status = ?", cleanerID, string(domain.OfferPending)).
		Order("expires_at ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Offer, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainOffer(m))
	}
	return out, nil
}

// Resolve moves a pending offer to a terminal status exactly once; a
// second resolution matches no row.
func (r *OfferRepository) Resolve(ctx context.Context, offerID int64, status domain.OfferStatus, reason string, at time.Time) (*domain.Offer, error) {
	updates := map[string]interface{}{
		"status":       string(status),
		"responded_at": at,
	}
	if reason != "" {
		updates["decline_reason"] = reason
	}

	res := r.db.WithContext(ctx).Model(&offerModel{}).
		Where("id = ? AND status = ?", offerID, string(domain.OfferPending)).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, offerID)
}

// ExpirePending sweeps pending offers past their deadline.
func (r *OfferRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&offerModel{}).
		Where("status = ? AND expires_at <= ?", string(domain.OfferPending), now).
		Update("status", string(domain.OfferExpired))
	return res.RowsAffected, res.Error
}

type soloOfferModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	JobID              int64      `gorm:"column:job_id;index"`
	CleanerID          int64      `gorm:"column:cleaner_id;index"`
	Status             string     `gorm:"column:status"`
	ExpiresAt          time.Time  `gorm:"column:expires_at"`
	OriginalShareCents int64      `gorm:"column:original_share_cents"`
	SoloEarningsCents  int64      `gorm:"column:solo_earnings_cents"`
	RespondedAt        *time.Time `gorm:"column:responded_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
}

func (soloOfferModel) TableName() string { return "solo_offers" }

func toDomainSoloOffer(m soloOfferModel) *domain.SoloOffer {
	return &domain.SoloOffer{
		ID:            m.ID,
		JobID:         m.JobID,
		CleanerID:     m.CleanerID,
		Status:        domain.OfferStatus(m.Status),
		ExpiresAt:     m.ExpiresAt,
		OriginalShare: domain.Cents(m.OriginalShareCents),
		SoloEarnings:  domain.Cents(m.SoloEarningsCents),
		RespondedAt:   m.RespondedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *OfferRepository) CreateSolo(ctx context.Context, o *domain.SoloOffer) error {
	m := soloOfferModel{
		JobID:              o.JobID,
		CleanerID:          o.CleanerID,
		Status:             string(o.Status),
		ExpiresAt:          o.ExpiresAt,
		OriginalShareCents: int64(o.OriginalShare),
		SoloEarningsCents:  int64(o.SoloEarnings),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*o = *toDomainSoloOffer(m)
	return nil
}

func (r *OfferRepository) GetSoloByID(ctx context.Context, id int64) (*domain.SoloOffer, error) {
	var m soloOfferModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSoloOffer(m), nil
}

func (r *OfferRepository) ResolveSolo(ctx context.Context, offerID int64, status domain.OfferStatus, at time.Time) (*domain.SoloOffer, error) {
	res := r.db.WithContext(ctx).Model(&soloOfferModel{}).
		Where("id = ? AND status = ?", offerID, string(domain.OfferPending)).
		Updates(map[string]interface{}{
			"status":       string(status),
			"responded_at": at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetSoloByID(ctx, offerID)
}
