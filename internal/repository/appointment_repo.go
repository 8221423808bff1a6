package repository

import (
	"context"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	JobID             *int64     `gorm:"column:job_id"`
	HomeownerID       int64      `gorm:"column:homeowner_id;index"`
	ScheduledAt       time.Time  `gorm:"column:scheduled_at"`
	BookedByCleanerID *int64     `gorm:"column:booked_by_cleaner_id;index"`
	ClientRespondedAt *time.Time `gorm:"column:client_responded_at"`
	ClientResponse    *string    `gorm:"column:client_response;size:20"`
	DeclineReason     *string    `gorm:"column:decline_reason;type:text"`
	SuggestedDates    []string   `gorm:"column:suggested_dates;serializer:json"`
	ExpiresAt         *time.Time `gorm:"column:expires_at"`
	OriginalBookingID *int64     `gorm:"column:original_booking_id"`
	RebookingAttempts int        `gorm:"column:rebooking_attempts;not null;default:0"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`

	// Self-referential rebooking chain. ON DELETE SET NULL: deleting
	// the origin orphans the chain instead of cascading.
	Original *appointmentModel `gorm:"foreignKey:OriginalBookingID;constraint:OnDelete:SET NULL"`
}

func (appointmentModel) TableName() string { return "user_appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	a := &domain.Appointment{
		ID:                m.ID,
		JobID:             m.JobID,
		HomeownerID:       m.HomeownerID,
		ScheduledAt:       m.ScheduledAt,
		BookedByCleanerID: m.BookedByCleanerID,
		ClientRespondedAt: m.ClientRespondedAt,
		SuggestedDates:    m.SuggestedDates,
		ExpiresAt:         m.ExpiresAt,
		OriginalBookingID: m.OriginalBookingID,
		RebookingAttempts: m.RebookingAttempts,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.ClientResponse != nil {
		a.ClientResponse = domain.ClientResponse(*m.ClientResponse)
	}
	if m.DeclineReason != nil {
		a.DeclineReason = *m.DeclineReason
	}
	return a
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	m := appointmentModel{
		ID:                a.ID,
		JobID:             a.JobID,
		HomeownerID:       a.HomeownerID,
		ScheduledAt:       a.ScheduledAt,
		BookedByCleanerID: a.BookedByCleanerID,
		ClientRespondedAt: a.ClientRespondedAt,
		SuggestedDates:    a.SuggestedDates,
		ExpiresAt:         a.ExpiresAt,
		OriginalBookingID: a.OriginalBookingID,
		RebookingAttempts: a.RebookingAttempts,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.ClientResponse != "" {
		v := string(a.ClientResponse)
		m.ClientResponse = &v
	}
	if a.DeclineReason != "" {
		v := a.DeclineReason
		m.DeclineReason = &v
	}
	return m
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

// RecordResponse writes the client's decision once; an already
// responded or expired appointment matches no row.
func (r *AppointmentRepository) RecordResponse(ctx context.Context, id int64, resp domain.ClientResponse, reason string, suggested []string, at time.Time) (*domain.Appointment, error) {
	updates := map[string]interface{}{
		"client_response":     string(resp),
		"client_responded_at": at,
		"updated_at":          at,
	}
	if reason != "" {
		updates["decline_reason"] = reason
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&appointmentModel{}).
			Where("id = ? AND client_response IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if len(suggested) > 0 {
			var m appointmentModel
			if err := tx.First(&m, id).Error; err != nil {
				return err
			}
			m.SuggestedDates = suggested
			return tx.Save(&m).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ExpirePending marks unresponded appointments past their window.
func (r *AppointmentRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("client_response IS NULL AND expires_at IS NOT NULL AND expires_at <= ?", now).
		Updates(map[string]interface{}{
			"client_response":     string(domain.ResponseExpired),
			"client_responded_at": now,
		})
	return res.RowsAffected, res.Error
}

// CountPendingBefore supports the pending-response partial index path.
func (r *AppointmentRepository) CountPendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("client_response IS NULL AND expires_at IS NOT NULL AND expires_at <= ?", cutoff).
		Count(&n).Error
	return n, err
}
