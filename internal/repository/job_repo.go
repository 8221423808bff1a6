package repository

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

// ErrNoSlot is returned when a slot confirmation races a fill: the
// guarded UPDATE matched no row.
var ErrNoSlot = errors.New("no open slot on job")

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

type jobModel struct {
	ID                    int64     `gorm:"column:id;primaryKey"`
	HomeownerID           int64     `gorm:"column:homeowner_id;index"`
	AppointmentDate       time.Time `gorm:"column:appointment_date"`
	Address               string    `gorm:"column:address"`
	City                  string    `gorm:"column:city"`
	State                 string    `gorm:"column:state"`
	NumBeds               int       `gorm:"column:num_beds"`
	NumBaths              int       `gorm:"column:num_baths"`
	TotalCleanersRequired int       `gorm:"column:total_cleaners_required"`
	CleanersConfirmed     int       `gorm:"column:cleaners_confirmed"`
	Status                string    `gorm:"column:status;index"`
	TotalJobPriceCents    int64     `gorm:"column:total_job_price_cents"`
	TimeToBeCompleted     string    `gorm:"column:time_to_be_completed"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
}

func (jobModel) TableName() string { return "jobs" }

func toDomainJob(m jobModel) *domain.Job {
	return &domain.Job{
		ID:                    m.ID,
		HomeownerID:           m.HomeownerID,
		AppointmentDate:       m.AppointmentDate,
		Address:               m.Address,
		City:                  m.City,
		State:                 m.State,
		NumBeds:               m.NumBeds,
		NumBaths:              m.NumBaths,
		TotalCleanersRequired: m.TotalCleanersRequired,
		CleanersConfirmed:     m.CleanersConfirmed,
		Status:                domain.JobStatus(m.Status),
		TotalJobPrice:         domain.Cents(m.TotalJobPriceCents),
		TimeToBeCompleted:     m.TimeToBeCompleted,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func toJobModel(j *domain.Job) jobModel {
	return jobModel{
		ID:                    j.ID,
		HomeownerID:           j.HomeownerID,
		AppointmentDate:       j.AppointmentDate,
		Address:               j.Address,
		City:                  j.City,
		State:                 j.State,
		NumBeds:               j.NumBeds,
		NumBaths:              j.NumBaths,
		TotalCleanersRequired: j.TotalCleanersRequired,
		CleanersConfirmed:     j.CleanersConfirmed,
		Status:                string(j.Status),
		TotalJobPriceCents:    int64(j.TotalJobPrice),
		TimeToBeCompleted:     j.TimeToBeCompleted,
		CreatedAt:             j.CreatedAt,
		UpdatedAt:             j.UpdatedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	m := toJobModel(j)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*j = *toDomainJob(m)
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var m jobModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainJob(m), nil
}

func (r *JobRepository) ListOpen(ctx context.Context, limit, offset int) ([]domain.Job, error) {
	var models []jobModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.JobOpen)).
		Order("appointment_date ASC").
		Limit(limit).Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Job, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainJob(m))
	}
	return out, nil
}

// ConfirmSlot takes one slot atomically. The guard clause makes the
// increment race-safe: two concurrent accepts of the last slot resolve
// to one winner and one ErrNoSlot. The job flips to filled when the
// confirming cleaner takes the final slot.
func (r *JobRepository) ConfirmSlot(ctx context.Context, jobID int64) (*domain.Job, error) {
	tx := r.db.WithContext(ctx).Exec(`
		UPDATE jobs
		SET cleaners_confirmed = cleaners_confirmed + 1,
		    status = CASE
		        WHEN cleaners_confirmed + 1 >= total_cleaners_required THEN 'filled'
		        ELSE status
		    END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		  AND status = 'open'
		  AND cleaners_confirmed < total_cleaners_required`, jobID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNoSlot
	}
	return r.GetByID(ctx, jobID)
}

// ConfirmSlots takes n slots in one guarded statement (team booking).
func (r *JobRepository) ConfirmSlots(ctx context.Context, jobID int64, n int) (*domain.Job, error) {
	tx := r.db.WithContext(ctx).Exec(`
		UPDATE jobs
		SET cleaners_confirmed = cleaners_confirmed + ?,
		    status = CASE
		        WHEN cleaners_confirmed + ? >= total_cleaners_required THEN 'filled'
		        ELSE status
		    END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		  AND status = 'open'
		  AND cleaners_confirmed + ? <= total_cleaners_required`, n, n, jobID, n)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNoSlot
	}
	return r.GetByID(ctx, jobID)
}

// ReleaseSlot frees a slot after a dropout. A filled job reopens; the
// confirmed count never goes below zero.
func (r *JobRepository) ReleaseSlot(ctx context.Context, jobID int64) (*domain.Job, error) {
	tx := r.db.WithContext(ctx).Exec(`
		UPDATE jobs
		SET cleaners_confirmed = cleaners_confirmed - 1,
		    status = CASE WHEN status = 'filled' THEN 'open' ELSE status END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND cleaners_confirmed > 0`, jobID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNoSlot
	}
	return r.GetByID(ctx, jobID)
}

func (r *JobRepository) UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error {
	return r.db.WithContext(ctx).Model(&jobModel{}).
		Where("id = ?", jobID).
		Update("status", string(status)).Error
}
