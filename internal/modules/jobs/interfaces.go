package jobs

import (
	"context"
	"time"

	"tidyteam/internal/domain"
)

// JobRepository defines the persistence surface the job lifecycle
// needs. Slot mutations are guarded server-side; see the repository.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	ListOpen(ctx context.Context, limit, offset int) ([]domain.Job, error)
	ConfirmSlot(ctx context.Context, jobID int64) (*domain.Job, error)
	ConfirmSlots(ctx context.Context, jobID int64, n int) (*domain.Job, error)
	ReleaseSlot(ctx context.Context, jobID int64) (*domain.Job, error)
	UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error
}

type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) error
	GetByID(ctx context.Context, id int64) (*domain.Offer, error)
	ListPendingForCleaner(ctx context.Context, cleanerID int64) ([]domain.Offer, error)
	Resolve(ctx context.Context, offerID int64, status domain.OfferStatus, reason string, at time.Time) (*domain.Offer, error)
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
	CreateSolo(ctx context.Context, o *domain.SoloOffer) error
	GetSoloByID(ctx context.Context, id int64) (*domain.SoloOffer, error)
	ResolveSolo(ctx context.Context, offerID int64, status domain.OfferStatus, at time.Time) (*domain.SoloOffer, error)
}

type AssignmentRepository interface {
	ListForCleaner(ctx context.Context, jobID, cleanerID int64) ([]domain.RoomAssignment, error)
	ListByJob(ctx context.Context, jobID int64) ([]domain.RoomAssignment, error)
	ReassignAllTo(ctx context.Context, jobID, toCleanerID int64) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListEmployees(ctx context.Context, employerID int64) ([]domain.User, error)
	HasEmployees(ctx context.Context, employerID int64) (bool, error)
}

// NotificationSender pushes lifecycle events to clients. Failures are
// non-fatal; the state change already committed.
type NotificationSender interface {
	NotifyOfferCreated(ctx context.Context, cleanerID, offerID, jobID int64) error
	NotifyJobFilled(ctx context.Context, homeownerID, jobID int64) error
	NotifyDropout(ctx context.Context, homeownerID, jobID int64, remainingCleaners int) error
	NotifySoloOffer(ctx context.Context, cleanerID, soloOfferID, jobID int64) error
}
