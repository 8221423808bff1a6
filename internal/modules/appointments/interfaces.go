package appointments

import (
	"context"
	"time"

	"tidyteam/internal/domain"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	RecordResponse(ctx context.Context, id int64, resp domain.ClientResponse, reason string, suggested []string, at time.Time) (*domain.Appointment, error)
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
	CountPendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
