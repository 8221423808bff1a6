package appointments

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"
	"tidyteam/internal/pkg/clock"

	"gorm.io/gorm"
)

type Service struct {
	appointments   AppointmentRepository
	clk            clock.Clock
	responseWindow time.Duration
}

func NewService(appointments AppointmentRepository, clk clock.Clock, responseWindow time.Duration) *Service {
	return &Service{appointments: appointments, clk: clk, responseWindow: responseWindow}
}

// Create opens the client response window. A cleaner-booked
// appointment starts pending with ExpiresAt set; unresponded
// appointments past that moment are swept to expired.
func (s *Service) Create(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	if req.ScheduledAt.Before(s.clk.Now()) {
		return nil, ErrValidation
	}

	a := &domain.Appointment{
		JobID:             req.JobID,
		HomeownerID:       req.HomeownerID,
		ScheduledAt:       req.ScheduledAt,
		BookedByCleanerID: req.BookedByCleanerID,
	}
	if req.BookedByCleanerID != nil {
		expires := s.clk.Now().Add(s.responseWindow)
		a.ExpiresAt = &expires
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Respond records accept or decline exactly once. A decline may carry
// a reason and alternative dates; the write is guarded in the
// repository so a second response or a raced expiry sweep loses.
func (s *Service) Respond(ctx context.Context, id, homeownerID int64, req RespondRequest) (*domain.Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.HomeownerID != homeownerID {
		return nil, ErrForbidden
	}
	if !a.ResponsePending() {
		return nil, ErrAlreadyResponded
	}

	var resp domain.ClientResponse
	switch req.Response {
	case string(domain.ResponseAccepted):
		resp = domain.ResponseAccepted
	case string(domain.ResponseDeclined):
		resp = domain.ResponseDeclined
	default:
		return nil, ErrValidation
	}

	reason := ""
	var suggested []string
	if resp == domain.ResponseDeclined {
		reason = req.DeclineReason
		suggested = req.SuggestedDates
	}

	updated, err := s.appointments.RecordResponse(ctx, id, resp, reason, suggested, s.clk.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlreadyResponded
		}
		return nil, err
	}
	return updated, nil
}

// Rebook creates a fresh appointment linked to its predecessor.
// Attempts accumulate along the chain; the origin link is nullable, so
// the chain survives deletion of its root.
func (s *Service) Rebook(ctx context.Context, id, homeownerID int64, req RebookRequest) (*domain.Appointment, error) {
	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if prev.HomeownerID != homeownerID {
		return nil, ErrForbidden
	}
	if req.ScheduledAt.Before(s.clk.Now()) {
		return nil, ErrValidation
	}

	next := &domain.Appointment{
		JobID:             prev.JobID,
		HomeownerID:       prev.HomeownerID,
		ScheduledAt:       req.ScheduledAt,
		BookedByCleanerID: prev.BookedByCleanerID,
		OriginalBookingID: &prev.ID,
		RebookingAttempts: prev.RebookingAttempts + 1,
	}
	if prev.BookedByCleanerID != nil {
		expires := s.clk.Now().Add(s.responseWindow)
		next.ExpiresAt = &expires
	}

	if err := s.appointments.Create(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ExpirePending sweeps unresponded appointments past their window;
// called periodically by the API process.
func (s *Service) ExpirePending(ctx context.Context) (int64, error) {
	return s.appointments.ExpirePending(ctx, s.clk.Now())
}

// PendingBacklog counts appointments the next sweep would expire.
func (s *Service) PendingBacklog(ctx context.Context) (int64, error) {
	return s.appointments.CountPendingBefore(ctx, s.clk.Now())
}
