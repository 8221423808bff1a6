package bonus

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"
	"tidyteam/internal/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	bonuses BonusRepository
	users   UserRepository
	clk     clock.Clock
}

func NewService(bonuses BonusRepository, users UserRepository, clk clock.Clock) *Service {
	return &Service{bonuses: bonuses, users: users, clk: clk}
}

// Create records a payer-to-cleaner bonus. Only homeowners and
// business owners pay bonuses, only to actual cleaners, and the
// amount must be positive.
func (s *Service) Create(ctx context.Context, payerID int64, req CreateBonusRequest) (*BonusResponse, error) {
	amount := domain.CentsFromDollars(req.Amount)
	if amount <= 0 {
		return nil, ErrValidation
	}

	payer, err := s.users.GetByID(ctx, payerID)
	if err != nil {
		return nil, ErrForbidden
	}
	if payer.Role != domain.RoleHomeowner && payer.Role != domain.RoleBusinessOwner {
		return nil, ErrForbidden
	}

	cleaner, err := s.users.GetByID(ctx, req.CleanerID)
	if err != nil {
		return nil, ErrValidation
	}
	if cleaner.Role != domain.RoleCleaner {
		return nil, ErrValidation
	}

	b := &domain.Bonus{
		Reference:   uuid.NewString(),
		CleanerID:   req.CleanerID,
		PayerID:     payerID,
		JobID:       req.JobID,
		Amount:      amount,
		Note:        req.Note,
		Status:      domain.PayoutPending,
		InitiatedAt: s.clk.Now(),
	}
	if err := s.bonuses.Create(ctx, b); err != nil {
		return nil, ErrCreate
	}
	return toBonusResponse(b), nil
}

func (s *Service) Get(ctx context.Context, id, viewerID int64) (*BonusResponse, error) {
	b, err := s.bonuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.CleanerID != viewerID && b.PayerID != viewerID {
		return nil, ErrForbidden
	}
	return toBonusResponse(b), nil
}

func (s *Service) ListForCleaner(ctx context.Context, cleanerID int64, limit, offset int) ([]BonusResponse, error) {
	bonuses, err := s.bonuses.ListByCleaner(ctx, cleanerID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]BonusResponse, 0, len(bonuses))
	for i := range bonuses {
		out = append(out, *toBonusResponse(&bonuses[i]))
	}
	return out, nil
}

// AdvanceStatus moves the payout along pending -> processing -> paid.
// Paid stamps PaidAt; failed is terminal until re-initiated.
func (s *Service) AdvanceStatus(ctx context.Context, id int64, status domain.PayoutStatus) (*BonusResponse, error) {
	switch status {
	case domain.PayoutProcessing, domain.PayoutPaid, domain.PayoutFailed:
	default:
		return nil, ErrValidation
	}

	b, err := s.bonuses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var paidAt *time.Time
	if status == domain.PayoutPaid {
		now := s.clk.Now()
		paidAt = &now
	}
	if err := s.bonuses.UpdateStatus(ctx, id, status, paidAt); err != nil {
		return nil, err
	}

	b.Status = status
	b.PaidAt = paidAt
	return toBonusResponse(b), nil
}
