package bonus

import (
	"context"
	"time"

	"tidyteam/internal/domain"
)

type BonusRepository interface {
	Create(ctx context.Context, b *domain.Bonus) error
	GetByID(ctx context.Context, id int64) (*domain.Bonus, error)
	ListByCleaner(ctx context.Context, cleanerID int64, limit, offset int) ([]domain.Bonus, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PayoutStatus, paidAt *time.Time) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
