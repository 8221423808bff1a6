package incentives

import (
	"context"

	"tidyteam/internal/domain"
)

type IncentiveRepository interface {
	GetLatest(ctx context.Context) (*domain.IncentiveConfig, error)
	Save(ctx context.Context, cfg *domain.IncentiveConfig) error
}
