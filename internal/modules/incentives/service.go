package incentives

import (
	"context"
	"encoding/json"

	"tidyteam/internal/domain"
)

const (
	SourceDatabase = "database"
	SourceDefault  = "default"
)

// defaultConfig is served when no admin ever saved a promotion.
var defaultConfig = ConfigPayload{
	Active:    false,
	Cleaner:   json.RawMessage(`{}`),
	Homeowner: json.RawMessage(`{}`),
}

type Service struct {
	incentives IncentiveRepository
}

func NewService(incentives IncentiveRepository) *Service {
	return &Service{incentives: incentives}
}

// Current returns the active promotion per audience, or nil when no
// promotion is active.
func (s *Service) Current(ctx context.Context) (*CurrentResponse, error) {
	cfg, err := s.incentives.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil || !cfg.Active {
		return nil, nil
	}
	return &CurrentResponse{
		Cleaner:   json.RawMessage(cfg.Cleaner),
		Homeowner: json.RawMessage(cfg.Homeowner),
	}, nil
}

// Config returns the stored config for the admin screen, falling back
// to named defaults when nothing was ever saved.
func (s *Service) Config(ctx context.Context) (*ConfigResponse, error) {
	cfg, err := s.incentives.GetLatest(ctx)
	if err != nil {
		return nil, err
	}

	payload := defaultConfig
	source := SourceDefault
	if cfg != nil {
		source = SourceDatabase
		payload = ConfigPayload{
			Active:    cfg.Active,
			Cleaner:   json.RawMessage(cfg.Cleaner),
			Homeowner: json.RawMessage(cfg.Homeowner),
		}
	}

	formatted, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return &ConfigResponse{
		Source:          source,
		Config:          payload,
		FormattedConfig: string(formatted),
	}, nil
}

// Update appends a new config revision. Both audience blocks must be
// valid JSON objects.
func (s *Service) Update(ctx context.Context, adminID int64, req UpdateConfigRequest) (*ConfigResponse, error) {
	cleaner := normalizeBlock(req.Cleaner)
	homeowner := normalizeBlock(req.Homeowner)
	if cleaner == nil || homeowner == nil {
		return nil, ErrValidation
	}

	cfg := &domain.IncentiveConfig{
		Active:    req.Active,
		Cleaner:   cleaner,
		Homeowner: homeowner,
		UpdatedBy: &adminID,
	}
	if err := s.incentives.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return s.Config(ctx)
}

// normalizeBlock accepts a missing block as an empty object and
// rejects anything that is not a JSON object.
func normalizeBlock(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte(`{}`)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return raw
}
