package incentives

import (
	"context"
	"encoding/json"
	"testing"

	"tidyteam/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockIncentiveRepository struct {
	mock.Mock
}

func (m *MockIncentiveRepository) GetLatest(ctx context.Context) (*domain.IncentiveConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncentiveConfig), args.Error(1)
}

func (m *MockIncentiveRepository) Save(ctx context.Context, cfg *domain.IncentiveConfig) error {
	args := m.Called(ctx, cfg)
	if cfg != nil {
		cfg.ID = 1
	}
	return args.Error(0)
}

func activeConfig() *domain.IncentiveConfig {
	return &domain.IncentiveConfig{
		ID:        1,
		Active:    true,
		Cleaner:   []byte(`{"title":"$50 signup bonus"}`),
		Homeowner: []byte(`{"title":"20% off first clean"}`),
	}
}

func TestService_Current_ActivePromotion(t *testing.T) {
	repo := new(MockIncentiveRepository)
	repo.On("GetLatest", mock.Anything).Return(activeConfig(), nil)

	service := NewService(repo)

	res, err := service.Current(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.JSONEq(t, `{"title":"$50 signup bonus"}`, string(res.Cleaner))
	assert.JSONEq(t, `{"title":"20% off first clean"}`, string(res.Homeowner))
}

func TestService_Current_NoneSaved(t *testing.T) {
	repo := new(MockIncentiveRepository)
	repo.On("GetLatest", mock.Anything).Return(nil, nil)

	service := NewService(repo)

	res, err := service.Current(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestService_Current_InactiveIsNull(t *testing.T) {
	cfg := activeConfig()
	cfg.Active = false

	repo := new(MockIncentiveRepository)
	repo.On("GetLatest", mock.Anything).Return(cfg, nil)

	service := NewService(repo)

	res, err := service.Current(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestService_Config_DefaultSource(t *testing.T) {
	repo := new(MockIncentiveRepository)
	repo.On("GetLatest", mock.Anything).Return(nil, nil)

	service := NewService(repo)

	res, err := service.Config(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, SourceDefault, res.Source)
	assert.False(t, res.Config.Active)
	assert.Contains(t, res.FormattedConfig, `"active": false`)
}

func TestService_Config_DatabaseSource(t *testing.T) {
	repo := new(MockIncentiveRepository)
	repo.On("GetLatest", mock.Anything).Return(activeConfig(), nil)

	service := NewService(repo)

	res, err := service.Config(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, SourceDatabase, res.Source)
	assert.True(t, res.Config.Active)
}

func TestService_Update_RejectsNonObjectBlock(t *testing.T) {
	service := NewService(new(MockIncentiveRepository))

	_, err := service.Update(context.Background(), 1, UpdateConfigRequest{
		Active:  true,
		Cleaner: json.RawMessage(`"just a string"`),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_SavesRevision(t *testing.T) {
	repo := new(MockIncentiveRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(cfg *domain.IncentiveConfig) bool {
		return cfg.Active && cfg.UpdatedBy != nil && *cfg.UpdatedBy == 1
	})).Return(nil)
	repo.On("GetLatest", mock.Anything).Return(activeConfig(), nil)

	service := NewService(repo)

	res, err := service.Update(context.Background(), 1, UpdateConfigRequest{
		Active:    true,
		Cleaner:   json.RawMessage(`{"title":"$50 signup bonus"}`),
		Homeowner: json.RawMessage(`{"title":"20% off first clean"}`),
	})

	assert.NoError(t, err)
	assert.Equal(t, SourceDatabase, res.Source)
	repo.AssertExpectations(t)
}

func TestService_Update_MissingBlockBecomesEmptyObject(t *testing.T) {
	repo := new(MockIncentiveRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(cfg *domain.IncentiveConfig) bool {
		return string(cfg.Homeowner) == `{}`
	})).Return(nil)
	repo.On("GetLatest", mock.Anything).Return(activeConfig(), nil)

	service := NewService(repo)

	_, err := service.Update(context.Background(), 1, UpdateConfigRequest{
		Active:  true,
		Cleaner: json.RawMessage(`{"title":"bonus"}`),
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
