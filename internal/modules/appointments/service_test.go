package appointments

import (
	"context"
	"testing"
	"time"

	"tidyteam/internal/domain"
	"tidyteam/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	args := m.Called(ctx, a)
	if a != nil {
		a.ID = 301
	}
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) RecordResponse(ctx context.Context, id int64, resp domain.ClientResponse, reason string, suggested []string, at time.Time) (*domain.Appointment, error) {
	args := m.Called(ctx, id, resp, reason, suggested, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountPendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

var testNow = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

func newTestService(repo *MockAppointmentRepository) *Service {
	return NewService(repo, clock.Fixed{T: testNow}, 48*time.Hour)
}

func pendingAppointment() *domain.Appointment {
	cleanerID := int64(11)
	expires := testNow.Add(24 * time.Hour)
	return &domain.Appointment{
		ID:                301,
		HomeownerID:       7,
		ScheduledAt:       testNow.Add(72 * time.Hour),
		BookedByCleanerID: &cleanerID,
		ExpiresAt:         &expires,
	}
}

func TestService_Create_SetsResponseWindow(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo)

	cleanerID := int64(11)
	a, err := service.Create(context.Background(), CreateAppointmentRequest{
		HomeownerID:       7,
		ScheduledAt:       testNow.Add(72 * time.Hour),
		BookedByCleanerID: &cleanerID,
	})

	assert.NoError(t, err)
	assert.NotNil(t, a.ExpiresAt)
	assert.Equal(t, testNow.Add(48*time.Hour), *a.ExpiresAt)
	assert.True(t, a.ResponsePending())
}

func TestService_Create_NoWindowWithoutCleaner(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(repo)

	a, err := service.Create(context.Background(), CreateAppointmentRequest{
		HomeownerID: 7,
		ScheduledAt: testNow.Add(72 * time.Hour),
	})

	assert.NoError(t, err)
	assert.Nil(t, a.ExpiresAt)
}

func TestService_Create_PastDateRejected(t *testing.T) {
	service := newTestService(new(MockAppointmentRepository))

	_, err := service.Create(context.Background(), CreateAppointmentRequest{
		HomeownerID: 7,
		ScheduledAt: testNow.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Respond_DeclineCarriesReasonAndDates(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, int64(301)).Return(pendingAppointment(), nil)

	suggested := []string{"2026-02-14", "2026-02-15"}
	declined := pendingAppointment()
	declined.ClientResponse = domain.ResponseDeclined
	declined.DeclineReason = "Date no longer works"
	declined.SuggestedDates = suggested
	repo.On("RecordResponse", mock.Anything, int64(301), domain.ResponseDeclined, "Date no longer works", suggested, testNow).
		Return(declined, nil)

	service := newTestService(repo)

	a, err := service.Respond(context.Background(), 301, 7, RespondRequest{
		Response:       "declined",
		DeclineReason:  "Date no longer works",
		SuggestedDates: suggested,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseDeclined, a.ClientResponse)
	assert.Equal(t, suggested, a.SuggestedDates)
}

func TestService_Respond_AcceptDropsDeclineFields(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, int64(301)).Return(pendingAppointment(), nil)

	accepted := pendingAppointment()
	accepted.ClientResponse = domain.ResponseAccepted
	repo.On("RecordResponse", mock.Anything, int64(301), domain.ResponseAccepted, "", []string(nil), testNow).
		Return(accepted, nil)

	service := newTestService(repo)

	a, err := service.Respond(context.Background(), 301, 7, RespondRequest{
		Response:      "accepted",
		DeclineReason: "ignored on accept",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ResponseAccepted, a.ClientResponse)
}

func TestService_Respond_Twice(t *testing.T) {
	responded := pendingAppointment()
	responded.ClientResponse = domain.ResponseAccepted

	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, int64(301)).Return(responded, nil)

	service := newTestService(repo)

	_, err := service.Respond(context.Background(), 301, 7, RespondRequest{Response: "declined"})
	assert.ErrorIs(t, err, ErrAlreadyResponded)
}

func TestService_Respond_UnknownResponse(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, int64(301)).Return(pendingAppointment(), nil)

	service := newTestService(repo)

	_, err := service.Respond(context.Background(), 301, 7, RespondRequest{Response: "maybe"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Respond_WrongHomeowner(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, int64(301)).Return(pendingAppointment(), nil)

	service := newTestService(repo)

	_, err := service.Respond(context.Background(), 301, 99, RespondRequest{Response: "accepted"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Rebook_LinksChain(t *testing.T) {
	prev := pendingAppointment()
	prev.ClientResponse = domain.ResponseDeclined
	prev.RebookingAttempts = 1

	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, int64(301)).Return(prev, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.OriginalBookingID != nil && *a.OriginalBookingID == 301 && a.RebookingAttempts == 2
	})).Return(nil)

	service := newTestService(repo)

	next, err := service.Rebook(context.Background(), 301, 7, RebookRequest{ScheduledAt: testNow.Add(96 * time.Hour)})

	assert.NoError(t, err)
	assert.Equal(t, 2, next.RebookingAttempts)
	assert.NotNil(t, next.ExpiresAt)
	assert.True(t, next.ResponsePending())
	repo.AssertExpectations(t)
}

func TestService_ExpirePending(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("ExpirePending", mock.Anything, testNow).Return(int64(4), nil)

	service := newTestService(repo)

	n, err := service.ExpirePending(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
