package jobs

import (
	"context"
	"testing"
	"time"

	"tidyteam/internal/domain"
	"tidyteam/internal/pkg/clock"
	"tidyteam/internal/repository"
	"tidyteam/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, j *domain.Job) error {
	args := m.Called(ctx, j)
	if j != nil {
		j.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ListOpen(ctx context.Context, limit, offset int) ([]domain.Job, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepository) ConfirmSlot(ctx context.Context, jobID int64) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ConfirmSlots(ctx context.Context, jobID int64, n int) (*domain.Job, error) {
	args := m.Called(ctx, jobID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) ReleaseSlot(ctx context.Context, jobID int64) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) UpdateStatus(ctx context.Context, jobID int64, status domain.JobStatus) error {
	args := m.Called(ctx, jobID, status)
	return args.Error(0)
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	args := m.Called(ctx, o)
	if o != nil {
		o.ID = 501
	}
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListPendingForCleaner(ctx context.Context, cleanerID int64) ([]domain.Offer, error) {
	args := m.Called(ctx, cleanerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) Resolve(ctx context.Context, offerID int64, status domain.OfferStatus, reason string, at time.Time) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, status, reason, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOfferRepository) CreateSolo(ctx context.Context, o *domain.SoloOffer) error {
	args := m.Called(ctx, o)
	if o != nil {
		o.ID = 701
	}
	return args.Error(0)
}

func (m *MockOfferRepository) GetSoloByID(ctx context.Context, id int64) (*domain.SoloOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SoloOffer), args.Error(1)
}

func (m *MockOfferRepository) ResolveSolo(ctx context.Context, offerID int64, status domain.OfferStatus, at time.Time) (*domain.SoloOffer, error) {
	args := m.Called(ctx, offerID, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SoloOffer), args.Error(1)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) ListForCleaner(ctx context.Context, jobID, cleanerID int64) ([]domain.RoomAssignment, error) {
	args := m.Called(ctx, jobID, cleanerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.RoomAssignment, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ReassignAllTo(ctx context.Context, jobID, toCleanerID int64) error {
	args := m.Called(ctx, jobID, toCleanerID)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListEmployees(ctx context.Context, employerID int64) ([]domain.User, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) HasEmployees(ctx context.Context, employerID int64) (bool, error) {
	args := m.Called(ctx, employerID)
	return args.Bool(0), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyOfferCreated(ctx context.Context, cleanerID, offerID, jobID int64) error {
	args := m.Called(ctx, cleanerID, offerID, jobID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyJobFilled(ctx context.Context, homeownerID, jobID int64) error {
	args := m.Called(ctx, homeownerID, jobID)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyDropout(ctx context.Context, homeownerID, jobID int64, remainingCleaners int) error {
	args := m.Called(ctx, homeownerID, jobID, remainingCleaners)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifySoloOffer(ctx context.Context, cleanerID, soloOfferID, jobID int64) error {
	args := m.Called(ctx, cleanerID, soloOfferID, jobID)
	return args.Error(0)
}

var testNow = time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

func testPolicy() Policy {
	return Policy{
		FeePercent:          0.13,
		OfferTTL:            48 * time.Hour,
		SoloOfferTTL:        12 * time.Hour,
		RecommendedCleaners: 2,
	}
}

func newTestService(jobs *MockJobRepository, offers *MockOfferRepository, assignments *MockAssignmentRepository, users *MockUserRepository, notifs *MockNotificationSender) *Service {
	return NewService(jobs, offers, assignments, users, notifs, clock.Fixed{T: testNow}, testPolicy())
}

func openJob(confirmed int) *domain.Job {
	return &domain.Job{
		ID:                    42,
		HomeownerID:           7,
		AppointmentDate:       testNow.Add(72 * time.Hour),
		Address:               "123 Maple St",
		City:                  "Austin",
		State:                 "TX",
		NumBeds:               4,
		NumBaths:              3,
		TotalCleanersRequired: 2,
		CleanersConfirmed:     confirmed,
		Status:                domain.JobOpen,
		TotalJobPrice:         domain.CentsFromDollars(300),
	}
}

func TestService_CreateJob_Success(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	j, err := service.CreateJob(context.Background(), CreateJobRequest{
		HomeownerID:           7,
		AppointmentDate:       testNow.Add(72 * time.Hour),
		Address:               "123 Maple St",
		City:                  "Austin",
		State:                 "TX",
		NumBeds:               4,
		NumBaths:              3,
		TotalCleanersRequired: 2,
		TotalJobPrice:         300,
	})

	assert.NoError(t, err)
	assert.NotNil(t, j)
	assert.Equal(t, domain.JobOpen, j.Status)
	assert.Equal(t, domain.Cents(30000), j.TotalJobPrice)
	assert.Equal(t, int64(999), j.ID)
}

func TestService_CreateJob_SingleCleanerRejected(t *testing.T) {
	service := newTestService(new(MockJobRepository), new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.CreateJob(context.Background(), CreateJobRequest{
		HomeownerID:           7,
		TotalCleanersRequired: 1,
		TotalJobPrice:         300,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_OfferToCleaner_SplitsFee(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(0), nil)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("Create", mock.Anything, mock.Anything).Return(nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyOfferCreated", mock.Anything, int64(11), int64(501), int64(42)).Return(nil)

	service := newTestService(mockJobs, mockOffers, new(MockAssignmentRepository), new(MockUserRepository), mockNotifs)

	o, err := service.OfferToCleaner(context.Background(), 42, 11)

	assert.NoError(t, err)
	// $300 split two ways is $150 each; 13% of that is the platform fee
	assert.Equal(t, domain.Cents(15000), o.TotalJobPrice)
	assert.Equal(t, domain.Cents(1950), o.PlatformFee)
	assert.Equal(t, domain.Cents(13050), o.EarningsOffered)
	assert.Equal(t, 50.0, o.PercentOfWork)
	assert.Equal(t, testNow.Add(48*time.Hour), o.ExpiresAt)
	assert.Equal(t, domain.OfferPending, o.Status)
	mockNotifs.AssertExpectations(t)
}

func TestService_OfferToCleaner_JobFilled(t *testing.T) {
	filled := openJob(2)
	filled.Status = domain.JobFilled

	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(filled, nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.OfferToCleaner(context.Background(), 42, 11)
	assert.ErrorIs(t, err, ErrJobFilled)
}

func pendingOffer() *domain.Offer {
	return &domain.Offer{
		ID:              501,
		JobID:           42,
		CleanerID:       11,
		Status:          domain.OfferPending,
		ExpiresAt:       testNow.Add(24 * time.Hour),
		TotalJobPrice:   15000,
		PlatformFee:     1950,
		EarningsOffered: 13050,
		PercentOfWork:   50,
	}
}

func TestService_AcceptOffer_FillsLastSlot(t *testing.T) {
	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetByID", mock.Anything, int64(501)).Return(pendingOffer(), nil)
	resolved := pendingOffer()
	resolved.Status = domain.OfferAccepted
	mockOffers.On("Resolve", mock.Anything, int64(501), domain.OfferAccepted, "", testNow).Return(resolved, nil)

	confirmed := openJob(2)
	confirmed.Status = domain.JobFilled
	mockJobs := new(MockJobRepository)
	mockJobs.On("ConfirmSlot", mock.Anything, int64(42)).Return(confirmed, nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyJobFilled", mock.Anything, int64(7), int64(42)).Return(nil)

	service := newTestService(mockJobs, mockOffers, new(MockAssignmentRepository), new(MockUserRepository), mockNotifs)

	j, err := service.AcceptOffer(context.Background(), 501, 11)

	assert.NoError(t, err)
	assert.Equal(t, 2, j.CleanersConfirmed)
	assert.Equal(t, domain.JobFilled, j.Status)
	mockNotifs.AssertExpectations(t)
}

func TestService_AcceptOffer_Expired(t *testing.T) {
	stale := pendingOffer()
	stale.ExpiresAt = testNow.Add(-time.Minute)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetByID", mock.Anything, int64(501)).Return(stale, nil)
	expired := pendingOffer()
	expired.Status = domain.OfferExpired
	mockOffers.On("Resolve", mock.Anything, int64(501), domain.OfferExpired, "", testNow).Return(expired, nil)

	service := newTestService(new(MockJobRepository), mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.AcceptOffer(context.Background(), 501, 11)

	assert.ErrorIs(t, err, ErrOfferExpired)
	mockOffers.AssertExpectations(t)
}

func TestService_AcceptOffer_WrongCleaner(t *testing.T) {
	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetByID", mock.Anything, int64(501)).Return(pendingOffer(), nil)

	service := newTestService(new(MockJobRepository), mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.AcceptOffer(context.Background(), 501, 99)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_AcceptOffer_SlotRaceLost(t *testing.T) {
	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetByID", mock.Anything, int64(501)).Return(pendingOffer(), nil)

	mockJobs := new(MockJobRepository)
	mockJobs.On("ConfirmSlot", mock.Anything, int64(42)).Return(nil, repository.ErrNoSlot)

	service := newTestService(mockJobs, mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.AcceptOffer(context.Background(), 501, 11)
	assert.ErrorIs(t, err, ErrJobFilled)
}

func TestService_DeclineOffer_RecordsReason(t *testing.T) {
	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetByID", mock.Anything, int64(501)).Return(pendingOffer(), nil)
	resolved := pendingOffer()
	resolved.Status = domain.OfferDeclined
	resolved.DeclineReason = "Too far away"
	mockOffers.On("Resolve", mock.Anything, int64(501), domain.OfferDeclined, "Too far away", testNow).Return(resolved, nil)

	service := newTestService(new(MockJobRepository), mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	o, err := service.DeclineOffer(context.Background(), 501, 11, "Too far away")

	assert.NoError(t, err)
	assert.Equal(t, domain.OfferDeclined, o.Status)
	assert.Equal(t, "Too far away", o.DeclineReason)
}

func TestService_DeclineOffer_AlreadyResolved(t *testing.T) {
	accepted := pendingOffer()
	accepted.Status = domain.OfferAccepted

	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetByID", mock.Anything, int64(501)).Return(accepted, nil)

	service := newTestService(new(MockJobRepository), mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.DeclineOffer(context.Background(), 501, 11, "changed my mind")
	assert.ErrorIs(t, err, ErrOfferResolved)
}

func TestService_AcceptSolo_RequiresAcknowledgment(t *testing.T) {
	service := newTestService(new(MockJobRepository), new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.AcceptSolo(context.Background(), 42, 11, false)
	assert.ErrorIs(t, err, ErrAcknowledgmentRequired)
}

func TestService_AcceptSolo_Acknowledged(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("ConfirmSlot", mock.Anything, int64(42)).Return(openJob(1), nil)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Offer) bool {
		return o.CleanerID == 11 && o.Status == domain.OfferAccepted
	})).Return(nil)

	service := newTestService(mockJobs, mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	j, err := service.AcceptSolo(context.Background(), 42, 11, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, j.CleanersConfirmed)
	mockOffers.AssertExpectations(t)
}

func TestService_RequestJoinTeam_RecordsConfirmation(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("ConfirmSlot", mock.Anything, int64(42)).Return(openJob(1), nil)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Offer) bool {
		return o.JobID == 42 &&
			o.CleanerID == 11 &&
			o.Status == domain.OfferAccepted &&
			o.EarningsOffered == domain.Cents(13050) &&
			o.RespondedAt != nil && o.RespondedAt.Equal(testNow)
	})).Return(nil)

	service := newTestService(mockJobs, mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	j, err := service.RequestJoinTeam(context.Background(), 42, 11)

	assert.NoError(t, err)
	assert.Equal(t, 1, j.CleanersConfirmed)
	mockOffers.AssertExpectations(t)
}

func TestService_ListOpenCards_OwnerWithEmployeesGetsBookTeam(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("ListOpen", mock.Anything, 20, 0).Return([]domain.Job{*openJob(0)}, nil)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("ListPendingForCleaner", mock.Anything, int64(3)).Return([]domain.Offer{}, nil)

	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListForCleaner", mock.Anything, int64(42), int64(3)).Return([]domain.RoomAssignment{}, nil)

	mockUsers := new(MockUserRepository)
	mockUsers.On("HasEmployees", mock.Anything, int64(3)).Return(true, nil)

	service := newTestService(mockJobs, mockOffers, mockAssignments, mockUsers, new(MockNotificationSender))

	flags := view.ViewerFlags{ShowActions: true, IsBusinessOwner: true}
	cards, err := service.ListOpenCards(context.Background(), 3, flags, 20, 0)

	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, view.ActionsBookTeam, cards[0].Card.Actions)
	mockUsers.AssertExpectations(t)
}

func TestService_ListOpenCards_EarningsPreviewWithoutOffer(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("ListOpen", mock.Anything, 20, 0).Return([]domain.Job{*openJob(0)}, nil)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("ListPendingForCleaner", mock.Anything, int64(11)).Return([]domain.Offer{}, nil)

	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListForCleaner", mock.Anything, int64(42), int64(11)).Return([]domain.RoomAssignment{}, nil)

	service := newTestService(mockJobs, mockOffers, mockAssignments, new(MockUserRepository), new(MockNotificationSender))

	cards, err := service.ListOpenCards(context.Background(), 11, view.ViewerFlags{ShowActions: true}, 20, 0)

	assert.NoError(t, err)
	assert.Len(t, cards, 1)
	// $300 job split two ways, 13% fee: $130.50 take-home per cleaner.
	assert.Equal(t, "$130.50", cards[0].Card.Earnings)
	assert.Equal(t, view.ActionsViewDetails, cards[0].Card.Actions)
}

func TestService_ListOpenCards_PendingOfferWinsEarnings(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("ListOpen", mock.Anything, 20, 0).Return([]domain.Job{*openJob(0)}, nil)

	expires := testNow.Add(48 * time.Hour)
	mockOffers := new(MockOfferRepository)
	mockOffers.On("ListPendingForCleaner", mock.Anything, int64(11)).Return([]domain.Offer{{
		ID:              501,
		JobID:           42,
		CleanerID:       11,
		Status:          domain.OfferPending,
		ExpiresAt:       expires,
		EarningsOffered: domain.Cents(12000),
	}}, nil)

	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListForCleaner", mock.Anything, int64(42), int64(11)).Return([]domain.RoomAssignment{}, nil)

	service := newTestService(mockJobs, mockOffers, mockAssignments, new(MockUserRepository), new(MockNotificationSender))

	cards, err := service.ListOpenCards(context.Background(), 11, view.ViewerFlags{ShowActions: true}, 20, 0)

	assert.NoError(t, err)
	assert.Equal(t, "$120.00", cards[0].Card.Earnings)
	assert.Equal(t, view.ActionsOffer, cards[0].Card.Actions)
}

func TestService_BookWithTeam_Success(t *testing.T) {
	owner := &domain.User{ID: 3, Role: domain.RoleBusinessOwner}
	employerID := int64(3)
	employees := []domain.User{
		{ID: 21, Role: domain.RoleCleaner, EmployerID: &employerID},
		{ID: 22, Role: domain.RoleCleaner, EmployerID: &employerID},
	}

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(3)).Return(owner, nil)
	mockUsers.On("ListEmployees", mock.Anything, int64(3)).Return(employees, nil)

	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(0), nil)
	filled := openJob(2)
	filled.Status = domain.JobFilled
	mockJobs.On("ConfirmSlots", mock.Anything, int64(42), 2).Return(filled, nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyJobFilled", mock.Anything, int64(7), int64(42)).Return(nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), mockUsers, mockNotifs)

	j, err := service.BookWithTeam(context.Background(), 42, 3, []int64{21, 22})

	assert.NoError(t, err)
	assert.Equal(t, domain.JobFilled, j.Status)
	mockNotifs.AssertExpectations(t)
}

func TestService_BookWithTeam_NotBusinessOwner(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(11)).Return(&domain.User{ID: 11, Role: domain.RoleCleaner}, nil)

	service := newTestService(new(MockJobRepository), new(MockOfferRepository), new(MockAssignmentRepository), mockUsers, new(MockNotificationSender))

	_, err := service.BookWithTeam(context.Background(), 42, 11, []int64{21, 22})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_BookWithTeam_ForeignEmployee(t *testing.T) {
	owner := &domain.User{ID: 3, Role: domain.RoleBusinessOwner}
	employerID := int64(3)
	employees := []domain.User{{ID: 21, Role: domain.RoleCleaner, EmployerID: &employerID}}

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(3)).Return(owner, nil)
	mockUsers.On("ListEmployees", mock.Anything, int64(3)).Return(employees, nil)

	service := newTestService(new(MockJobRepository), new(MockOfferRepository), new(MockAssignmentRepository), mockUsers, new(MockNotificationSender))

	_, err := service.BookWithTeam(context.Background(), 42, 3, []int64{21, 88})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_BookWithTeam_OneSlotLeft(t *testing.T) {
	owner := &domain.User{ID: 3, Role: domain.RoleBusinessOwner}
	employerID := int64(3)
	employees := []domain.User{
		{ID: 21, Role: domain.RoleCleaner, EmployerID: &employerID},
		{ID: 22, Role: domain.RoleCleaner, EmployerID: &employerID},
	}

	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(3)).Return(owner, nil)
	mockUsers.On("ListEmployees", mock.Anything, int64(3)).Return(employees, nil)

	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(1), nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), mockUsers, new(MockNotificationSender))

	_, err := service.BookWithTeam(context.Background(), 42, 3, []int64{21, 22})
	assert.ErrorIs(t, err, ErrNotEnoughSlots)
}

func TestService_Dropout_CreatesSoloOffer(t *testing.T) {
	inProgress := openJob(2)
	inProgress.Status = domain.JobInProgress

	after := openJob(1)
	after.Status = domain.JobInProgress

	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(inProgress, nil)
	mockJobs.On("ReleaseSlot", mock.Anything, int64(42)).Return(after, nil)

	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListByJob", mock.Anything, int64(42)).Return([]domain.RoomAssignment{
		{ID: 1, JobID: 42, CleanerID: 11, DisplayLabel: "Master Bedroom"},
		{ID: 2, JobID: 42, CleanerID: 12, DisplayLabel: "Kitchen"},
	}, nil)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("CreateSolo", mock.Anything, mock.MatchedBy(func(o *domain.SoloOffer) bool {
		// the remaining cleaner keeps their $130.50 share, full solo pay is $261.00
		return o.CleanerID == 11 &&
			o.OriginalShare == domain.Cents(13050) &&
			o.SoloEarnings == domain.Cents(26100) &&
			o.ExpiresAt.Equal(testNow.Add(12*time.Hour))
	})).Return(nil)

	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyDropout", mock.Anything, int64(7), int64(42), 1).Return(nil)
	mockNotifs.On("NotifySoloOffer", mock.Anything, int64(11), int64(701), int64(42)).Return(nil)

	service := newTestService(mockJobs, mockOffers, mockAssignments, new(MockUserRepository), mockNotifs)

	j, err := service.Dropout(context.Background(), 42, 12)

	assert.NoError(t, err)
	assert.Equal(t, 1, j.CleanersConfirmed)
	mockOffers.AssertExpectations(t)
	mockNotifs.AssertExpectations(t)
}

func TestService_Dropout_NoSoloOfferBeforeStart(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(2), nil)
	mockJobs.On("ReleaseSlot", mock.Anything, int64(42)).Return(openJob(1), nil)

	mockOffers := new(MockOfferRepository)
	mockNotifs := new(MockNotificationSender)
	mockNotifs.On("NotifyDropout", mock.Anything, int64(7), int64(42), 1).Return(nil)

	service := newTestService(mockJobs, mockOffers, new(MockAssignmentRepository), new(MockUserRepository), mockNotifs)

	_, err := service.Dropout(context.Background(), 42, 12)

	assert.NoError(t, err)
	mockOffers.AssertNotCalled(t, "CreateSolo", mock.Anything, mock.Anything)
}

func TestService_DropoutChoice_Cancel(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(1), nil)
	mockJobs.On("UpdateStatus", mock.Anything, int64(42), domain.JobCancelled).Return(nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.DropoutChoice(context.Background(), 42, 7, "cancel")

	assert.NoError(t, err)
	mockJobs.AssertExpectations(t)
}

func TestService_DropoutChoice_UnknownOption(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(1), nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.DropoutChoice(context.Background(), 42, 7, "shrug")
	assert.ErrorIs(t, err, ErrInvalidDropoutOption)
}

func TestService_DropoutChoice_WrongHomeowner(t *testing.T) {
	mockJobs := new(MockJobRepository)
	mockJobs.On("GetByID", mock.Anything, int64(42)).Return(openJob(1), nil)

	service := newTestService(mockJobs, new(MockOfferRepository), new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.DropoutChoice(context.Background(), 42, 99, "proceed")
	assert.ErrorIs(t, err, ErrForbidden)
}

func pendingSoloOffer() *domain.SoloOffer {
	return &domain.SoloOffer{
		ID:            701,
		JobID:         42,
		CleanerID:     11,
		Status:        domain.OfferPending,
		ExpiresAt:     testNow.Add(6 * time.Hour),
		OriginalShare: 13050,
		SoloEarnings:  26100,
	}
}

func TestService_AcceptSoloOffer_ReassignsAllRooms(t *testing.T) {
	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetSoloByID", mock.Anything, int64(701)).Return(pendingSoloOffer(), nil)
	resolved := pendingSoloOffer()
	resolved.Status = domain.OfferAccepted
	mockOffers.On("ResolveSolo", mock.Anything, int64(701), domain.OfferAccepted, testNow).Return(resolved, nil)

	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ReassignAllTo", mock.Anything, int64(42), int64(11)).Return(nil)

	mockJobs := new(MockJobRepository)
	mockJobs.On("UpdateStatus", mock.Anything, int64(42), domain.JobInProgress).Return(nil)

	service := newTestService(mockJobs, mockOffers, mockAssignments, new(MockUserRepository), new(MockNotificationSender))

	o, err := service.AcceptSoloOffer(context.Background(), 701, 11)

	assert.NoError(t, err)
	assert.Equal(t, domain.OfferAccepted, o.Status)
	mockAssignments.AssertExpectations(t)
	mockJobs.AssertExpectations(t)
}

func TestService_AcceptSoloOffer_Expired(t *testing.T) {
	stale := pendingSoloOffer()
	stale.ExpiresAt = testNow.Add(-time.Hour)

	mockOffers := new(MockOfferRepository)
	mockOffers.On("GetSoloByID", mock.Anything, int64(701)).Return(stale, nil)
	expired := pendingSoloOffer()
	expired.Status = domain.OfferExpired
	mockOffers.On("ResolveSolo", mock.Anything, int64(701), domain.OfferExpired, testNow).Return(expired, nil)

	service := newTestService(new(MockJobRepository), mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	_, err := service.AcceptSoloOffer(context.Background(), 701, 11)
	assert.ErrorIs(t, err, ErrOfferExpired)
}

func TestService_ExpireOffers(t *testing.T) {
	mockOffers := new(MockOfferRepository)
	mockOffers.On("ExpirePending", mock.Anything, testNow).Return(int64(3), nil)

	service := newTestService(new(MockJobRepository), mockOffers, new(MockAssignmentRepository), new(MockUserRepository), new(MockNotificationSender))

	n, err := service.ExpireOffers(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
