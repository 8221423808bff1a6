package messages

import (
	"context"
	"testing"

	"tidyteam/internal/domain"
	"tidyteam/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	if conv != nil {
		conv.ID = 801
	}
	return args.Error(0)
}

func (m *MockChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) GetConversationByParticipants(ctx context.Context, kind domain.ConversationKind, userA, userB int64, jobID *int64) (*domain.Conversation, error) {
	args := m.Called(ctx, kind, userA, userB, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if msg != nil {
		msg.ID = 901
	}
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.RoomAssignment, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomAssignment), args.Error(1)
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

func teamAssignments() []domain.RoomAssignment {
	return []domain.RoomAssignment{
		{ID: 1, JobID: 42, CleanerID: 11, DisplayLabel: "Master Bedroom"},
		{ID: 2, JobID: 42, CleanerID: 12, DisplayLabel: "Kitchen"},
	}
}

func TestService_CoworkerConversation_CreatesOnce(t *testing.T) {
	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListByJob", mock.Anything, int64(42)).Return(teamAssignments(), nil)

	jobID := int64(42)
	mockChats := new(MockChatRepository)
	mockChats.On("GetConversationByParticipants", mock.Anything, domain.ConversationCoworker, int64(11), int64(12), &jobID).
		Return(nil, repository.ErrConversationNotFound)
	mockChats.On("CreateConversation", mock.Anything, mock.MatchedBy(func(c *domain.Conversation) bool {
		return c.Kind == domain.ConversationCoworker && c.JobID != nil && *c.JobID == 42
	})).Return(nil)

	service := NewService(mockChats, mockAssignments, new(MockUserRepository), nil)

	conv, err := service.CoworkerConversation(context.Background(), 11, 12, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(801), conv.ID)
	mockChats.AssertExpectations(t)
}

func TestService_CoworkerConversation_ReusesExisting(t *testing.T) {
	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListByJob", mock.Anything, int64(42)).Return(teamAssignments(), nil)

	jobID := int64(42)
	existing := &domain.Conversation{ID: 777, Kind: domain.ConversationCoworker, ParticipantA: 11, ParticipantB: 12, JobID: &jobID}
	mockChats := new(MockChatRepository)
	mockChats.On("GetConversationByParticipants", mock.Anything, domain.ConversationCoworker, int64(11), int64(12), &jobID).
		Return(existing, nil)

	service := NewService(mockChats, mockAssignments, new(MockUserRepository), nil)

	conv, err := service.CoworkerConversation(context.Background(), 11, 12, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(777), conv.ID)
	mockChats.AssertNotCalled(t, "CreateConversation", mock.Anything, mock.Anything)
}

func TestService_CoworkerConversation_StrangerRefused(t *testing.T) {
	mockAssignments := new(MockAssignmentRepository)
	mockAssignments.On("ListByJob", mock.Anything, int64(42)).Return(teamAssignments(), nil)

	service := NewService(new(MockChatRepository), mockAssignments, new(MockUserRepository), nil)

	_, err := service.CoworkerConversation(context.Background(), 11, 99, 42)
	assert.ErrorIs(t, err, ErrNotCoworkers)
}

func TestService_EmployeeConversation_WrongEmployer(t *testing.T) {
	otherEmployer := int64(55)
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(21)).Return(&domain.User{ID: 21, Role: domain.RoleCleaner, EmployerID: &otherEmployer}, nil)

	service := NewService(new(MockChatRepository), new(MockAssignmentRepository), mockUsers, nil)

	_, err := service.EmployeeConversation(context.Background(), 3, 21)
	assert.ErrorIs(t, err, ErrNotEmployee)
}

func TestService_EmployeeConversation_Success(t *testing.T) {
	employerID := int64(3)
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByID", mock.Anything, int64(21)).Return(&domain.User{ID: 21, Role: domain.RoleCleaner, EmployerID: &employerID}, nil)

	mockChats := new(MockChatRepository)
	mockChats.On("GetConversationByParticipants", mock.Anything, domain.ConversationEmployee, int64(3), int64(21), (*int64)(nil)).
		Return(nil, repository.ErrConversationNotFound)
	mockChats.On("CreateConversation", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockChats, new(MockAssignmentRepository), mockUsers, nil)

	conv, err := service.EmployeeConversation(context.Background(), 3, 21)

	assert.NoError(t, err)
	assert.Equal(t, domain.ConversationEmployee, conv.Kind)
}

func TestService_SendMessage_NotParticipant(t *testing.T) {
	mockChats := new(MockChatRepository)
	mockChats.On("GetConversationByID", mock.Anything, int64(801)).
		Return(&domain.Conversation{ID: 801, ParticipantA: 11, ParticipantB: 12}, nil)

	service := NewService(mockChats, new(MockAssignmentRepository), new(MockUserRepository), nil)

	_, err := service.SendMessage(context.Background(), 801, 99, "hello")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestService_SendMessage_EmptyContent(t *testing.T) {
	service := NewService(new(MockChatRepository), new(MockAssignmentRepository), new(MockUserRepository), nil)

	_, err := service.SendMessage(context.Background(), 801, 11, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_SendMessage_Persists(t *testing.T) {
	mockChats := new(MockChatRepository)
	mockChats.On("GetConversationByID", mock.Anything, int64(801)).
		Return(&domain.Conversation{ID: 801, ParticipantA: 11, ParticipantB: 12}, nil)
	mockChats.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.ConversationID == 801 && m.SenderID == 11 && m.Content == "Running 10 minutes late"
	})).Return(nil)

	service := NewService(mockChats, new(MockAssignmentRepository), new(MockUserRepository), nil)

	msg, err := service.SendMessage(context.Background(), 801, 11, "Running 10 minutes late")

	assert.NoError(t, err)
	assert.Equal(t, int64(901), msg.ID)
	mockChats.AssertExpectations(t)
}

func TestService_SelfChatRefused(t *testing.T) {
	service := NewService(new(MockChatRepository), new(MockAssignmentRepository), new(MockUserRepository), nil)

	_, err := service.CoworkerConversation(context.Background(), 11, 11, 42)
	assert.ErrorIs(t, err, ErrSelfChat)

	_, err = service.EmployeeConversation(context.Background(), 3, 3)
	assert.ErrorIs(t, err, ErrSelfChat)
}
