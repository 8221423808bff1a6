package messages

import (
	"context"

	"tidyteam/internal/domain"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversationByParticipants(ctx context.Context, kind domain.ConversationKind, userA, userB int64, jobID *int64) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID int64) error
}

type AssignmentRepository interface {
	ListByJob(ctx context.Context, jobID int64) ([]domain.RoomAssignment, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
