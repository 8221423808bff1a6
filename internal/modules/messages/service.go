package messages

import (
	"context"
	"errors"
	"strings"

	"tidyteam/internal/domain"
	"tidyteam/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	chats       ChatRepository
	assignments AssignmentRepository
	users       UserRepository
	hub         *Hub
}

func NewService(chats ChatRepository, assignments AssignmentRepository, users UserRepository, hub *Hub) *Service {
	return &Service{chats: chats, assignments: assignments, users: users, hub: hub}
}

// CoworkerConversation finds or creates the thread between two
// cleaners on the same job. Both must hold a room assignment there;
// anyone else gets refused, not an empty thread.
func (s *Service) CoworkerConversation(ctx context.Context, userID, coworkerID, jobID int64) (*domain.Conversation, error) {
	if userID == coworkerID {
		return nil, ErrSelfChat
	}

	rooms, err := s.assignments.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	onJob := map[int64]bool{}
	for _, r := range rooms {
		onJob[r.CleanerID] = true
	}
	if !onJob[userID] || !onJob[coworkerID] {
		return nil, ErrNotCoworkers
	}

	return s.findOrCreate(ctx, domain.ConversationCoworker, userID, coworkerID, &jobID)
}

// EmployeeConversation finds or creates the thread between a business
// owner and one of their employees.
func (s *Service) EmployeeConversation(ctx context.Context, ownerID, employeeID int64) (*domain.Conversation, error) {
	if ownerID == employeeID {
		return nil, ErrSelfChat
	}

	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, ErrNotEmployee
	}
	if employee.EmployerID == nil || *employee.EmployerID != ownerID {
		return nil, ErrNotEmployee
	}

	return s.findOrCreate(ctx, domain.ConversationEmployee, ownerID, employeeID, nil)
}

func (s *Service) findOrCreate(ctx context.Context, kind domain.ConversationKind, userA, userB int64, jobID *int64) (*domain.Conversation, error) {
	conv, err := s.chats.GetConversationByParticipants(ctx, kind, userA, userB, jobID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, repository.ErrConversationNotFound) {
		return nil, err
	}

	conv = &domain.Conversation{
		Kind:         kind,
		ParticipantA: userA,
		ParticipantB: userB,
		JobID:        jobID,
	}
	if err := s.chats.CreateConversation(ctx, conv); err != nil {
		// Two participants opening the thread at the same moment both
		// pass the lookup; the unique index keeps one row and the
		// loser re-reads it.
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return s.chats.GetConversationByParticipants(ctx, kind, userA, userB, jobID)
		}
		return nil, err
	}
	return conv, nil
}

func (s *Service) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.chats.ListConversations(ctx, userID)
}

func (s *Service) getOwnConversation(ctx context.Context, conversationID, userID int64) (*domain.Conversation, error) {
	conv, err := s.chats.GetConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if conv.ParticipantA != userID && conv.ParticipantB != userID {
		return nil, ErrNotParticipant
	}
	return conv, nil
}

// SendMessage persists the message, then pushes it to the other
// participant's live socket if one exists.
func (s *Service) SendMessage(ctx context.Context, conversationID, senderID int64, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrValidation
	}

	conv, err := s.getOwnConversation(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.hub != nil {
		other := conv.ParticipantA
		if other == senderID {
			other = conv.ParticipantB
		}
		s.hub.Push(other, Event{Type: "message", Payload: ToMessageResponse(msg)})
	}
	return msg, nil
}

func (s *Service) ListMessages(ctx context.Context, conversationID, userID int64, limit, offset int) ([]domain.Message, error) {
	if _, err := s.getOwnConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.chats.ListMessages(ctx, conversationID, limit, offset)
}

func (s *Service) MarkRead(ctx context.Context, conversationID, userID int64) error {
	if _, err := s.getOwnConversation(ctx, conversationID, userID); err != nil {
		return err
	}
	return s.chats.MarkRead(ctx, conversationID, userID)
}
