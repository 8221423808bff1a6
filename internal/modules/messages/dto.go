package messages

import (
	"time"

	"tidyteam/internal/domain"
)

type CoworkerConversationRequest struct {
	CoworkerID int64 `json:"coworker_id" binding:"required"`
	JobID      int64 `json:"job_id" binding:"required"`
}

type EmployeeConversationRequest struct {
	EmployeeID int64 `json:"employee_id" binding:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ConversationResponse flattens the thread for the viewer: the other
// party rather than the raw participant pair.
type ConversationResponse struct {
	ID            int64     `json:"id"`
	Kind          string    `json:"kind"`
	OtherUserID   int64     `json:"other_user_id"`
	JobID         *int64    `json:"job_id,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
}

func ToConversationResponse(conv *domain.Conversation, viewerID int64) *ConversationResponse {
	other := conv.ParticipantA
	if other == viewerID {
		other = conv.ParticipantB
	}
	return &ConversationResponse{
		ID:            conv.ID,
		Kind:          string(conv.Kind),
		OtherUserID:   other,
		JobID:         conv.JobID,
		LastMessageAt: conv.LastMessageAt,
	}
}

type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToMessageResponse(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
