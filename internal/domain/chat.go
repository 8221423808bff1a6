package domain

import "time"

type ConversationKind string

const (
	// Cleaner to cleaner on the same team
	ConversationCoworker ConversationKind = "coworker"
	// Business owner to one of their employees
	ConversationEmployee ConversationKind = "employee"
)

// Conversation is a two-party thread. ParticipantA always holds the
// smaller user ID so find-or-create lookups hit a single row.
type Conversation struct {
	ID           int64            `json:"id"`
	Kind         ConversationKind `json:"kind"`
	ParticipantA int64            `json:"participant_a"`
	ParticipantB int64            `json:"participant_b"`

	// Optional link to the job the coworkers share
	JobID *int64 `json:"job_id,omitempty"`

	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
