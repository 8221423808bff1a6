package repository

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"

	"gorm.io/gorm"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type conversationModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Kind          string    `gorm:"column:kind;index"`
	ParticipantA  int64     `gorm:"column:participant_a;not null;index"`
	ParticipantB  int64     `gorm:"column:participant_b;not null"`
	JobID         *int64    `gorm:"column:job_id"`
	LastMessageAt time.Time `gorm:"column:last_message_at"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (conversationModel) TableName() string { return "conversations" }

type messageModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ConversationID int64     `gorm:"column:conversation_id;not null;index"`
	SenderID       int64     `gorm:"column:sender_id;not null"`
	Content        string    `gorm:"column:content;not null"`
	IsRead         bool      `gorm:"column:is_read;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainConversation(m conversationModel) *domain.Conversation {
	return &domain.Conversation{
		ID:            m.ID,
		Kind:          domain.ConversationKind(m.Kind),
		ParticipantA:  m.ParticipantA,
		ParticipantB:  m.ParticipantB,
		JobID:         m.JobID,
		LastMessageAt: m.LastMessageAt,
		CreatedAt:     m.CreatedAt,
	}
}

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

// findOrdered normalizes participants so participant_a < participant_b;
// find-or-create then hits a single row.
func findOrdered(userA, userB int64) (int64, int64) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	a, b := findOrdered(conv.ParticipantA, conv.ParticipantB)
	m := conversationModel{
		Kind:          string(conv.Kind),
		ParticipantA:  a,
		ParticipantB:  b,
		JobID:         conv.JobID,
		LastMessageAt: time.Now(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*conv = *toDomainConversation(m)
	return nil
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var m conversationModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) GetConversationByParticipants(ctx context.Context, kind domain.ConversationKind, userA, userB int64, jobID *int64) (*domain.Conversation, error) {
	a, b := findOrdered(userA, userB)

	query := r.db.WithContext(ctx).
		Where("kind = ? AND participant_a = ? AND participant_b = ?", string(kind), a, b)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	} else {
		query = query.Where("job_id IS NULL")
	}

	var m conversationModel
	err := query.First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	var models []conversationModel
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("last_message_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Conversation, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainConversation(m))
	}
	return out, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return tx.Model(&conversationModel{}).
			Where("id = ?", msg.ConversationID).
			Update("last_message_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
	})
	if err != nil {
		return err
	}
	*msg = *toDomainMessage(m)
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	var models []messageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}

func (r *ChatRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	return r.db.WithContext(ctx).Model(&messageModel{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true).Error
}
