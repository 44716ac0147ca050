package repository

import (
	"context"

	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) conversation.Repository {
	return &messageRepository{db: db}
}

func (r *messageRepository) RecentUserMessages(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	var messages []conversation.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND is_from_user = ?", conversationID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return chronological(messages), nil
}

func (r *messageRepository) History(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	var messages []conversation.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return chronological(messages), nil
}

func (r *messageRepository) Save(ctx context.Context, messages ...*conversation.Message) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(messages).Error
	})
}

// chronological reverses a newest-first page in place.
func chronological(messages []conversation.Message) []conversation.Message {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages
}
