package conversation

import (
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ConversationID string     `json:"conversation_id" gorm:"index"`
	UserID         string     `json:"user_id"`
	Content        string     `json:"content"`
	IsFromUser     bool       `json:"is_from_user"`
	RiskLevel      risk.Level `json:"risk_level" gorm:"type:text"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (m Message) TableName() string {
	return "messages"
}

func NewUserMessage(conversationID, userID, content string, level risk.Level) *Message {
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		UserID:         userID,
		Content:        content,
		IsFromUser:     true,
		RiskLevel:      level,
		CreatedAt:      time.Now(),
	}
}

func NewAssistantMessage(conversationID, userID, content string) *Message {
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		UserID:         userID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
}
