package crisis

import (
	"time"

	"github.com/google/uuid"
)

// Flag records that a conversation triggered crisis-level concern for a keyword.
// There is at most one Flag per (ConversationID, Keyword).
type Flag struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Keyword        string    `json:"keyword"`
	RiskScore      *float64  `json:"risk_score,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (f Flag) TableName() string {
	return "crisis_flags"
}

func NewFlag(conversationID, userID, keyword string, score *float64) *Flag {
	return &Flag{
		ID:             uuid.New(),
		ConversationID: conversationID,
		UserID:         userID,
		Keyword:        keyword,
		RiskScore:      score,
		CreatedAt:      time.Now(),
	}
}
