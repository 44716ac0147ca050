package crisis

import "time"

const EventTypeFlagged = "crisis_flagged"

type Event struct {
	Type           string    `json:"type"`
	FlagID         string    `json:"flag_id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Keyword        string    `json:"keyword"`
	RiskScore      *float64  `json:"risk_score,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func NewFlaggedEvent(flag *Flag) *Event {
	return &Event{
		Type:           EventTypeFlagged,
		FlagID:         flag.ID.String(),
		ConversationID: flag.ConversationID,
		UserID:         flag.UserID,
		Keyword:        flag.Keyword,
		RiskScore:      flag.RiskScore,
		OccurredAt:     flag.CreatedAt,
	}
}
