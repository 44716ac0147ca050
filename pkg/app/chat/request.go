package chat

import (
	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/domain/moderation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
)

const (
	ProviderFallback = "fallback"

	WarningBlocked  = "The assistant's reply was replaced because it did not meet our safety standards."
	WarningModified = "The assistant's reply was adjusted to keep this conversation safe and supportive."
	WarningFlagged  = "This reply has been flagged for review by our care team."
)

type Request struct {
	ConversationID string
	UserID         string
	Message        string
	// Device is the client device type parsed from the user agent, if known.
	Device string
	// History is the conversation so far, oldest first. Assistant messages are allowed.
	History []conversation.Message
	// RecentUserMessages is the escalation window for risk classification, oldest first.
	// When nil the user turns of History are used.
	RecentUserMessages []conversation.Message
}

type Response struct {
	Content           string            `json:"content"`
	Provider          string            `json:"provider"`
	Model             string            `json:"model"`
	RiskLevel         risk.Level        `json:"risk_level"`
	CrisisFlagged     bool              `json:"crisis_flagged"`
	CrisisResources   []crisis.Resource `json:"crisis_resources,omitempty"`
	ModerationAction  moderation.Action `json:"moderation_action"`
	ModerationWarning string            `json:"moderation_warning,omitempty"`
	// ReviewRequired marks replies a human should look at; it never changes what the user sees.
	ReviewRequired bool `json:"-"`
}

func warningFor(action moderation.Action) string {
	switch action {
	case moderation.Blocked:
		return WarningBlocked
	case moderation.Modified:
		return WarningModified
	case moderation.Flagged:
		return WarningFlagged
	default:
		return ""
	}
}
