package common

import "time"

const (
	ToggleCacheTTL   = 1 * time.Minute
	ResourceCacheTTL = 10 * time.Minute
	UserCacheTTL     = 5 * time.Minute

	ConversationIDParam = "conversation_id"
	TokenQueryParam     = "token"
)
