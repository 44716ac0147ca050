package user

import "github.com/NeuralTrust/SafeChat/pkg/domain/crisis"

// Context is the best-effort per-user information available while answering a message.
type Context struct {
	UserID            string  `json:"user_id"`
	Profile           Profile `json:"profile,omitempty"`
	Language          string  `json:"language"`
	Region            string  `json:"region"`
	PreferredProvider string  `json:"preferred_provider,omitempty"`
	Device            string  `json:"device,omitempty"`
}

func DefaultContext(userID string) *Context {
	return &Context{
		UserID:   userID,
		Language: crisis.DefaultLanguage,
		Region:   crisis.GlobalRegion,
	}
}
