package request

import (
	"fmt"
	"strings"
)

const MaxMessageLength = 8000

type SendMessageRequest struct {
	Message string `json:"message"`
}

func (r *SendMessageRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	if r.Message == "" {
		return fmt.Errorf("message is required")
	}
	if len(r.Message) > MaxMessageLength {
		return fmt.Errorf("message must be at most %d bytes", MaxMessageLength)
	}
	return nil
}
