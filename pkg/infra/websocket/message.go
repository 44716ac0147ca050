package websocket

import (
	"encoding/json"
	"errors"
	"strings"
)

const MaxMessageLength = 8000

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")
)

// InboundMessage is one text frame sent by the client.
type InboundMessage struct {
	Message string `json:"message"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

func ParseInbound(data []byte) (*InboundMessage, error) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Message == "" {
		return nil, ErrEmptyMessage
	}
	if len(msg.Message) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	return &msg, nil
}
