package providers

import (
	"context"
	"errors"

	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
)

var (
	ErrEmptyResponse   = errors.New("provider returned an empty response")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingModel    = errors.New("model is required")
	ErrMissingEndpoint = errors.New("endpoint is required")
)

// Request is everything a backend needs to produce one assistant reply.
type Request struct {
	ConversationID string
	UserID         string
	Message        string
	History        []conversation.Message
	Context        user.Context
	SystemPrompt   string
}

//go:generate mockery --name=Backend --dir=. --output=./mocks --filename=backend_mock.go --case=underscore --with-expecter

type Backend interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}
