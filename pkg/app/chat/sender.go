package chat

import (
	"context"

	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=MessageSender --dir=. --output=./mocks --filename=message_sender_mock.go --case=underscore --with-expecter
type MessageSender interface {
	// Send answers a new user message in the context of its stored conversation and persists both turns.
	Send(ctx context.Context, req Request) *Response
}

type messageSender struct {
	logger       *logrus.Logger
	messages     conversation.Repository
	orchestrator Orchestrator
	historyLimit int
	riskWindow   int
}

// NewMessageSender loads historyLimit messages for the provider prompt and, separately,
// the last riskWindow user messages for escalation.
func NewMessageSender(
	logger *logrus.Logger,
	messages conversation.Repository,
	orchestrator Orchestrator,
	historyLimit int,
	riskWindow int,
) MessageSender {
	return &messageSender{
		logger:       logger,
		messages:     messages,
		orchestrator: orchestrator,
		historyLimit: historyLimit,
		riskWindow:   riskWindow,
	}
}

func (s *messageSender) Send(ctx context.Context, req Request) *Response {
	log := s.logger.WithFields(logrus.Fields{
		"conversation_id": req.ConversationID,
		"user_id":         req.UserID,
	})

	if req.History == nil {
		history, err := s.messages.History(ctx, req.ConversationID, s.historyLimit)
		if err != nil {
			log.WithError(err).Warn("failed to load conversation history")
		}
		req.History = history
	}
	if req.RecentUserMessages == nil && s.riskWindow > 0 {
		recent, err := s.messages.RecentUserMessages(ctx, req.ConversationID, s.riskWindow)
		if err != nil {
			log.WithError(err).Warn("failed to load recent user messages")
		}
		req.RecentUserMessages = recent
	}

	resp := s.orchestrator.Respond(ctx, req)

	// persisting is best-effort; the user always gets the reply
	err := s.messages.Save(
		context.WithoutCancel(ctx),
		conversation.NewUserMessage(req.ConversationID, req.UserID, req.Message, resp.RiskLevel),
		conversation.NewAssistantMessage(req.ConversationID, req.UserID, resp.Content),
	)
	if err != nil {
		log.WithError(err).Error("failed to save conversation messages")
	}
	return resp
}
