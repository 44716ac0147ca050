package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/SafeChat/pkg/app/classifier"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/domain/conversation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMessages struct {
	mock.Mock
}

func (m *mockMessages) RecentUserMessages(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	msgs, _ := args.Get(0).([]conversation.Message) //nolint:errcheck
	return msgs, args.Error(1)
}

func (m *mockMessages) History(ctx context.Context, conversationID string, limit int) ([]conversation.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	msgs, _ := args.Get(0).([]conversation.Message) //nolint:errcheck
	return msgs, args.Error(1)
}

func (m *mockMessages) Save(ctx context.Context, messages ...*conversation.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

type mockOrchestrator struct {
	mock.Mock
}

func (m *mockOrchestrator) Respond(ctx context.Context, req Request) *Response {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*Response) //nolint:errcheck
	return resp
}

func TestSend_LoadsHistoryAndPersistsBothTurns(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	messages := new(mockMessages)
	orchestrator := new(mockOrchestrator)
	history := []conversation.Message{{ConversationID: "conv-1", Content: "I feel sad", IsFromUser: true}}

	recent := []conversation.Message{{ConversationID: "conv-1", Content: "I feel sad", IsFromUser: true, RiskLevel: risk.Low}}

	messages.On("History", mock.Anything, "conv-1", 20).Return(history, nil)
	messages.On("RecentUserMessages", mock.Anything, "conv-1", 5).Return(recent, nil)
	orchestrator.On("Respond", mock.Anything, mock.MatchedBy(func(req Request) bool {
		return len(req.History) == 1 && len(req.RecentUserMessages) == 1 && req.Message == "I feel hopeless"
	})).Return(&Response{Content: "I'm here with you.", RiskLevel: risk.Medium})
	messages.On("Save", mock.Anything, mock.MatchedBy(func(saved []*conversation.Message) bool {
		return len(saved) == 2 &&
			saved[0].IsFromUser && saved[0].RiskLevel == risk.Medium && saved[0].Content == "I feel hopeless" &&
			!saved[1].IsFromUser && saved[1].Content == "I'm here with you."
	})).Return(nil)

	resp := NewMessageSender(logger, messages, orchestrator, 20, 5).Send(context.Background(), Request{
		ConversationID: "conv-1",
		UserID:         "user-1",
		Message:        "I feel hopeless",
	})

	assert.Equal(t, "I'm here with you.", resp.Content)
	messages.AssertExpectations(t)
	orchestrator.AssertExpectations(t)
}

func TestSend_StorageFailuresDoNotHideTheReply(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	messages := new(mockMessages)
	orchestrator := new(mockOrchestrator)

	messages.On("History", mock.Anything, "conv-1", 20).Return(nil, errors.New("db down"))
	messages.On("RecentUserMessages", mock.Anything, "conv-1", 5).Return(nil, errors.New("db down"))
	orchestrator.On("Respond", mock.Anything, mock.Anything).Return(&Response{Content: "hello"})
	messages.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down"))

	resp := NewMessageSender(logger, messages, orchestrator, 20, 5).Send(context.Background(), Request{
		ConversationID: "conv-1",
		UserID:         "user-1",
		Message:        "hi",
	})

	assert.Equal(t, "hello", resp.Content)
}

// classifyingOrchestrator answers with the risk level the real classifier assigns, so tests
// can see which window reached it.
type classifyingOrchestrator struct {
	classifier classifier.Classifier
}

func (o *classifyingOrchestrator) Respond(_ context.Context, req Request) *Response {
	window := req.RecentUserMessages
	if window == nil {
		window = req.History
	}
	return &Response{Content: "ok", RiskLevel: o.classifier.Classify(req.Message, window)}
}

func TestSend_EscalationUsesUserWindowNotPromptHistory(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	messages := new(mockMessages)
	safety := config.DefaultSafety()
	orchestrator := &classifyingOrchestrator{classifier: classifier.NewClassifier(safety)}

	// a short prompt page with alternating turns holds only three user messages
	page := []conversation.Message{
		{IsFromUser: true, RiskLevel: risk.Low}, {Content: "reply"},
		{IsFromUser: true, RiskLevel: risk.None}, {Content: "reply"},
		{IsFromUser: true, RiskLevel: risk.None}, {Content: "reply"},
	}
	userTurns := []conversation.Message{
		{IsFromUser: true, RiskLevel: risk.Medium},
		{IsFromUser: true, RiskLevel: risk.Medium},
		{IsFromUser: true, RiskLevel: risk.Low},
		{IsFromUser: true, RiskLevel: risk.None},
		{IsFromUser: true, RiskLevel: risk.None},
	}
	messages.On("History", mock.Anything, "conv-2", 6).Return(page, nil)
	messages.On("RecentUserMessages", mock.Anything, "conv-2", safety.HistoryWindow).Return(userTurns, nil)
	messages.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp := NewMessageSender(logger, messages, orchestrator, 6, safety.HistoryWindow).Send(context.Background(), Request{
		ConversationID: "conv-2",
		UserID:         "user-1",
		Message:        "how are you",
	})

	assert.Equal(t, risk.High, resp.RiskLevel)
	messages.AssertExpectations(t)
}
