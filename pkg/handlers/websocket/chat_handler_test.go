package websocket

import (
	"context"
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/app/chat"
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	infraWebsocket "github.com/NeuralTrust/SafeChat/pkg/infra/websocket"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	gorilla "github.com/gorilla/websocket"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, req chat.Request) *chat.Response {
	return m.Called(ctx, req).Get(0).(*chat.Response) //nolint:errcheck
}

func startServer(t *testing.T, sender chat.MessageSender, semaphore *infraWebsocket.Semaphore) string {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	cfg := config.WebSocketConfig{WriteTimeout: time.Second, PongWait: 5 * time.Second, PingPeriod: 4 * time.Second}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", func(c *fiber.Ctx) error {
		c.Locals(string(common.UserIDContextKey), "user-1")
		return c.Next()
	})
	app.Use("/ws", middleware.NewWebsocketMiddleware(logger, semaphore).Middleware())
	app.Get("/ws/conversations/:conversation_id", websocket.New(NewChatHandler(cfg, logger, sender).Handle))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return (&url.URL{Scheme: "ws", Host: ln.Addr().String(), Path: "/ws/conversations/conv-1"}).String()
}

func TestChatHandler_AnswersFrames(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(req chat.Request) bool {
		return req.ConversationID == "conv-1" && req.UserID == "user-1" && req.Message == "hello"
	})).Return(&chat.Response{Content: "Hi, I'm here.", Provider: "openai", RiskLevel: risk.None})

	addr := startServer(t, sender, infraWebsocket.NewSemaphore(4))
	conn, _, err := gorilla.DefaultDialer.Dial(addr, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"message":"hello"}`)))
	var resp map[string]interface{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "Hi, I'm here.", resp["content"])
	assert.Equal(t, "NONE", resp["risk_level"])

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte(`{"message":"  "}`)))
	var errResp infraWebsocket.ErrorMessage
	require.NoError(t, conn.ReadJSON(&errResp))
	assert.Equal(t, infraWebsocket.ErrEmptyMessage.Error(), errResp.Error)
}

func TestChatHandler_RejectsOverCapacity(t *testing.T) {
	semaphore := infraWebsocket.NewSemaphore(1)
	require.True(t, semaphore.Acquire())
	addr := startServer(t, new(mockSender), semaphore)

	_, resp, err := gorilla.DefaultDialer.Dial(addr, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestChatHandler_ReleasesSlotOnClose(t *testing.T) {
	semaphore := infraWebsocket.NewSemaphore(1)
	addr := startServer(t, new(mockSender), semaphore)

	conn, _, err := gorilla.DefaultDialer.Dial(addr, nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return semaphore.InUse() == 0 }, 2*time.Second, 20*time.Millisecond)
}
