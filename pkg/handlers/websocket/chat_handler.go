package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/app/chat"
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	infraWebsocket "github.com/NeuralTrust/SafeChat/pkg/infra/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
)

type chatHandler struct {
	cfg    config.WebSocketConfig
	logger *logrus.Logger
	sender chat.MessageSender
}

// NewChatHandler runs every text frame of a socket through the chat pipeline, one at a time,
// and answers with the JSON response.
func NewChatHandler(cfg config.WebSocketConfig, logger *logrus.Logger, sender chat.MessageSender) Handler {
	return &chatHandler{
		cfg:    cfg,
		logger: logger,
		sender: sender,
	}
}

type connection struct {
	conn         *websocket.Conn
	writeMu      sync.Mutex
	writeTimeout time.Duration
}

func (c *connection) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return c.conn.WriteMessage(messageType, data)
}

func (c *connection) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, data)
}

func (h *chatHandler) Handle(c *websocket.Conn) {
	if semaphore, ok := c.Locals(string(common.SemaphoreContextKey)).(*infraWebsocket.Semaphore); ok {
		defer semaphore.Release()
	}

	conversationID := c.Params(common.ConversationIDParam)
	userID, _ := c.Locals(string(common.UserIDContextKey)).(string) //nolint:errcheck
	device, _ := c.Locals(string(common.DeviceContextKey)).(string) //nolint:errcheck
	log := h.logger.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"user_id":         userID,
	})

	conn := &connection{conn: c, writeTimeout: h.cfg.WriteTimeout}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.SetReadDeadline(time.Now().Add(h.cfg.PongWait)); err != nil {
		log.WithError(err).Error("failed to set read deadline")
		return
	}
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})
	go h.ping(ctx, conn, log)

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("websocket closed unexpectedly")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if err := conn.writeJSON(h.answer(ctx, conversationID, userID, device, data)); err != nil {
			log.WithError(err).Debug("failed to write websocket response")
			return
		}
	}
}

func (h *chatHandler) answer(ctx context.Context, conversationID, userID, device string, data []byte) interface{} {
	msg, err := infraWebsocket.ParseInbound(data)
	if err != nil {
		return infraWebsocket.ErrorMessage{Error: err.Error()}
	}
	return h.sender.Send(ctx, chat.Request{
		ConversationID: conversationID,
		UserID:         userID,
		Message:        msg.Message,
		Device:         device,
	})
}

func (h *chatHandler) ping(ctx context.Context, conn *connection, log *logrus.Entry) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.write(websocket.PingMessage, nil); err != nil {
				log.WithError(err).Debug("failed to send ping")
				return
			}
		}
	}
}
