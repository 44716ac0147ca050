package http

import (
	"github.com/NeuralTrust/SafeChat/pkg/app/chat"
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/handlers/http/request"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type sendMessageHandler struct {
	logger *logrus.Logger
	sender chat.MessageSender
}

func NewSendMessageHandler(logger *logrus.Logger, sender chat.MessageSender) Handler {
	return &sendMessageHandler{
		logger: logger,
		sender: sender,
	}
}

// Handle @Summary Send a chat message
// @Description Answers a user message. The response always carries a reply, even when every provider fails.
// @Tags Chat
// @Accept json
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param request body request.SendMessageRequest true "Message"
// @Success 200 {object} chat.Response
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/conversations/{conversation_id}/messages [post]
func (h *sendMessageHandler) Handle(c *fiber.Ctx) error {
	conversationID := c.Params(common.ConversationIDParam)
	if conversationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "conversation_id is required"})
	}

	var req request.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to parse message body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp := h.sender.Send(c.UserContext(), chat.Request{
		ConversationID: conversationID,
		UserID:         middleware.UserID(c),
		Message:        req.Message,
		Device:         middleware.Device(c),
	})
	return c.Status(fiber.StatusOK).JSON(resp)
}
