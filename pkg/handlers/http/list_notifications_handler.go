package http

import (
	appNotification "github.com/NeuralTrust/SafeChat/pkg/app/notification"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type listNotificationsHandler struct {
	logger *logrus.Logger
	inbox  appNotification.Inbox
}

func NewListNotificationsHandler(logger *logrus.Logger, inbox appNotification.Inbox) Handler {
	return &listNotificationsHandler{
		logger: logger,
		inbox:  inbox,
	}
}

// Handle @Summary List my operator notifications
// @Tags Admin
// @Produce json
// @Param limit query int false "Max items (default 50, max 200)"
// @Success 200 {array} notification.Notification
// @Router /api/v1/admin/notifications [get]
func (h *listNotificationsHandler) Handle(c *fiber.Ctx) error {
	userID, err := uuid.Parse(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user id"})
	}
	items, err := h.inbox.List(c.UserContext(), userID, limitParam(c))
	if err != nil {
		h.logger.WithError(err).Error("failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list notifications"})
	}
	return c.Status(fiber.StatusOK).JSON(items)
}
