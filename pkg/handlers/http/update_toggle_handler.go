package http

import (
	appToggle "github.com/NeuralTrust/SafeChat/pkg/app/toggle"
	"github.com/NeuralTrust/SafeChat/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type updateToggleHandler struct {
	logger  *logrus.Logger
	updater appToggle.Updater
}

func NewUpdateToggleHandler(logger *logrus.Logger, updater appToggle.Updater) Handler {
	return &updateToggleHandler{
		logger:  logger,
		updater: updater,
	}
}

// Handle @Summary Set a feature toggle
// @Tags Admin
// @Accept json
// @Produce json
// @Param name path string true "Toggle name"
// @Param request body request.UpdateToggleRequest true "Toggle state"
// @Success 200 {object} toggle.FeatureToggle
// @Router /api/v1/admin/toggles/{name} [put]
func (h *updateToggleHandler) Handle(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "toggle name is required"})
	}
	var req request.UpdateToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	t, err := h.updater.Set(c.UserContext(), name, *req.Enabled)
	if err != nil {
		h.logger.WithError(err).WithField("toggle", name).Error("failed to update toggle")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update toggle"})
	}
	return c.Status(fiber.StatusOK).JSON(t)
}
