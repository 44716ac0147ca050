package http

import (
	"errors"

	appUser "github.com/NeuralTrust/SafeChat/pkg/app/user"
	"github.com/NeuralTrust/SafeChat/pkg/domain"
	"github.com/NeuralTrust/SafeChat/pkg/handlers/http/request"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type updatePreferencesHandler struct {
	logger  *logrus.Logger
	updater appUser.PreferencesUpdater
}

func NewUpdatePreferencesHandler(logger *logrus.Logger, updater appUser.PreferencesUpdater) Handler {
	return &updatePreferencesHandler{
		logger:  logger,
		updater: updater,
	}
}

// Handle @Summary Update my preferences
// @Description Sets the preferred AI provider ("auto" clears the choice) and locale of the caller.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body request.UpdatePreferencesRequest true "Preferences"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/v1/users/me/preferences [put]
func (h *updatePreferencesHandler) Handle(c *fiber.Ctx) error {
	var req request.UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := middleware.UserID(c)
	err := h.updater.Update(c.UserContext(), userID, req.ToPreferences())
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, appUser.ErrUnknownProvider):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case domain.IsNotFoundError(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
	default:
		h.logger.WithError(err).WithField("user_id", userID).Error("failed to update preferences")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update preferences"})
	}
}
