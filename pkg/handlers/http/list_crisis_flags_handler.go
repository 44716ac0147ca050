package http

import (
	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type listCrisisFlagsHandler struct {
	logger *logrus.Logger
	flags  crisis.FlagFinder
}

func NewListCrisisFlagsHandler(logger *logrus.Logger, flags crisis.FlagFinder) Handler {
	return &listCrisisFlagsHandler{
		logger: logger,
		flags:  flags,
	}
}

// Handle @Summary List recent crisis flags
// @Tags Admin
// @Produce json
// @Param limit query int false "Max items (default 50, max 200)"
// @Success 200 {array} crisis.Flag
// @Router /api/v1/admin/crisis-flags [get]
func (h *listCrisisFlagsHandler) Handle(c *fiber.Ctx) error {
	flags, err := h.flags.ListRecent(c.UserContext(), limitParam(c))
	if err != nil {
		h.logger.WithError(err).Error("failed to list crisis flags")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list crisis flags"})
	}
	return c.Status(fiber.StatusOK).JSON(flags)
}
