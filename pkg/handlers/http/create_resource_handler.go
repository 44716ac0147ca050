package http

import (
	"errors"

	"github.com/NeuralTrust/SafeChat/pkg/app/resources"
	"github.com/NeuralTrust/SafeChat/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createResourceHandler struct {
	logger  *logrus.Logger
	creator resources.Creator
}

func NewCreateResourceHandler(logger *logrus.Logger, creator resources.Creator) Handler {
	return &createResourceHandler{
		logger:  logger,
		creator: creator,
	}
}

// Handle @Summary Register a crisis resource
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request.CreateResourceRequest true "Resource"
// @Success 201 {object} crisis.Resource
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Router /api/v1/admin/crisis-resources [post]
func (h *createResourceHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resource := req.ToResource()
	if err := h.creator.Create(c.UserContext(), resource); err != nil {
		if errors.Is(err, resources.ErrInvalidResource) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.WithError(err).Error("failed to create crisis resource")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create crisis resource"})
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}
