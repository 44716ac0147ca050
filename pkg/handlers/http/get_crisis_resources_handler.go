package http

import (
	"github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getCrisisResourcesHandler struct {
	logger  *logrus.Logger
	catalog crisis.ResourceCatalog
}

func NewGetCrisisResourcesHandler(logger *logrus.Logger, catalog crisis.ResourceCatalog) Handler {
	return &getCrisisResourcesHandler{
		logger:  logger,
		catalog: catalog,
	}
}

// Handle @Summary List crisis resources
// @Description Localized crisis lines. Falls back to Accept-Language, then to the global English list.
// @Tags Crisis
// @Produce json
// @Param language query string false "ISO 639 language"
// @Param region query string false "ISO 3166 region"
// @Success 200 {array} crisis.Resource
// @Router /api/v1/crisis-resources [get]
func (h *getCrisisResourcesHandler) Handle(c *fiber.Ctx) error {
	language, region := c.Query("language"), c.Query("region")
	if language == "" {
		language, region = localeOrDefault(utils.PrimaryLocale(c.Get(fiber.HeaderAcceptLanguage)), region)
	}

	resources, err := h.catalog.Find(c.UserContext(), language, region)
	if err != nil || len(resources) == 0 {
		if err != nil {
			h.logger.WithError(err).Warn("crisis resource lookup failed, serving defaults")
		}
		resources = crisis.DefaultResources()
	}
	return c.Status(fiber.StatusOK).JSON(resources)
}

func localeOrDefault(locale, region string) (string, string) {
	language, localeRegion := utils.SplitLocale(locale)
	if region == "" {
		region = localeRegion
	}
	return language, region
}
