package middleware

import (
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type adminAuthMiddleware struct {
	logger *logrus.Logger
}

// NewAdminAuthMiddleware must run after the auth middleware.
func NewAdminAuthMiddleware(logger *logrus.Logger) Middleware {
	return &adminAuthMiddleware{logger: logger}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals(string(common.UserRoleContextKey)).(string) //nolint:errcheck
		if role != user.RoleAdmin {
			m.logger.WithField("user_id", UserID(ctx)).Debug("admin route rejected")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin role required"})
		}
		return ctx.Next()
	}
}
