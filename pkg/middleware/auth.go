package middleware

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewAuthMiddleware resolves the calling user from a bearer token. Websocket upgrades may pass
// the token in the query string since browsers cannot set headers on them.
func NewAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenString, err := bearerToken(ctx)
		if err != nil {
			m.logger.WithError(err).Debug("missing credentials")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		claims, err := m.jwtManager.DecodeToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			if errors.Is(err, jwt.ErrExpiredToken) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token expired"})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		ctx.Locals(string(common.UserIDContextKey), claims.UserID)
		ctx.Locals(string(common.UserRoleContextKey), claims.Role)
		return ctx.Next()
	}
}

func bearerToken(ctx *fiber.Ctx) (string, error) {
	authHeader := ctx.Get(authorizationHeader)
	if authHeader == "" {
		if token := ctx.Query(common.TokenQueryParam); token != "" {
			return token, nil
		}
		return "", errors.New("Authorization required")
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("Invalid authorization format")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if token == "" {
		return "", errors.New("Empty token provided")
	}
	return token, nil
}

// UserID returns the authenticated user set by the auth middleware.
func UserID(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(string(common.UserIDContextKey)).(string) //nolint:errcheck
	return id
}
