package middleware

import (
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type deviceMiddleware struct{}

// NewDeviceMiddleware stores the client device type so the router can take it into account.
func NewDeviceMiddleware() Middleware {
	return &deviceMiddleware{}
}

func (m *deviceMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if info := utils.ParseUserAgent(ctx.Get(fiber.HeaderUserAgent), ctx.Get(fiber.HeaderAcceptLanguage)); info != nil {
			ctx.Locals(string(common.DeviceContextKey), info.Device)
		}
		return ctx.Next()
	}
}

func Device(ctx *fiber.Ctx) string {
	device, _ := ctx.Locals(string(common.DeviceContextKey)).(string) //nolint:errcheck
	return device
}
