package router

import (
	"fmt"

	_ "github.com/NeuralTrust/SafeChat/docs" // registers the swagger document
	handlers "github.com/NeuralTrust/SafeChat/pkg/handlers/http"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

type adminRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewAdminRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &adminRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *adminRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.UpdateToggleHandler == nil || h.CreateResourceHandler == nil ||
		h.ListCrisisFlagsHandler == nil || h.ListNotificationsHandler == nil {
		return fmt.Errorf("admin router: %w", ErrMissingHandler)
	}

	router.Get("/docs/*", swagger.HandlerDefault)
	if h.GetVersionHandler != nil {
		router.Get("/version", h.GetVersionHandler.Handle)
	}

	admin := router.Group("/api/v1/admin",
		r.middlewareTransport.AuthMiddleware.Middleware(),
		r.middlewareTransport.AdminAuthMiddleware.Middleware(),
	)
	{
		admin.Put("/toggles/:name", h.UpdateToggleHandler.Handle)
		admin.Post("/crisis-resources", h.CreateResourceHandler.Handle)
		admin.Get("/crisis-flags", h.ListCrisisFlagsHandler.Handle)
		admin.Get("/notifications", h.ListNotificationsHandler.Handle)
	}
	return nil
}
