package router

import (
	"fmt"

	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	handlers "github.com/NeuralTrust/SafeChat/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/SafeChat/pkg/handlers/websocket"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type chatRouter struct {
	wsConfig            config.WebSocketConfig
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
	wsHandlerTransport  wsHandlers.HandlerTransport
}

func NewChatRouter(
	wsConfig config.WebSocketConfig,
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
	wsHandlerTransport wsHandlers.HandlerTransport,
) ServerRouter {
	return &chatRouter{
		wsConfig:            wsConfig,
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		wsHandlerTransport:  wsHandlerTransport,
	}
}

func (r *chatRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.SendMessageHandler == nil || h.GetCrisisResourcesHandler == nil || h.UpdatePreferencesHandler == nil {
		return fmt.Errorf("chat router: %w", ErrMissingHandler)
	}
	if r.wsHandlerTransport.ChatHandler == nil {
		return fmt.Errorf("chat router: %w", ErrMissingHandler)
	}
	auth := r.middlewareTransport.AuthMiddleware.Middleware()

	v1 := router.Group("/api/v1")
	{
		// crisis resources stay reachable without a session
		v1.Get("/crisis-resources", h.GetCrisisResourcesHandler.Handle)

		conversations := v1.Group("/conversations", auth)
		{
			conversations.Post("/:"+common.ConversationIDParam+"/messages", h.SendMessageHandler.Handle)
		}

		me := v1.Group("/users/me", auth)
		{
			me.Put("/preferences", h.UpdatePreferencesHandler.Handle)
		}
	}

	ws := router.Group("/ws",
		auth,
		r.middlewareTransport.WebsocketMiddleware.Middleware(),
	)
	ws.Get("/conversations/:"+common.ConversationIDParam, websocket.New(
		r.wsHandlerTransport.ChatHandler.Handle,
		websocket.Config{HandshakeTimeout: r.wsConfig.WriteTimeout},
	))
	return nil
}
