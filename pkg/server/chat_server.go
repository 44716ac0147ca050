package server

import (
	"errors"
	"fmt"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/NeuralTrust/SafeChat/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type ChatServerDI struct {
	Config              *config.Config
	Logger              *logrus.Logger
	MiddlewareTransport *middleware.Transport
	Routers             []router.ServerRouter
}

// ChatServer serves the chat API, the websocket endpoint and the operator routes on one port.
type ChatServer struct {
	*BaseServer
}

func NewChatServer(di ChatServerDI) *ChatServer {
	s := &ChatServer{BaseServer: NewBaseServer(di.Config, di.Logger)}

	// global middlewares go first, fiber runs handlers in registration order
	mw := di.MiddlewareTransport
	s.Router.Use(
		mw.PanicRecover.Middleware(),
		mw.CORS.Middleware(),
		mw.MetricsMiddleware.Middleware(),
		mw.DeviceMiddleware.Middleware(),
	)
	s.setupHealthCheck()
	s.WithRouters(di.Routers...)
	return s
}

func (s *ChatServer) Run() error {
	s.setupMetricsEndpoint()
	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting chat server")
	return s.Router.Listen(addr)
}

func (s *ChatServer) Shutdown() error {
	return errors.Join(s.Router.Shutdown(), s.shutdownMetrics())
}
