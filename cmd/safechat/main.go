package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	"github.com/NeuralTrust/SafeChat/pkg/dependency_container"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/channel"
	"github.com/NeuralTrust/SafeChat/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/SafeChat/pkg/infra/logger"
	"github.com/NeuralTrust/SafeChat/pkg/server"
	"github.com/NeuralTrust/SafeChat/pkg/server/router"
	"github.com/NeuralTrust/SafeChat/pkg/version"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, closeLogger, err := infraLogger.NewLogger(infraLogger.Options{
		File:    os.Getenv("LOG_FILE"),
		Console: true,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLogger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer func() { _ = db.Close() }()

	container, err := dependency_container.NewContainer(ctx, dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		DB:     db,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	go container.RedisListener.Listen(ctx, channel.CacheEventsChannel)

	srv := server.NewChatServer(server.ChatServerDI{
		Config:              cfg,
		Logger:              logger,
		MiddlewareTransport: container.MiddlewareTransport,
		Routers: []router.ServerRouter{
			router.NewChatRouter(cfg.WebSocket, container.MiddlewareTransport,
				container.HandlerTransport, container.WSHandlerTransport),
			router.NewAdminRouter(container.MiddlewareTransport, container.HandlerTransport),
		},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()
	logger.WithField("version", version.Version).Info("safechat started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}
	container.Close()
	logger.Info("server gracefully stopped")
}
