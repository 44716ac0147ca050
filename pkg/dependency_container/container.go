package dependency_container

import (
	"context"
	"fmt"
	"sort"

	"github.com/NeuralTrust/SafeChat/pkg/app/chat"
	"github.com/NeuralTrust/SafeChat/pkg/app/classifier"
	"github.com/NeuralTrust/SafeChat/pkg/app/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/app/guardrail"
	"github.com/NeuralTrust/SafeChat/pkg/app/notification"
	"github.com/NeuralTrust/SafeChat/pkg/app/resources"
	"github.com/NeuralTrust/SafeChat/pkg/app/routing"
	"github.com/NeuralTrust/SafeChat/pkg/app/toggle"
	appUser "github.com/NeuralTrust/SafeChat/pkg/app/user"
	"github.com/NeuralTrust/SafeChat/pkg/common"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	handlers "github.com/NeuralTrust/SafeChat/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/SafeChat/pkg/handlers/websocket"
	"github.com/NeuralTrust/SafeChat/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/event"
	"github.com/NeuralTrust/SafeChat/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/SafeChat/pkg/infra/database"
	"github.com/NeuralTrust/SafeChat/pkg/infra/httpx"
	"github.com/NeuralTrust/SafeChat/pkg/infra/mailer"
	_ "github.com/NeuralTrust/SafeChat/pkg/infra/migrations" // registers schema migrations
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/factory"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers/local"
	"github.com/NeuralTrust/SafeChat/pkg/infra/repository"
	"github.com/NeuralTrust/SafeChat/pkg/infra/scoring"
	"github.com/NeuralTrust/SafeChat/pkg/infra/telemetry/kafka"
	infraWebsocket "github.com/NeuralTrust/SafeChat/pkg/infra/websocket"
	"github.com/NeuralTrust/SafeChat/pkg/infra/workerpool"
	"github.com/NeuralTrust/SafeChat/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const crisisPoolName = "crisis-recorder"

type Container struct {
	Cache               cache.Client
	RedisListener       cache.EventListener
	RedisPublisher      cache.EventPublisher
	JWTManager          jwt.Manager
	Recorder            crisis.Recorder
	MiddlewareTransport *middleware.Transport
	HandlerTransport    handlers.HandlerTransport
	WSHandlerTransport  wsHandlers.HandlerTransport

	exporter *kafka.Exporter
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *database.DB
}

func NewContainer(ctx context.Context, di ContainerDI) (*Container, error) {
	cfg, logger := di.Cfg, di.Logger

	cacheInstance, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	initializeMemoryCache(cacheInstance)

	redisPublisher := cache.NewRedisEventPublisher(cacheInstance)
	redisListener := cache.NewRedisEventListener(logger, cacheInstance, event.Registry)
	cache.RegisterEventSubscriber[event.ToggleUpdatedEvent](
		redisListener, subscriber.NewToggleUpdatedEventSubscriber(logger, cacheInstance))
	cache.RegisterEventSubscriber[event.ResourcesUpdatedEvent](
		redisListener, subscriber.NewResourcesUpdatedEventSubscriber(logger, cacheInstance))
	cache.RegisterEventSubscriber[event.UserUpdatedEvent](
		redisListener, subscriber.NewUserUpdatedEventSubscriber(logger, cacheInstance))

	// repositories
	userRepository := repository.NewUserRepository(di.DB.DB)
	messageRepository := repository.NewMessageRepository(di.DB.DB)
	resourceRepository := repository.NewResourceRepository(di.DB.DB)
	toggleRepository := repository.NewToggleRepository(di.DB.DB)
	flagRepository := repository.NewCrisisFlagRepository(di.DB.DB)
	notificationRepository := repository.NewNotificationRepository(di.DB.DB)

	// finders
	userFinder := appUser.NewFinder(userRepository, cacheInstance, logger)
	preferenceFinder := appUser.NewPreferenceFinder(userFinder, cacheInstance, logger)
	resourceCatalog := resources.NewFinder(resourceRepository, cacheInstance, logger)
	toggleChecker := toggle.NewChecker(toggleRepository, cacheInstance, logger)

	// providers
	httpClient := httpx.NewFastHTTPClient(httpx.WithTimeout(cfg.Router.Timeout))
	providerLocator := factory.NewProviderLocator(logger, httpClient, local.NewHTTPClient(cfg.Router.Timeout), cfg.Router)
	backends := providerLocator.Registry(ctx, cfg.Providers)
	if len(backends) == 0 {
		logger.Warn("no AI provider is enabled, every reply will come from the error provider")
	}
	providerRouter := routing.NewRouter(logger, cfg.Router, cfg.Safety.ProviderErrorReply, backends, preferenceFinder)

	// crisis recording
	smtpMailer, err := mailer.NewSMTPMailer(cfg.Notifications.SMTP, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}
	notifier := notification.NewNotifier(
		logger,
		userRepository,
		notificationRepository,
		redisPublisher,
		smtpMailer,
	)
	pool := workerpool.NewPool(logger, crisisPoolName, cfg.Crisis.QueueSize)
	pool.StartWorkers(cfg.Crisis.Workers)

	recorderDeps := crisis.RecorderDeps{
		Logger:   logger,
		Toggles:  toggleChecker,
		Repo:     flagRepository,
		Notifier: notifier,
		Pool:     pool,
	}
	if cfg.Crisis.ScorerAPIKey != "" {
		scorer, err := scoring.NewOpenAIScorer(httpClient, cfg.Crisis.ScorerAPIKey, cfg.Crisis.ScorerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize risk scorer: %w", err)
		}
		recorderDeps.Scorer = scorer
	}
	var exporter *kafka.Exporter
	if cfg.Kafka.Enabled {
		exporter, err = kafka.NewExporter(cfg.Kafka.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize crisis event exporter: %w", err)
		}
		recorderDeps.Exporter = exporter
	}
	recorder := crisis.NewRecorder(cfg.Crisis, recorderDeps)

	orchestrator := chat.NewOrchestrator(cfg, chat.OrchestratorDeps{
		Logger:     logger,
		Resolver:   chat.NewContextResolver(logger, userFinder, preferenceFinder),
		Classifier: classifier.NewClassifier(cfg.Safety),
		Router:     providerRouter,
		Guardrail:  guardrail.NewGuardrail(logger, cfg.Safety),
		Catalog:    resourceCatalog,
		Recorder:   recorder,
	})
	sender := chat.NewMessageSender(
		logger, messageRepository, orchestrator, cfg.Router.HistoryLimit, cfg.Safety.HistoryWindow)

	jwtManager := jwt.NewJwtManager(cfg.Auth)
	middlewareTransport := &middleware.Transport{
		AuthMiddleware:      middleware.NewAuthMiddleware(logger, jwtManager),
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger),
		MetricsMiddleware:   middleware.NewMetricsMiddleware(),
		DeviceMiddleware:    middleware.NewDeviceMiddleware(),
		WebsocketMiddleware: middleware.NewWebsocketMiddleware(
			logger, infraWebsocket.NewSemaphore(cfg.WebSocket.MaxConnections)),
		PanicRecover: middleware.NewPanicRecoverMiddleware(logger),
		CORS:         middleware.NewCORSMiddleware(cfg.Server.AllowOrigins),
	}

	handlerTransport := handlers.HandlerTransport{
		SendMessageHandler:        handlers.NewSendMessageHandler(logger, sender),
		GetCrisisResourcesHandler: handlers.NewGetCrisisResourcesHandler(logger, resourceCatalog),
		UpdatePreferencesHandler: handlers.NewUpdatePreferencesHandler(logger, appUser.NewPreferencesUpdater(
			logger, userRepository, redisPublisher, providerNames(backends))),

		UpdateToggleHandler: handlers.NewUpdateToggleHandler(logger, toggle.NewUpdater(logger, toggleRepository, redisPublisher)),
		CreateResourceHandler: handlers.NewCreateResourceHandler(logger,
			resources.NewCreator(logger, resourceRepository, redisPublisher)),
		ListCrisisFlagsHandler:   handlers.NewListCrisisFlagsHandler(logger, flagRepository),
		ListNotificationsHandler: handlers.NewListNotificationsHandler(logger, notification.NewInbox(notificationRepository)),

		GetVersionHandler: handlers.NewGetVersionHandler(),
	}

	wsHandlerTransport := wsHandlers.HandlerTransport{
		ChatHandler: wsHandlers.NewChatHandler(cfg.WebSocket, logger, sender),
	}

	return &Container{
		Cache:               cacheInstance,
		RedisListener:       redisListener,
		RedisPublisher:      redisPublisher,
		JWTManager:          jwtManager,
		Recorder:            recorder,
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		WSHandlerTransport:  wsHandlerTransport,
		exporter:            exporter,
	}, nil
}

// Close drains pending crisis evaluations before the exporter goes away.
func (c *Container) Close() {
	c.Recorder.Shutdown()
	if c.exporter != nil {
		c.exporter.Close()
	}
}

func initializeMemoryCache(c cache.Client) {
	c.CreateTTLMap(cache.ToggleTTLName, common.ToggleCacheTTL)
	c.CreateTTLMap(cache.ResourceTTLName, common.ResourceCacheTTL)
	c.CreateTTLMap(cache.UserTTLName, common.UserCacheTTL)
}

func providerNames(backends map[string]providers.Backend) []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
