package dependency_container

import (
	"context"
	"fmt"
	"net"
	"reflect"
	"time"

	appAlert "github.com/NeuralTrust/BotTracker/pkg/app/alert"
	appApiKey "github.com/NeuralTrust/BotTracker/pkg/app/apikey"
	appAuth "github.com/NeuralTrust/BotTracker/pkg/app/auth"
	"github.com/NeuralTrust/BotTracker/pkg/app/ingest"
	appPolicy "github.com/NeuralTrust/BotTracker/pkg/app/policy"
	"github.com/NeuralTrust/BotTracker/pkg/app/stats"
	"github.com/NeuralTrust/BotTracker/pkg/app/verification"
	"github.com/NeuralTrust/BotTracker/pkg/app/worker"
	"github.com/NeuralTrust/BotTracker/pkg/common"
	"github.com/NeuralTrust/BotTracker/pkg/config"
	"github.com/NeuralTrust/BotTracker/pkg/detection"
	"github.com/NeuralTrust/BotTracker/pkg/domain/alert"
	"github.com/NeuralTrust/BotTracker/pkg/domain/user"
	handlers "github.com/NeuralTrust/BotTracker/pkg/handlers/http"
	wsHandlers "github.com/NeuralTrust/BotTracker/pkg/handlers/websocket"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auditlogs"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/BotTracker/pkg/infra/auth/password"
	"github.com/NeuralTrust/BotTracker/pkg/infra/behavior"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/channel"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/event"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/BotTracker/pkg/infra/database"
	"github.com/NeuralTrust/BotTracker/pkg/infra/geo"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/NeuralTrust/BotTracker/pkg/infra/notifier"
	"github.com/NeuralTrust/BotTracker/pkg/infra/repository"
	"github.com/NeuralTrust/BotTracker/pkg/infra/telemetry"
	"github.com/NeuralTrust/BotTracker/pkg/infra/telemetry/kafka"
	infraWebsocket "github.com/NeuralTrust/BotTracker/pkg/infra/websocket"
	"github.com/NeuralTrust/BotTracker/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const (
	geoBreakerName        = "geo"
	geoBreakerTimeout     = 30 * time.Second
	geoBreakerMaxFailures = 5
	userAgentHeader       = "BotTracker/1.0"
)

type Container struct {
	Cache               cache.Client
	RedisListener       cache.EventListener
	CachePublisher      cache.EventPublisher
	TrafficPublisher    cache.EventPublisher
	HandlerTransport    *handlers.HandlerTransport
	WSHandlerTransport  wsHandlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
	UserRepository      user.Repository
	AuthService         appAuth.Service
	Ingestor            ingest.Ingestor
	WorkerPool          worker.Pool
	Exporters           []telemetry.Exporter
	Hub                 *infraWebsocket.Hub
	MemoryAnalyzer      *behavior.MemoryAnalyzer
	AuditLogsService    auditlogs.Service
	JWTManager          jwt.Manager
}

type ContainerDI struct {
	Cfg                   *config.Config
	Logger                *logrus.Logger
	DB                    *database.DB
	EventsRegistry        map[string]reflect.Type
	InitializeMemoryCache func(cacheInstance cache.Client)
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger

	cacheInstance, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %v", err)
	}
	if di.InitializeMemoryCache != nil {
		di.InitializeMemoryCache(cacheInstance)
	}

	registry := di.EventsRegistry
	if registry == nil {
		registry = event.Registry
	}
	cachePublisher := cache.NewRedisEventPublisher(cacheInstance.RedisClient(), channel.CacheEvents)
	trafficPublisher := cache.NewRedisEventPublisher(cacheInstance.RedisClient(), channel.TrafficEvents)
	redisListener := cache.NewRedisEventListener(logger, cacheInstance.RedisClient(), registry)

	// repositories
	userRepository := repository.NewUserRepository(di.DB.DB)
	domainRepository := repository.NewDomainRepository(di.DB.DB)
	apiKeyRepository := repository.NewApiKeyRepository(di.DB.DB)
	trafficRepository := repository.NewTrafficLogRepository(di.DB.DB)
	policyRepository := repository.NewBotPolicyRepository(di.DB.DB)
	alertRepository := repository.NewAlertRuleRepository(di.DB.DB)
	blogRepository := repository.NewBlogPostRepository(di.DB.DB)

	// live feed
	hub := infraWebsocket.NewHub(logger, infraWebsocket.DefaultSubscriberBuffer)
	semaphore := infraWebsocket.NewSemaphore(cfg.WebSocket.MaxConnections)

	cache.RegisterEventSubscriber[event.DeleteApiKeyCacheEvent](
		redisListener, subscriber.NewDeleteApiKeyCacheEventSubscriber(logger, cacheInstance),
	)
	cache.RegisterEventSubscriber[event.DeleteBotPoliciesCacheEvent](
		redisListener, subscriber.NewDeleteBotPoliciesCacheEventSubscriber(logger, cacheInstance),
	)
	cache.RegisterEventSubscriber[event.TrafficLoggedEvent](
		redisListener, subscriber.NewTrafficLoggedEventSubscriber(hub),
	)

	// outbound
	httpClient := httpx.NewClient(httpx.WithUserAgent(userAgentHeader))
	geoBreaker := httpx.NewCircuitBreaker(geoBreakerName, geoBreakerTimeout, geoBreakerMaxFailures, logger)

	var locator geo.Locator
	if cfg.Geo.Enabled {
		geoCache := cacheInstance.GetTTLMap(cache.GeoTTLName)
		if geoCache == nil {
			geoCache = cacheInstance.CreateTTLMap(cache.GeoTTLName, cfg.Geo.CacheTTL)
		}
		locator = geo.NewLocator(logger, httpClient, geoBreaker, geoCache, cfg.Geo.BaseURL, cfg.Geo.Timeout)
	}

	var (
		analyzer       behavior.Analyzer
		memoryAnalyzer *behavior.MemoryAnalyzer
	)
	switch cfg.Behavior.Store {
	case "redis":
		analyzer = behavior.NewRedisAnalyzer(cacheInstance.RedisClient(), behavior.WithWindow(cfg.Behavior.Window))
	default:
		memoryAnalyzer = behavior.NewMemoryAnalyzer(logger, behavior.WithWindow(cfg.Behavior.Window))
		analyzer = memoryAnalyzer
	}

	exporters, err := telemetry.NewExporters(logger, exporterConfigs(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize exporters: %w", err)
	}

	notifiers := notifier.Registry{
		alert.TypeLog: notifier.NewLogNotifier(logger),
		alert.TypeWebhook: notifier.NewWebhookNotifier(
			logger, httpClient, cfg.Notifications.Webhook.Timeout, cfg.Notifications.Webhook.MaxFailures,
		),
		alert.TypeEmail: notifier.NewEmailNotifier(logger, notifier.SMTPConfig{
			Host:     cfg.Notifications.SMTP.Host,
			Port:     cfg.Notifications.SMTP.Port,
			Username: cfg.Notifications.SMTP.Username,
			Password: cfg.Notifications.SMTP.Password,
			From:     cfg.Notifications.SMTP.From,
		}),
	}

	// services
	jwtManager := jwt.NewJwtManager(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	hasher := password.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.MinPasswordLen)
	authService := appAuth.NewService(logger, userRepository, hasher, jwtManager, appAuth.Config{
		AllowSignUps: cfg.Auth.AllowSignUps,
		AdminEmails:  cfg.Auth.AdminEmails,
	})
	statsService := stats.NewService(userRepository, domainRepository, apiKeyRepository, trafficRepository)
	verifier := verification.NewVerifier(logger, net.DefaultResolver, httpClient, cfg.Verification.Timeout)
	verificationService := verification.NewService(domainRepository, verifier)
	keyFinder := appApiKey.NewFinder(apiKeyRepository, cacheInstance, logger)
	gate := appPolicy.NewGate(logger, policyRepository, cacheInstance)
	checker := appAlert.NewChecker(logger, trafficRepository, alertRepository, notifiers, cfg.Alerts.Window)
	classifier := detection.NewClassifier(detection.DefaultSignatureTable())

	pool := worker.NewPool(logger, cfg.Alerts.QueueSize, worker.DefaultTaskTimeout)

	ingestor := ingest.NewIngestor(
		logger,
		keyFinder,
		domainRepository,
		trafficRepository,
		classifier,
		gate,
		analyzer,
		locator,
		trafficPublisher,
		exporters,
		checker,
		pool,
		ingest.Config{AlertMinConfidence: cfg.Alerts.MinConfidence},
	)

	auditService := auditlogs.NewService(auditlogs.NewLogSink(logger), logger, true)

	middlewareTransport := &middleware.Transport{
		RecoverMiddleware:   middleware.NewPanicRecoverMiddleware(logger),
		SecurityMiddleware:  middleware.NewSecurityMiddleware(middleware.DefaultSecurityConfig()),
		AuthMiddleware:      middleware.NewAuthMiddleware(logger, jwtManager),
		AdminMiddleware:     middleware.NewAdminAuthMiddleware(logger),
		WebsocketMiddleware: middleware.NewWebsocketMiddleware(logger, semaphore),
	}

	handlerTransport := &handlers.HandlerTransport{
		// Ops
		HealthHandler:     handlers.NewHealthHandler(),
		SignaturesHandler: handlers.NewSignaturesHandler(classifier),
		// Auth
		RegisterHandler: handlers.NewRegisterHandler(logger, authService, auditService),
		LoginHandler:    handlers.NewLoginHandler(logger, authService),
		MeHandler:       handlers.NewMeHandler(logger, userRepository),
		// Domain
		CreateDomainHandler: handlers.NewCreateDomainHandler(logger, domainRepository, auditService),
		ListDomainsHandler:  handlers.NewListDomainsHandler(logger, domainRepository),
		VerifyDomainHandler: handlers.NewVerifyDomainHandler(logger, verificationService, auditService),
		DeleteDomainHandler: handlers.NewDeleteDomainHandler(logger, domainRepository, auditService),
		// APIKey
		CreateAPIKeyHandler: handlers.NewCreateAPIKeyHandler(logger, apiKeyRepository, auditService),
		ListAPIKeysHandler:  handlers.NewListAPIKeysHandler(logger, apiKeyRepository),
		DeleteAPIKeyHandler: handlers.NewDeleteAPIKeyHandler(logger, apiKeyRepository, cachePublisher, auditService),
		// Traffic
		LogTrafficHandler:    handlers.NewLogTrafficHandler(logger, ingestor),
		ListTrafficHandler:   handlers.NewListTrafficHandler(logger, trafficRepository),
		TrafficStatsHandler:  handlers.NewTrafficStatsHandler(logger, statsService),
		ExportTrafficHandler: handlers.NewExportTrafficHandler(logger, trafficRepository),
		// Alert
		CreateAlertHandler: handlers.NewCreateAlertHandler(logger, alertRepository, auditService),
		ListAlertsHandler:  handlers.NewListAlertsHandler(logger, alertRepository),
		DeleteAlertHandler: handlers.NewDeleteAlertHandler(logger, alertRepository, auditService),
		// Bot policy
		ListPoliciesHandler:       handlers.NewListPoliciesHandler(logger, policyRepository),
		UpsertPolicyHandler:       handlers.NewUpsertPolicyHandler(logger, policyRepository, cachePublisher, auditService),
		DeletePolicyHandler:       handlers.NewDeletePolicyHandler(logger, policyRepository, cachePublisher, auditService),
		UpsertGlobalPolicyHandler: handlers.NewUpsertGlobalPolicyHandler(logger, policyRepository, cachePublisher, auditService),
		DeleteGlobalPolicyHandler: handlers.NewDeleteGlobalPolicyHandler(logger, policyRepository, cachePublisher, auditService),
		// Admin
		AdminListUsersHandler:    handlers.NewAdminListUsersHandler(logger, userRepository),
		AdminStatsHandler:        handlers.NewAdminStatsHandler(logger, statsService),
		AdminListDomainsHandler:  handlers.NewAdminListDomainsHandler(logger, domainRepository),
		AdminUserActivityHandler: handlers.NewAdminUserActivityHandler(logger, statsService),
		// Blog
		ListBlogsHandler:  handlers.NewListBlogsHandler(logger, blogRepository),
		GetBlogHandler:    handlers.NewGetBlogHandler(logger, blogRepository),
		CreateBlogHandler: handlers.NewCreateBlogHandler(logger, blogRepository, auditService),
		UpdateBlogHandler: handlers.NewUpdateBlogHandler(logger, blogRepository, auditService),
		DeleteBlogHandler: handlers.NewDeleteBlogHandler(logger, blogRepository, auditService),
	}

	wsHandlerTransport := &wsHandlers.HandlerTransportDTO{
		LiveTrafficHandler: wsHandlers.NewLiveTrafficHandler(logger, hub),
	}

	return &Container{
		Cache:               cacheInstance,
		RedisListener:       redisListener,
		CachePublisher:      cachePublisher,
		TrafficPublisher:    trafficPublisher,
		HandlerTransport:    handlerTransport,
		WSHandlerTransport:  wsHandlerTransport,
		MiddlewareTransport: middlewareTransport,
		UserRepository:      userRepository,
		AuthService:         authService,
		Ingestor:            ingestor,
		WorkerPool:          pool,
		Exporters:           exporters,
		Hub:                 hub,
		MemoryAnalyzer:      memoryAnalyzer,
		AuditLogsService:    auditService,
		JWTManager:          jwtManager,
	}, nil
}

// Start launches the background machinery: alert workers, the behavior
// janitor and the redis event listener. All of it stops when ctx is done.
func (c *Container) Start(ctx context.Context, cfg *config.Config) {
	c.WorkerPool.StartWorkers(cfg.Alerts.Workers)
	if c.MemoryAnalyzer != nil {
		c.MemoryAnalyzer.Start(ctx, cfg.Behavior.JanitorInterval)
	}
	go c.RedisListener.Listen(ctx, channel.CacheEvents, channel.TrafficEvents)
}

// Close drains the worker pool and flushes the exporters.
func (c *Container) Close() {
	c.WorkerPool.Shutdown()
	for _, exp := range c.Exporters {
		exp.Close()
	}
}

// InitializeMemoryCache creates the in-process TTL maps in front of redis.
func InitializeMemoryCache(cacheInstance cache.Client) {
	_ = cacheInstance.CreateTTLMap(cache.ApiKeyTTLName, common.ApiKeyCacheTTL)
	_ = cacheInstance.CreateTTLMap(cache.BotPolicyTTLName, common.BotPolicyCacheTTL)
	_ = cacheInstance.CreateTTLMap(cache.GeoTTLName, common.GeoCacheTTL)
}

func exporterConfigs(cfg *config.Config) []telemetry.ExporterConfig {
	configs := []telemetry.ExporterConfig{{Name: telemetry.LogExporterName}}
	if cfg.Kafka.Enabled {
		configs = append(configs, telemetry.ExporterConfig{
			Name: kafka.ExporterName,
			Settings: map[string]interface{}{
				"host":  cfg.Kafka.Host,
				"port":  cfg.Kafka.Port,
				"topic": cfg.Kafka.Topic,
			},
		})
	}
	return configs
}
