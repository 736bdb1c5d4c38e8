package bootstrap

import (
	"context"
	"log"
	"net/http"
	"os"

	"ai-renamer-be/internal/config"
	"ai-renamer-be/internal/controller"
	"ai-renamer-be/internal/handler"
	"ai-renamer-be/internal/pkg/logger"
	"ai-renamer-be/internal/repository/memory"
	"ai-renamer-be/internal/repository/unitofwork"
	"ai-renamer-be/internal/service"
	"ai-renamer-be/internal/websocket"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/renamer"
	"ai-renamer-be/pkg/workspace"

	pktNats "ai-renamer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	SettingsController  controller.ISettingsController
	WorkspaceController controller.IWorkspaceController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService // nil without NATS

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger  logger.ILogger
	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	if cfg.Auth.JwtSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	secret := cfg.Security.ApiKeyEncryptionSecret
	if secret == "" {
		sysLogger.Warn("Bootstrap", "API_KEY_ENCRYPTION_SECRET not set, deriving from JWT_SECRET", nil)
		secret = cfg.Auth.JwtSecret
	}
	sealer, err := service.NewSealer(secret)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize key sealer: %v", err)
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// NATS
	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
	} else {
		c.closers = append(c.closers, natsSub.Close)
	}

	// Redis fans websocket messages out across instances.
	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb = redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		sysLogger.Warn("Bootstrap", "Redis unavailable, websocket delivery is local only", map[string]interface{}{"error": err.Error()})
		rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)

	// 3. AI naming client
	baseURL := cfg.Ai.GeminiBaseURL
	if cfg.Ai.Provider == naming.ProviderOllama {
		baseURL = cfg.Ai.OllamaBaseURL
	}
	namer, err := naming.NewNamer(cfg.Ai.Provider, baseURL, &http.Client{Timeout: cfg.Ai.RequestTimeout})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize naming provider: %v", err)
	}
	sysLogger.Info("Bootstrap", "Naming provider ready", map[string]interface{}{"provider": cfg.Ai.Provider, "model": cfg.Ai.DefaultModel})

	mode, err := renamer.ParseRenameMode(cfg.Workspace.RenameMode)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Unknown RENAME_MODE, using auto-increment", map[string]interface{}{"value": cfg.Workspace.RenameMode})
		mode = renamer.ModeAutoIncrement
	}
	if err := os.MkdirAll(cfg.Workspace.Root, 0o755); err != nil {
		sysLogger.Warn("Bootstrap", "Failed to create workspace root", map[string]interface{}{"root": cfg.Workspace.Root, "error": err.Error()})
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.NotificationTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.NotificationTopic, wsHub, wsLogger)

	settingsService := service.NewSettingsService(uowFactory, sealer, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.JwtTTL, sysLogger)
	workspaceService := service.NewWorkspaceService(
		service.WorkspaceOptions{
			Root:        cfg.Workspace.Root,
			AllowWrite:  cfg.Workspace.AllowWrite,
			DefaultMode: mode,
			Namer:       namer,
			Concurrency: cfg.Ai.MaxConcurrency,
			Retry: workspace.RetryPolicy{
				MaxAttempts:    cfg.Ai.RetryMaxAttempts,
				InitialBackoff: cfg.Ai.RetryInitialBackoff,
				MaxBackoff:     8 * cfg.Ai.RetryInitialBackoff,
			},
			DefaultModel: cfg.Ai.DefaultModel,
		},
		memory.NewWorkspaceRepository(cfg.Workspace.IdleTTL),
		uowFactory,
		settingsService,
		publisherService,
		eventPublisher,
		wsHub, // Hub implements NotificationDelivery
		sysLogger,
	)

	// Relay bus events to browsers
	if natsSub != nil {
		c.NotificationService = service.NewNotificationService(natsSub, wsHub, wsLogger)
	}

	// 5. Controllers
	c.NotificationHandler = handler.NewNotificationHandler(wsHub, cfg.Auth.JwtSecret, wsLogger)
	c.WebSocketHub = wsHub
	c.AuthController = controller.NewAuthController(authService, workspaceService, cfg.Auth.JwtSecret)
	c.SettingsController = controller.NewSettingsController(settingsService, cfg.Auth.JwtSecret)
	c.WorkspaceController = controller.NewWorkspaceController(workspaceService, cfg.Auth.JwtSecret)
	return c
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
