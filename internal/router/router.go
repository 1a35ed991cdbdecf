package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/adapters/kafka"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/adapters/storage"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/config"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/handler"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/middleware"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/realtime"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/repository"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the external connections the router wires together
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Kafka  *kafka.MessagePublisher // optional
	Media  *storage.MediaStore    // optional
	Config *config.Config
	Logger *slog.Logger
}

// App owns the gin engine, the realtime hub and the background
// presence relay
type App struct {
	engine   *gin.Engine
	hub      *realtime.Hub
	presence repository.PresenceRepository
	cancel   context.CancelFunc
}

func NewApp(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	channelRepo := repository.NewChannelRepository(deps.DB)
	messageRepo := repository.NewMessageRepository(deps.DB)
	reactionRepo := repository.NewReactionRepository(deps.DB)
	friendRepo := repository.NewFriendRepository(deps.DB)
	presenceRepo := repository.NewPresenceRepository(deps.Redis)

	// Services
	authService := service.NewAuthService(userRepo, deps.Config.JWT.Secret, deps.Config.JWT.ExpirationTime)
	userService := service.NewUserService(userRepo, presenceRepo)
	channelService := service.NewChannelService(channelRepo, messageRepo)
	chatService := service.NewChatService(userRepo, channelRepo, messageRepo, reactionRepo)
	friendService := service.NewFriendService(friendRepo, presenceRepo)

	// Realtime hub
	hub := realtime.NewHub(logger)
	eventRouter := realtime.NewEventRouter(hub, logger)
	sessions := realtime.NewSessionManager(hub, eventRouter, chatService, logger).
		WithPresence(presenceRepo)
	if deps.Kafka != nil {
		sessions.WithEventPublisher(deps.Kafka)
	}
	resolver := realtime.NewJWTResolver(deps.Config.JWT.Secret)

	// Presence transitions announced by other server instances reach
	// local clients through the Redis subscription; our own are filtered
	// out by origin at the repository.
	relayCtx, relayCancel := context.WithCancel(context.Background())
	if updates, err := presenceRepo.SubscribeStatusUpdates(relayCtx); err != nil {
		logger.Error("failed to subscribe to presence updates", "error", err)
	} else {
		go eventRouter.RelayPresence(updates)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	channelHandler := handler.NewChannelHandler(channelService)
	friendHandler := handler.NewFriendHandler(friendService)
	wsHandler := handler.NewWSHandler(sessions, resolver)

	rateLimiter := middleware.NewRateLimiter(deps.Redis)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogAPI())

	api := engine.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "UP"})
		})

		// Public routes, IP rate-limited
		public := api.Group("")
		public.Use(rateLimiter.PerIP(30, time.Minute))
		authHandler.RegisterRoutes(public)

		// The WebSocket endpoint authenticates in-band via the auth
		// frame; the resolver picks up the session token when present
		wsHandler.RegisterRoutes(api)

		// Authenticated routes
		protected := api.Group("")
		protected.Use(middleware.Auth(deps.Config.JWT.Secret))
		protected.Use(rateLimiter.PerUser(120, time.Minute))
		userHandler.RegisterRoutes(protected)
		channelHandler.RegisterRoutes(protected)
		friendHandler.RegisterRoutes(protected)
		if deps.Media != nil {
			handler.NewMediaHandler(deps.Media).RegisterRoutes(protected)
		}
	}

	return &App{engine: engine, hub: hub, presence: presenceRepo, cancel: relayCancel}
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) Hub() *realtime.Hub {
	return a.hub
}

// Close stops the presence relay and its Redis subscription
func (a *App) Close() error {
	a.cancel()
	return a.presence.Close()
}
