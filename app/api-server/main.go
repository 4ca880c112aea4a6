package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/compassionai/compassion/config"
	"github.com/compassionai/compassion/internal/api/handlers"
	"github.com/compassionai/compassion/internal/api/middleware"
	"github.com/compassionai/compassion/internal/api/routes"
	"github.com/compassionai/compassion/internal/cache"
	"github.com/compassionai/compassion/internal/logger"
	"github.com/compassionai/compassion/internal/providers/llm"
	pgrepo "github.com/compassionai/compassion/internal/repositories/postgres"
	"github.com/compassionai/compassion/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	applog := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(cfg.PostgresURI); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	applog.Info("PostgreSQL connected")

	// Init Redis (optional: without it analytics queries skip the cache)
	var analyticsCache cache.Cache
	if cfg.RedisAddr != "" {
		if err := config.InitRedis(cfg.RedisAddr); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		analyticsCache = cache.NewRedisCache(config.RedisClient)
		applog.Info("Redis connected")
	}

	provider := llm.NewWorkersAI(llm.WorkersAIConfig{
		BaseURL:  cfg.GatewayBaseURL,
		APIToken: cfg.GatewayToken,
		Model:    cfg.GatewayModel,
	})

	interactions := pgrepo.NewInteractionRepo(config.PostgresDB)
	convos := services.NewConversationService(interactions, analyticsCache, cfg.PromptLocale)
	replayer := services.NewReplayService(interactions)
	analytics := services.NewAnalyticsService(interactions, analyticsCache)
	chat := services.NewChatService(convos, replayer, provider, applog)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(applog))

	routes.RegisterRoutes(r, routes.Deps{
		Chat:         handlers.NewChatHandler(chat),
		Analytics:    handlers.NewAnalyticsHandler(analytics),
		Conversation: handlers.NewConversationHandler(convos),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
