package main // Entry point package

import (
	"context" // Context for startup deadlines
	"log"     // Fallback logging before zap is ready
	"time"    // Timeouts

	"github.com/labstack/echo/v4"                      // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"    // Echo built-in middleware
	"go.uber.org/zap"                                  // Structured logging

	"github.com/iliyamo/property-listing-service/internal/cache"      // Redis cache-aside layer
	"github.com/iliyamo/property-listing-service/internal/config"     // Internal config loader
	"github.com/iliyamo/property-listing-service/internal/database"   // MongoDB connection and indexes
	"github.com/iliyamo/property-listing-service/internal/handler"    // HTTP handlers
	"github.com/iliyamo/property-listing-service/internal/middleware" // Auth and rate limiting
	"github.com/iliyamo/property-listing-service/internal/queue"      // RabbitMQ publisher and consumer
	"github.com/iliyamo/property-listing-service/internal/repository" // Mongo repositories
	"github.com/iliyamo/property-listing-service/internal/router"     // Route registration
	"github.com/iliyamo/property-listing-service/internal/service"    // Business logic
)

func main() {
	cfg := config.Load() // Load environment config

	logger, err := newLogger(cfg.Env) // Build zap logger for the environment
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.Open(cfg.MongoURI, cfg.MongoDB) // Connect to MongoDB
	if err != nil {
		logger.Fatal("mongodb connect failed", zap.Error(err))
	}
	if err := database.EnsureIndexes(ctx, db); err != nil { // Unique email, property id and favorite indexes
		logger.Fatal("index creation failed", zap.Error(err))
	}

	rdb := config.NewRedisClient() // May be nil; the cache layer degrades to misses
	if rdb == nil {
		logger.Warn("redis unavailable, caching and rate limiting disabled")
	}
	propertyCache := cache.New(rdb, logger)

	publisher := queue.NewPublisher(cfg.AMQPURL, logger) // Fire-and-forget event publisher
	if cfg.AMQPURL != "" {
		go queue.StartPropertyConsumer(cfg.AMQPURL, logger) // Background audit-log consumer
	}

	users := repository.NewUserRepo(db)
	properties := repository.NewPropertyRepo(db)
	favorites := repository.NewFavoriteRepo(db)

	propertySvc := service.NewPropertyService(properties, users, favorites, propertyCache, publisher, logger)
	favoriteSvc := service.NewFavoriteService(favorites, properties, logger)

	authHandler := handler.NewAuthHandler(cfg, users)
	propertyHandler := handler.NewPropertyHandler(propertySvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Logger())  // Per-request access log
	e.Use(echomw.Recover()) // Recover from handler panics
	e.Use(echomw.CORS())    // Allow cross-origin browser clients
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)                                             // Health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, users)            // /api/auth
	router.RegisterProperties(e, propertyHandler, cfg.JWTSecret, users)  // /api/properties
	router.RegisterFavorites(e, favoriteHandler, cfg.JWTSecret, users)   // /api/favorites

	addr := ":" + cfg.Port                                                // Address string with port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	if err := e.Start(addr); err != nil { // Start HTTP server
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// newLogger returns a production logger unless the service runs in a
// development environment, where human-readable output is more useful.
func newLogger(env string) (*zap.Logger, error) {
	if env == "development" || env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
