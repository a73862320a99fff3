package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/api"
	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/flow"
	"github.com/inkwellhq/inkwell/health"
	"github.com/inkwellhq/inkwell/logger"
	"github.com/inkwellhq/inkwell/persistence"
	"github.com/inkwellhq/inkwell/queue"
	"github.com/inkwellhq/inkwell/token"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting Inkwell API",
		zap.Int("port", cfg.Port),
		zap.String("db_type", cfg.DBType),
	)

	// Storage
	repo, err := persistence.NewStorage(cfg.DBType, cfg.DSN, nil)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.Error(err))
	}
	if !cfg.SkipAutoMigrate {
		if err := repo.AutoMigrate(); err != nil {
			logger.Log.Fatal("failed to migrate schema", zap.Error(err))
		}
	}

	// Broker
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	dispatcher := queue.NewRedisQueue(rdb, cfg.QueueStream, logger.Log)

	// Flows
	tokens := token.NewService([]byte(cfg.SecretKey), cfg.TokenTTL())
	hasher := flow.NewBcryptHasher(12)
	registration := flow.NewRegistration(repo, hasher, tokens, dispatcher, logger.Log)
	login := flow.NewLogin(repo, hasher, tokens, logger.Log)

	// Handler
	h := api.NewHandler(registration, login, repo, tokens, logger.Log)

	// Setup Echo
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	h.RegisterRoutes(e)

	// Health
	checks := health.NewManager(5 * time.Second)
	checks.Register("database", func(ctx context.Context) error {
		sqlDB, err := repo.DB().DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	checks.Register("broker", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	e.GET("/healthz", checks.LiveHandler())
	e.GET("/ready", checks.ReadyHandler())

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
