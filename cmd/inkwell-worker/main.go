package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/logger"
	"github.com/inkwellhq/inkwell/mailer"
	"github.com/inkwellhq/inkwell/queue"
	"github.com/inkwellhq/inkwell/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	sender, err := mailer.NewMailer(cfg.SMTP)
	if err != nil {
		logger.Log.Fatal("failed to initialize mailer", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	q := queue.NewRedisQueue(rdb, cfg.QueueStream, logger.Log)

	hostname, _ := os.Hostname()
	name := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.New(q, sender, name, logger.Log)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Fatal("worker stopped", zap.Error(err))
	}

	logger.Log.Info("worker shut down")
}
