package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/internal/config"
	"github.com/Aixtrade/Tally/internal/infrastructure/observability/logging"
	asynqqueue "github.com/Aixtrade/Tally/internal/infrastructure/queue/asynq"
	"github.com/Aixtrade/Tally/internal/worker"
	"github.com/Aixtrade/Tally/internal/worker/handlers/aggregate"
	"github.com/Aixtrade/Tally/pkg/progress"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(&cfg.Logging, cfg.App)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Redis.Addr == "" {
		logger.Fatal("redis.addr is required by the worker")
	}

	logger.Info("starting tally worker",
		zap.String("env", cfg.App.Env),
		zap.Int("concurrency", cfg.Server.Worker.Concurrency),
		zap.Int("chunk_size", cfg.Jobs.ChunkSize),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	publisher := progress.NewPublisher(redisClient, logger, progress.StreamOptions{
		MaxLen:      cfg.Progress.MaxLen,
		TTL:         cfg.Progress.TTL,
		ReadTimeout: cfg.Progress.ReadTimeout,
	})

	registry := worker.NewRegistry(logger)
	registry.Register(aggregate.NewHandler(logger, publisher, cfg.Jobs.ChunkSize))

	logger.Info("registered handlers", zap.Strings("types", registry.Types()))

	server, err := asynqqueue.NewServer(asynqqueue.ServerConfig{
		Redis:       &cfg.Redis,
		Queues:      cfg.Queues.ToMap(),
		Concurrency: cfg.Server.Worker.Concurrency,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	server.Use(
		worker.RecoveryMiddleware(logger),
		worker.LoggingMiddleware(logger),
		worker.MetricsMiddleware(),
	)

	registry.SetupServer(server)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	var metricsSrv *http.Server
	if cfg.Server.Worker.MetricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Worker.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("starting metrics server", zap.String("addr", metricsSrv.Addr))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	server.Shutdown()

	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(ctx)
	}

	logger.Info("server stopped")
}
