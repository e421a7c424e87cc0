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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cookbookapp "github.com/Aixtrade/Tally/internal/application/cookbook"
	dataapp "github.com/Aixtrade/Tally/internal/application/data"
	jobapp "github.com/Aixtrade/Tally/internal/application/job"
	"github.com/Aixtrade/Tally/internal/config"
	"github.com/Aixtrade/Tally/internal/domain/cookbook"
	grpcinfra "github.com/Aixtrade/Tally/internal/infrastructure/grpc"
	"github.com/Aixtrade/Tally/internal/infrastructure/observability/logging"
	asynqqueue "github.com/Aixtrade/Tally/internal/infrastructure/queue/asynq"
	"github.com/Aixtrade/Tally/internal/infrastructure/store/memory"
	"github.com/Aixtrade/Tally/internal/infrastructure/store/redisstore"
	grpcapi "github.com/Aixtrade/Tally/internal/interfaces/grpc"
	httpserver "github.com/Aixtrade/Tally/internal/interfaces/http"
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

	logger.Info("starting tally api",
		zap.String("env", cfg.App.Env),
		zap.String("host", cfg.Server.HTTP.Host),
		zap.Int("port", cfg.Server.HTTP.Port),
		zap.Bool("grpc", cfg.Server.GRPC.Enabled),
		zap.Bool("jobs", cfg.Jobs.Enabled),
		zap.String("cookbook_store", cfg.Cookbook.Store),
	)

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
	}

	var repo cookbook.Repository
	if cfg.Cookbook.Store == "redis" {
		repo = redisstore.NewCookbookRepository(redisClient, cfg.Cookbook.KeyPrefix)
	} else {
		repo = memory.NewCookbookRepository()
	}

	dataService := dataapp.NewService(logger)
	cookbookService := cookbookapp.NewService(repo, logger)

	routerCfg := httpserver.RouterConfig{
		Config:          cfg,
		Logger:          logger,
		DataService:     dataService,
		CookbookService: cookbookService,
		RedisClient:     redisClient,
	}

	if cfg.Jobs.Enabled {
		asynqClient, err := asynqqueue.NewClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("failed to create asynq client", zap.Error(err))
		}
		defer asynqClient.Close()

		streamOpts := progress.StreamOptions{
			MaxLen:      cfg.Progress.MaxLen,
			TTL:         cfg.Progress.TTL,
			ReadTimeout: cfg.Progress.ReadTimeout,
		}
		publisher := progress.NewPublisher(redisClient, logger, streamOpts)

		queues := make([]string, 0, 4)
		for name := range cfg.Queues.ToMap() {
			queues = append(queues, name)
		}

		routerCfg.JobService = jobapp.NewService(asynqClient, publisher, logger, jobapp.Options{
			Queues:    queues,
			Retention: cfg.Jobs.Retention,
		})
		routerCfg.Progress = progress.NewSubscriber(redisClient, logger, streamOpts)
	}

	engine := httpserver.NewRouter(routerCfg).Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting http server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	var grpcServer *grpcinfra.Server
	if cfg.Server.GRPC.Enabled {
		grpcServer = grpcinfra.NewServer(grpcinfra.ServerConfig{
			Host:   cfg.Server.GRPC.Host,
			Port:   cfg.Server.GRPC.Port,
			Logger: logger,
		})
		grpcServer.Register(&grpcapi.AggregatorServiceDesc, grpcapi.NewAggregatorService(dataService))

		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("failed to start grpc server", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Shutdown()
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
