package asynq

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Aixtrade/Tally/internal/config"
)

type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

type ServerConfig struct {
	Redis       *config.RedisConfig
	Queues      map[string]int
	Concurrency int
	Logger      *zap.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	server := asynq.NewServer(
		RedisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues:      cfg.Queues,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				cfg.Logger.Error("task error",
					zap.String("type", task.Type()),
					zap.Error(err),
				)
			}),
			Logger: newZapLogger(cfg.Logger),
		},
	)

	return &Server{
		server: server,
		mux:    asynq.NewServeMux(),
		logger: cfg.Logger,
	}, nil
}

func (s *Server) HandleFunc(pattern string, handler func(context.Context, *asynq.Task) error) {
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) Use(middlewares ...asynq.MiddlewareFunc) {
	s.mux.Use(middlewares...)
}

func (s *Server) Start() error {
	s.logger.Info("starting asynq server")
	return s.server.Start(s.mux)
}

func (s *Server) Shutdown() {
	s.logger.Info("shutting down asynq server")
	s.server.Shutdown()
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newZapLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{sugar: l.Named("asynq").Sugar()}
}

func (l *zapLogger) Debug(args ...interface{}) {
	l.sugar.Debug(args...)
}

func (l *zapLogger) Info(args ...interface{}) {
	l.sugar.Info(args...)
}

func (l *zapLogger) Warn(args ...interface{}) {
	l.sugar.Warn(args...)
}

func (l *zapLogger) Error(args ...interface{}) {
	l.sugar.Error(args...)
}

func (l *zapLogger) Fatal(args ...interface{}) {
	l.sugar.Fatal(args...)
}
