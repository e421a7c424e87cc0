package grpc

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type ServerConfig struct {
	Host   string
	Port   int
	Logger *zap.Logger
}

// Server wraps a grpc.Server with the standard health service and the
// logging, recovery and request id interceptors.
type Server struct {
	server *grpc.Server
	health *health.Server
	logger *zap.Logger
	addr   string
}

func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			RecoveryUnaryInterceptor(cfg.Logger),
			MetadataUnaryInterceptor(),
			LoggingUnaryInterceptor(cfg.Logger),
		),
		grpc.ChainStreamInterceptor(
			RecoveryStreamInterceptor(cfg.Logger),
			LoggingStreamInterceptor(cfg.Logger),
		),
	)

	s := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)

	return &Server{
		server: s,
		health: hs,
		logger: cfg.Logger,
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Register adds a service and marks it serving.
func (s *Server) Register(desc *grpc.ServiceDesc, impl any) {
	s.server.RegisterService(desc, impl)
	s.health.SetServingStatus(desc.ServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (s *Server) Addr() string {
	return s.addr
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("grpc server listening", zap.String("addr", lis.Addr().String()))
	return s.server.Serve(lis)
}

func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("grpc server stopped")
}
