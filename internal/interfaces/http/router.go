package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cookbookapp "github.com/Aixtrade/Tally/internal/application/cookbook"
	dataapp "github.com/Aixtrade/Tally/internal/application/data"
	jobapp "github.com/Aixtrade/Tally/internal/application/job"
	"github.com/Aixtrade/Tally/internal/config"
	"github.com/Aixtrade/Tally/internal/interfaces/http/handler"
	"github.com/Aixtrade/Tally/internal/interfaces/http/middleware"
)

type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	logger          *zap.Logger
	dataService     *dataapp.Service
	cookbookService *cookbookapp.Service
	jobService      *jobapp.Service
	redisClient     *redis.Client
	progress        handler.ProgressReader
}

// RouterConfig wires the services behind the HTTP API. JobService,
// Progress and RedisClient are optional; job routes are only mounted when
// JobService is set.
type RouterConfig struct {
	Config          *config.Config
	Logger          *zap.Logger
	DataService     *dataapp.Service
	CookbookService *cookbookapp.Service
	JobService      *jobapp.Service
	RedisClient     *redis.Client
	Progress        handler.ProgressReader
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:          gin.New(),
		cfg:             cfg.Config,
		logger:          cfg.Logger,
		dataService:     cfg.DataService,
		cookbookService: cfg.CookbookService,
		jobService:      cfg.JobService,
		redisClient:     cfg.RedisClient,
		progress:        cfg.Progress,
	}
}

func (r *Router) Setup() *gin.Engine {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.CORS.AllowOrigins))
	r.engine.Use(middleware.Metrics())
	r.engine.Use(middleware.BodyLimit(r.cfg.Server.HTTP.MaxBodyBytes))

	r.setupHealthRoutes()
	r.setupDataRoutes()
	r.setupCookbookRoutes()
	r.setupJobRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	healthHandler := handler.NewHealthHandler(r.redisClient, r.cfg.App.Name)

	r.engine.GET("/health", healthHandler.Health)
	r.engine.GET("/ready", healthHandler.Ready)
	r.engine.GET("/live", healthHandler.Live)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) setupDataRoutes() {
	dataHandler := handler.NewDataHandler(r.dataService)

	r.engine.POST("/data", dataHandler.Aggregate)
}

func (r *Router) setupCookbookRoutes() {
	if r.cookbookService == nil {
		return
	}
	cookbookHandler := handler.NewCookbookHandler(r.cookbookService)

	r.engine.POST("/parse", cookbookHandler.Parse)
	r.engine.POST("/entry", cookbookHandler.CreateEntry)
	r.engine.GET("/summary", cookbookHandler.Summary)
}

func (r *Router) setupJobRoutes() {
	if r.jobService == nil {
		return
	}
	jobHandler := handler.NewJobHandler(r.jobService)

	v1 := r.engine.Group("/api/v1")
	{
		jobs := v1.Group("/data/jobs")
		{
			jobs.POST("", jobHandler.Create)
			jobs.GET("/:id", jobHandler.Get)
			jobs.DELETE("/:id", jobHandler.Delete)
			jobs.POST("/:id/cancel", jobHandler.Cancel)
		}

		queues := v1.Group("/queues")
		{
			queues.GET("/stats", jobHandler.GetQueueStats)
		}

		if r.progress == nil {
			return
		}
		progressHandler := handler.NewProgressHandler(r.progress, r.logger)

		jobs.GET("/:id/progress", progressHandler.GetLatestProgress)
		jobs.GET("/:id/progress/history", progressHandler.GetProgressHistory)
		jobs.GET("/:id/progress/stream", progressHandler.StreamProgress)

		v1.GET("/progress/stream", progressHandler.StreamMultipleProgress)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
