package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	redisClient *redis.Client
	service     string
	startedAt   time.Time
}

// NewHealthHandler builds the probe handler. redisClient may be nil when no
// enabled component needs Redis.
func NewHealthHandler(redisClient *redis.Client, service string) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
		service:     service,
		startedAt:   time.Now(),
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	services := map[string]string{"aggregator": "healthy"}
	status := "healthy"

	if h.redisClient != nil {
		if h.pingRedis(c.Request.Context()) != nil {
			services["redis"] = "unhealthy"
			status = "unhealthy"
		} else {
			services["redis"] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Truncate(time.Second).String(),
		Services:  services,
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	if h.redisClient != nil && h.pingRedis(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "redis unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return h.redisClient.Ping(ctx).Err()
}
