package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"stripboard/internal/pkg/cache"
	"stripboard/internal/pkg/mongodb"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	mongo *mongodb.Client
	redis *cache.RedisCache
}

// NewHealthHandler creates a health handler. Either dependency may be
// nil; readiness only checks what is configured.
func NewHealthHandler(mongo *mongodb.Client, redis *cache.RedisCache) *HealthHandler {
	return &HealthHandler{
		mongo: mongo,
		redis: redis,
	}
}

// Health is the liveness probe.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready is the readiness probe: it pings the configured backing stores.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.mongo != nil {
		if err := h.mongo.Client().Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "mongodb unreachable",
			})
			return
		}
	}
	if h.redis != nil {
		if err := h.redis.Client().Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "redis unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
