package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/movienight/internal/cache"
	"github.com/immxrtalbeast/movienight/lib/logger/sl"
)

const healthPingTimeout = 2 * time.Second

// CacheStatus is the part of the catalog cache the health check reports on.
type CacheStatus interface {
	Ping(ctx context.Context) error
	Stats() cache.Stats
}

type HealthController struct {
	cache CacheStatus
	log   *slog.Logger
}

// NewHealthController builds the health endpoint. status may be nil when the
// server runs without Redis.
func NewHealthController(status CacheStatus, log *slog.Logger) *HealthController {
	return &HealthController{cache: status, log: log}
}

// Health always answers 200: the cache is optional and an unreachable Redis
// only turns catalog caching off.
func (c *HealthController) Health(ctx *gin.Context) {
	resp := gin.H{"status": "ok"}
	if c.cache == nil {
		resp["cache"] = gin.H{"enabled": false}
		ctx.JSON(http.StatusOK, resp)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthPingTimeout)
	defer cancel()
	err := c.cache.Ping(pingCtx)
	if err != nil {
		c.log.Warn("cache ping failed", sl.Err(err))
	}
	resp["cache"] = gin.H{
		"enabled":   true,
		"reachable": err == nil,
		"stats":     c.cache.Stats(),
	}
	ctx.JSON(http.StatusOK, resp)
}
