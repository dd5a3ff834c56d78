package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type routerConfig struct {
	logger       *slog.Logger
	metrics      *metrics
	registry     *prometheus.Registry
	maxBodyBytes int64
	rateLimit    float64
	rateBurst    int
}

// setupRouter applies middleware in order (recovery, request id, tracing,
// logging) and registers:
//   - /-/ (internal): liveness and metrics
//   - /api/v1/ : generation endpoints, rate limited per client when enabled
func setupRouter(engine *gin.Engine, cfg routerConfig) {
	engine.Use(
		recovery(),
		requestID(cfg.logger),
		otelgin.Middleware(ServiceName),
		requestLogging(),
	)

	internal := engine.Group("/-")
	internal.GET("/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	internal.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.registry, promhttp.HandlerOpts{})))

	h := &generateHandler{metrics: cfg.metrics}

	api := engine.Group("/api/v1")
	if cfg.rateLimit > 0 {
		api.Use(rateLimit(newRateLimiter(cfg.rateLimit, cfg.rateBurst)))
	}
	api.Use(maxBodySize(cfg.maxBodyBytes))
	api.POST("/mods", h.fixed("mods"))
	api.POST("/dc", h.fixed("dublincore"))
	api.POST("/convert/:format", h.byParam)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	})
}
