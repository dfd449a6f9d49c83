// Package http assembles the gin engine served by cmd/server.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/foxshop-service/internal/pkg/logger"
	"github.com/light-bringer/foxshop-service/internal/pkg/metrics"
	"github.com/light-bringer/foxshop-service/internal/transport/http/middleware"
	"github.com/light-bringer/foxshop-service/internal/transport/http/product"
)

// healthTimeout bounds the store ping behind /healthz.
const healthTimeout = 2 * time.Second

// RouterOptions holds what the router needs from the service container.
type RouterOptions struct {
	Products *product.Handler
	// Metrics is optional; when nil no /metrics route is mounted.
	Metrics *metrics.Metrics
	// Health pings the store.
	Health func(ctx context.Context) error
}

// NewRouter builds the engine with middleware and every route mounted.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logging(),
	)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/healthz", healthHandler(opts.Health))
	opts.Products.RegisterRoutes(r)

	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := check(ctx); err != nil {
			logger.Error(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
