package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/metrics"
	"github.com/valeevte/pricetracker/internal/middleware"
	"github.com/valeevte/pricetracker/internal/products"
	"github.com/valeevte/pricetracker/internal/web"
)

func newRouter(tracker *products.Tracker, provider products.Provider, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	web.NewHandler(tracker, log.Named("web")).Install(r)

	api := r.Group("/api")
	products.NewHandler(tracker, provider, log.Named("api")).RegisterRoutes(api)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}
