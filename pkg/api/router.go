package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"softwave-landing/pkg/metrics"
	"softwave-landing/pkg/middleware"
)

// NewRouter registers all routes and middleware on a fresh gin engine
func NewRouter(handlers *Handlers, allowedOrigins []string, logger *zap.SugaredLogger) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		metrics.Middleware(),
		middleware.Recovery(logger),
		middleware.CORS(allowedOrigins),
	)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/vouchers", handlers.HandleVoucherSubmission)
	router.GET("/map-url", handlers.HandleMapURL)

	// Paths used by the existing landing page build
	legacy := router.Group("/api")
	legacy.POST("/vouchers", handlers.HandleVoucherSubmission)
	legacy.GET("/maps", handlers.HandleMapURL)

	return router
}
