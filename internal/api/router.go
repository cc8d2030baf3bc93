package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fashion-digest/internal/config"
	"github.com/fashion-digest/internal/service"
	"github.com/fashion-digest/internal/web"
	"github.com/fashion-digest/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthChecker reports whether the backing database is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, db HealthChecker, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())

	// ClientIP keys the comment limiter, so forwarding headers are only
	// honoured from configured proxies.
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		log.Error().Err(err).Msg("Invalid trusted proxies, forwarding headers ignored")
		_ = router.SetTrustedProxies(nil)
	}

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())

	// Handlers
	sessions := newSessionManager(cfg.Security.SecretKey, log)
	contentHandler := NewContentHandler(services, cfg, sessions, log)
	setupHandler := NewSetupHandler(services, log)
	limiter := newIPRateLimiter(cfg.Security.CommentRateLimit, cfg.Security.CommentBurst)

	// Operational endpoints
	router.GET("/health", healthCheck(db, services))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages
	router.GET("/", contentHandler.Home)
	router.GET("/news", contentHandler.ListNews)
	router.GET("/get_news/:id", contentHandler.ShowArticle)
	router.POST("/get_news/:id", rateLimitMiddleware(limiter), contentHandler.CommentOnArticle)
	router.GET("/videos", contentHandler.ListVideos)
	router.GET("/get_vid/:id", contentHandler.ShowVideo)
	router.POST("/get_vid/:id", rateLimitMiddleware(limiter), contentHandler.CommentOnVideo)
	router.GET("/shop", contentHandler.Shop)
	router.GET("/setup", setupHandler.Setup)

	router.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound, msgNotFound)
	})

	return router
}

// healthCheck returns the health status together with table counts
func healthCheck(db HealthChecker, services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now().Format(time.RFC3339),
				"service":   logger.ServiceName,
			})
			return
		}

		response := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		}
		if stats, err := services.Content.Stats(ctx); err == nil {
			response["database"] = stats
		}
		c.JSON(http.StatusOK, response)
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
