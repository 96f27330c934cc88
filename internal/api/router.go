package api

import (
	"net/http"
	"time"

	"alfacard_miniapp/internal/bot"
	"alfacard_miniapp/internal/metrics"
	"alfacard_miniapp/internal/middleware"
	"alfacard_miniapp/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the HTTP surface: CORS contract, method handling,
// health and metrics endpoints, and the /api/v1 routes.
func NewRouter(users service.UserServiceI, botService *bot.Service, store Pinger, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(m))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodOptions,
	}
	config.AllowHeaders = []string{"Content-Type", "X-User-Id"}
	config.MaxAge = 24 * time.Hour
	config.OptionsResponseStatusCode = http.StatusOK

	router.Use(cors.New(config))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		// The cors middleware short-circuits only real preflights,
		// the ones carrying Access-Control-Request-Method. A bare
		// OPTIONS on a known route lands here and must still get 200.
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	NewHealthRoutes(router, store)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	a := router.Group("/api/v1")
	NewBalanceRoutes(a, users)
	NewActivationRoutes(a, users)
	NewWebhookRoutes(a, botService)

	return router
}
