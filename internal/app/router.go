package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"loadtrack/internal/handler"
	"loadtrack/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	LoadHandler *handler.LoadHandler
	UserHandler *handler.UserHandler
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("", deps.UserHandler.GetAll)
		}

		// Load routes.
		loads := v1.Group("/loads")
		{
			loads.POST("", deps.LoadHandler.CreateLoad)
			loads.GET("", deps.LoadHandler.GetAll)
			loads.POST("/bulk/delete", deps.LoadHandler.BulkDelete)
			loads.POST("/bulk/status", deps.LoadHandler.BulkUpdateStatus)
			loads.POST("/bulk/assign", deps.LoadHandler.BulkAssignDriver)
			loads.GET("/:id", deps.LoadHandler.GetLoad)
			loads.PATCH("/:id", deps.LoadHandler.UpdateLoad)
			loads.DELETE("/:id", deps.LoadHandler.DeleteLoad)
			loads.POST("/:id/readings", deps.LoadHandler.AppendReading)
			loads.GET("/:id/metrics", deps.LoadHandler.GetMetrics)
			loads.GET("/:id/alerts", deps.LoadHandler.GetAlerts)
		}
	}

	return router
}
