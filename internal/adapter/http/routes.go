package http

import (
	"taskapp/internal/adapter/http/middleware"
	"taskapp/pkg/config"
	"taskapp/pkg/logging"
	"taskapp/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func SetupRouter(container *Container, metrics *telemetry.AppMetrics, logger *logging.AppLogger, cfg *config.Config) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(otelgin.Middleware("taskapp"))
	router.Use(middleware.LoggingMiddleware(logger))

	if cfg.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(logger.Logger.Logger, metrics)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.Use(middleware.MetricsMiddleware(metrics))

	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.FrontendOrigin))

	setupPublicRoutes(router, container)
	setupProtectedRoutes(router, container)

	return router
}

func setupPublicRoutes(router *gin.Engine, container *Container) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", container.AuthHandler.Register)
		auth.POST("/login", container.AuthHandler.Login)
		auth.POST("/2fa/login", container.TwoFactorHandler.Login)

		auth.GET("/google/login", container.GoogleHandler.Login)
		auth.GET("/google/callback", container.GoogleHandler.Callback)
		auth.POST("/google/exchange-code", container.GoogleHandler.ExchangeCode)
	}
}

func setupProtectedRoutes(router *gin.Engine, container *Container) {
	protected := router.Group("/")
	protected.Use(middleware.RequireAuth(container.JWT, container.UserRepo))
	{
		protected.GET("/auth/profile", container.AuthHandler.Profile)
		protected.POST("/auth/2fa/generate-secret", container.TwoFactorHandler.GenerateSecret)
		protected.POST("/auth/2fa/enable", container.TwoFactorHandler.Enable)
		protected.POST("/auth/2fa/disable", container.TwoFactorHandler.Disable)

		protected.GET("/tasks", container.TaskHandler.GetTasks)
		protected.POST("/tasks", container.TaskHandler.CreateTask)
		protected.GET("/tasks/:uuid", container.TaskHandler.GetTask)
		protected.PATCH("/tasks/:uuid/status", container.TaskHandler.UpdateTaskStatus)
		protected.DELETE("/tasks/:uuid", container.TaskHandler.DeleteTask)

		protected.GET("/users", container.UserHandler.GetUsers)
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
