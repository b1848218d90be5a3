package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"accesshub/config"
	"accesshub/internal/apperrors"
	"accesshub/internal/handler"
	"accesshub/internal/response"
	"accesshub/pkg/ratelimit"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	accessHandler *handler.AccessHandler,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	systemHandler *handler.SystemHandler,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	r := gin.New()

	r.Use(
		Recovery(logger),
		RequestLogger(logger),
		SecurityHeaders(cfg.Server.AllowedOrigins),
		RateLimit(limiter, logger),
		RequestTimeout(cfg.RequestTimeout()),
	)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, apperrors.NotFound("route not found"))
	})

	api := r.Group("/api")
	{
		accessGroup := api.Group("/access")
		{
			accessGroup.POST("/increment", accessHandler.Increment)
			accessGroup.GET("/count", accessHandler.Count)
			accessGroup.GET("/statistics", accessHandler.Statistics)
			accessGroup.GET("/health", accessHandler.Health)
			accessGroup.POST("/reset", accessHandler.Reset)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.Create)
			users.GET("", userHandler.List)
			users.GET("/statistics", userHandler.Statistics)
			users.GET("/search/email", userHandler.SearchByEmail)
			users.GET("/:id", userHandler.GetByID)
			users.GET("/:id/exists", userHandler.Exists)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}

		api.POST("/auth/login", authHandler.Login)
	}

	r.GET("/health", systemHandler.Health)
	r.GET("/health/detailed", systemHandler.HealthDetailed)
	r.GET("/info", systemHandler.Info)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Router{Engine: r}
}
