package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/taskhome/internal/handlers"
	"github.com/monocle-dev/taskhome/internal/logger"
	"github.com/monocle-dev/taskhome/internal/middleware"
	"go.uber.org/zap"
)

type Config struct {
	SigningSecret  string
	MultiTenant    bool
	AllowedOrigins []string
}

func NewRouter(h *handlers.Handlers, cfg Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logger.GinRequestLogger(log, "/api/health"), gin.Recovery())

	slack := r.Group("/slack")
	{
		verified := slack.Group("", middleware.SlackSignature(cfg.SigningSecret))
		verified.POST("/events", h.SlackEvents)
		verified.POST("/interactions", h.SlackInteractions)

		if cfg.MultiTenant {
			slack.GET("/install", h.Install)
			slack.GET("/oauth/callback", h.OAuthCallback)
		}
	}

	api := r.Group("/api", cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	{
		api.GET("/health", h.HealthCheck)
	}

	return r
}
