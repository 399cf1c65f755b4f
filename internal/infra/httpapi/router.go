// Package httpapi exposes the page sessions, the project feed and the
// settings page over HTTP.
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heroxshorts/heroxshorts-studio/internal/usecase"
	"go.uber.org/zap"
)

type Handler struct {
	registry *usecase.Registry
	feed     *usecase.ProjectFeed
	settings *usecase.SettingsService
	logger   *zap.Logger
}

func NewHandler(registry *usecase.Registry, feed *usecase.ProjectFeed, settings *usecase.SettingsService, logger *zap.Logger) *Handler {
	return &Handler{registry: registry, feed: feed, settings: settings, logger: logger}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	api := r.Group("/api")

	sessions := api.Group("/sessions")
	sessions.POST("", h.openSession)
	sessions.GET("/:id", h.getSession)
	sessions.DELETE("/:id", h.closeSession)
	sessions.POST("/:id/file", h.selectFile)
	sessions.POST("/:id/upload", h.startUpload)
	sessions.POST("/:id/url", h.submitURL)
	sessions.POST("/:id/cancel", h.cancelUpload)
	sessions.POST("/:id/process", h.process)

	api.GET("/flows", h.listFlows)
	api.GET("/projects", h.listProjects)
	api.GET("/projects/:id", h.getProject)

	api.GET("/plans/:plan", h.getPlan)
	api.GET("/settings", h.getSettings)
	api.PUT("/settings/plan", h.updatePlan)

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
