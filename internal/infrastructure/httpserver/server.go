package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wallet-checkpoint-monitor/internal/domain/service"
	"wallet-checkpoint-monitor/internal/infrastructure/config"
	"wallet-checkpoint-monitor/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const htmlContentType = "text/html; charset=utf-8"

// Server exposes health and report endpoints over HTTP
type Server struct {
	engine *gin.Engine
	server *http.Server
	config *config.HTTPConfig
	logger *logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.HTTPConfig, reports service.ReportService, logger *logger.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: logger.WithComponent("http-server"),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reportsGroup := engine.Group("/reports")
	reportsGroup.GET("/status", func(c *gin.Context) {
		c.Data(http.StatusOK, htmlContentType, []byte(reports.StatusReport(c.Request.Context())))
	})
	reportsGroup.GET("/checkpoints", func(c *gin.Context) {
		c.Data(http.StatusOK, htmlContentType, []byte(reports.CheckpointReport(c.Request.Context())))
	})
	reportsGroup.GET("/aggregate", func(c *gin.Context) {
		c.Data(http.StatusOK, htmlContentType, []byte(reports.AggregateCheckpointReport(c.Request.Context())))
	})

	s.engine = engine
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves in the background
func (s *Server) Start() error {
	if !s.config.Enabled {
		s.logger.Info("HTTP server is disabled")
		return nil
	}

	s.logger.Info("Starting HTTP server...", zap.Int("port", s.config.Port))
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}
	s.logger.Info("Stopping HTTP server...")
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(started)))
	}
}
