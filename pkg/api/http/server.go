package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aescanero/pipeline-demo/internal/application/catalog"
	"github.com/aescanero/pipeline-demo/pkg/adapters/metrics/prometheus"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	catalog *catalog.Catalog
	metrics *prometheus.Collector
	logger  *zap.Logger

	version     string
	environment string
}

// Config holds HTTP server configuration
type Config struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	Version           string
	Environment       string
	Debug             bool
	Catalog           *catalog.Catalog
	Metrics           *prometheus.Collector
	Logger            *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false
	router.Use(ginzap.RecoveryWithZap(cfg.Logger, true))
	router.Use(requestID())
	router.Use(corsMiddleware())
	router.Use(requestLogger(cfg.Logger, cfg.Metrics))

	s := &Server{
		router:      router,
		catalog:     cfg.Catalog,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		version:     cfg.Version,
		environment: cfg.Environment,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	s.get(s.router, "/", s.handleHome)

	// Probes
	s.get(s.router, "/health", s.handleHealth)
	s.get(s.router, "/ready", s.handleReady)

	// Metrics
	if s.metrics != nil {
		s.get(s.router, "/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := s.router.Group("/api")
	{
		s.get(api, "/items", s.handleListItems)
		s.get(api, "/items/:id", s.handleGetItem)
	}

	s.router.NoRoute(handleNotFound)
	s.router.NoMethod(handleMethodNotAllowed)
}

// get registers a GET route that also answers HEAD
func (s *Server) get(r gin.IRoutes, path string, handler gin.HandlerFunc) {
	r.GET(path, handler)
	r.HEAD(path, handler)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves until Shutdown
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting HTTP server", zap.String("addr", ln.Addr().String()))

	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}

// requestLogger is a middleware for request logging
func requestLogger(logger *zap.Logger, metrics *prometheus.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if metrics != nil {
			metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), duration)
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)))
	}
}
