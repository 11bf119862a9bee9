package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/pipeline-demo/internal/application/catalog"
	"github.com/aescanero/pipeline-demo/internal/config"
	"github.com/aescanero/pipeline-demo/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/pipeline-demo/pkg/api/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel, cfg.IsDevelopment())
	defer logger.Sync()

	logger.Info("starting pipeline demo",
		zap.String("app_version", cfg.Version),
		zap.String("environment", cfg.Environment),
		zap.String("build", Version),
		zap.String("build_time", BuildTime))

	metricsCollector := prometheus.NewCollector()
	metricsCollector.SetBuildInfo(cfg.Version, cfg.Environment)

	httpServer := http.NewServer(&http.Config{
		Addr:              cfg.GetHTTPAddr(),
		ReadHeaderTimeout: cfg.Timeouts.ReadHeaderTimeout,
		Version:           cfg.Version,
		Environment:       cfg.Environment,
		Debug:             cfg.IsDevelopment(),
		Catalog:           catalog.New(),
		Metrics:           metricsCollector,
		Logger:            logger,
	})

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("pipeline demo shut down complete")
}

// initLogger initializes the logger based on log level.
// Development gets a human readable console encoder.
func initLogger(level string, development bool) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	if development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
