package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/eshaffer321/giftpool/internal/api"
	"github.com/eshaffer321/giftpool/internal/application/service"
	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/eshaffer321/giftpool/internal/infrastructure/config"
	"github.com/eshaffer321/giftpool/internal/infrastructure/logging"
	"github.com/eshaffer321/giftpool/internal/infrastructure/tracing"
)

// LoadConfig loads the file at path, or config.yaml with environment
// fallback when path is empty.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadOrEnv(), nil
	}
	return config.Load(path)
}

// NewService wires the allocation engine and service from configuration.
func NewService(cfg *config.Config, logger *slog.Logger, tracer trace.Tracer) (*service.AllocationService, error) {
	engine, err := allocator.NewAllocator(cfg.EngineConfig())
	if err != nil {
		return nil, fmt.Errorf("allocator config: %w", err)
	}
	return service.NewAllocationService(engine, logger, tracer), nil
}

// RunServe runs the API server until SIGINT or SIGTERM.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	// Set up logging
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	provider, err := tracing.Setup(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("tracer shutdown error", slog.Any("error", err))
		}
	}()

	svc, err := NewService(cfg, logging.NewLoggerWithSystem(loggingCfg, "engine"), provider.Tracer())
	if err != nil {
		return err
	}

	apiCfg := api.Config{
		Name:           cfg.Tracing.ServiceName,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if flags.Port != 0 {
		apiCfg.Port = flags.Port
	}

	// Create and start server
	server := api.NewServer(apiCfg, svc, provider.Tracer(), logger)

	// Handle graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
