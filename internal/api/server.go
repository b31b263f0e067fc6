package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"

	"github.com/eshaffer321/giftpool/internal/api/handlers"
	"github.com/eshaffer321/giftpool/internal/api/middleware"
	"github.com/eshaffer321/giftpool/internal/infrastructure/tracing"
)

// Config holds API server configuration.
type Config struct {
	Name           string // reported by /health
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Name:           "giftpool",
		Port:           8085,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	tracer     trace.Tracer
	svc        handlers.AllocationService
}

// NewServer creates a new API server. A nil tracer disables request spans
// and a nil logger uses slog.Default.
func NewServer(cfg Config, svc handlers.AllocationService, tracer trace.Tracer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = tracing.Noop()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
		tracer: tracer,
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Tracing(s.tracer))

	corsConfig := middleware.DefaultCORSConfig()
	if len(s.config.AllowedOrigins) > 0 {
		corsConfig.AllowedOrigins = s.config.AllowedOrigins
	}
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler(s.config.Name)
	s.router.Get("/health", healthHandler.ServeHTTP)

	alloc := handlers.NewAllocationHandler(s.svc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/fees", alloc.Fees)

		r.Post("/contributions/allocate", alloc.Allocate)
		r.Post("/contributions/plan", alloc.ContributionPlan)

		r.Post("/funding/overfunding", alloc.Overfunding)
		r.Post("/funding/underfunding", alloc.Underfunding)
		r.Post("/funding/summary", alloc.FundingSummary)

		r.Post("/price-changes", alloc.PriceChange)
		r.Post("/purchase-plan", alloc.PurchasePlan)
		r.Post("/fraud-checks", alloc.FraudCheck)
	})
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
