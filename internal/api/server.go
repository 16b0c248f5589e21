package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	httpSwagger "github.com/swaggo/http-swagger"

	api "zbxstats/internal/api/application"
	"zbxstats/internal/api/handlers"
	apimiddleware "zbxstats/internal/api/middleware"
	configapp "zbxstats/internal/config/application"
	historyapp "zbxstats/internal/history/application"
	"zbxstats/internal/infrastructure/telemetry"
	entitydomain "zbxstats/internal/shared/entity/domain"
	sharedlogger "zbxstats/internal/shared/logger"
	statsapp "zbxstats/internal/stats/application"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	logger     sharedlogger.Logger
}

// NewServer creates a new API server
func NewServer(
	logger sharedlogger.Logger,
	runtimeCfg *configapp.RuntimeConfig,
	hostRepo entitydomain.Repository,
	statsService *statsapp.Service,
	recorder *historyapp.Recorder,
) (*Server, error) {
	// Validate API key is set
	if runtimeCfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set ZBXSTATS_API_KEY or use --api-key flag)")
	}

	// Initialize services
	hostService := api.NewHostService(hostRepo)

	// Initialize handlers
	hostHandler := handlers.NewHostHandler(hostService)
	statsHandler := handlers.NewStatsHandler(statsService, hostService)
	historyHandler := handlers.NewHistoryHandler(recorder)

	// Setup chi router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// httplog needs the concrete slog.Logger behind the infrastructure logger
	var slogLogger *slog.Logger
	if infraLogger, ok := logger.(interface{ SLog() *slog.Logger }); ok {
		slogLogger = infraLogger.SLog()
	} else {
		slogLogger = slog.Default()
	}

	r.Use(httplog.RequestLogger(slogLogger, &httplog.Options{
		Level:             slog.LevelDebug,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{},
	}))

	// Swagger UI (only in dev mode, no auth required)
	if runtimeCfg.DevMode {
		swaggerHandler := httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		)
		r.Handle("/swagger/*", swaggerHandler)
		r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
		})
	}

	// Prometheus scrape endpoint, no auth required
	r.Handle("/metrics", telemetry.Handler())

	// API v1 routes (with authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apimiddleware.APIKeyAuthWithKey(runtimeCfg.APIKey))

		r.Get("/hosts", hostHandler.ListHosts)
		r.Get("/hosts/{name}", hostHandler.GetHost)
		r.Get("/hosts/{name}/items_history", statsHandler.HostItemsHistory)
		r.Get("/items_history", statsHandler.ItemsHistory)
		r.Get("/items_aggregated_values", statsHandler.ItemsAggregatedValues)
		r.Post("/history", historyHandler.Ingest)
	})

	httpServer := &http.Server{
		Addr:         ":" + runtimeCfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Debug("Server configured",
		"port", runtimeCfg.APIPort,
		"dev_mode", runtimeCfg.DevMode,
		"middleware", []string{"RequestID", "RealIP", "Recoverer", "httplog"},
	)

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server error", "err", err)
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server shutdown error", "err", err)
	} else {
		s.logger.Info("Server shutdown complete")
	}
	return err
}
