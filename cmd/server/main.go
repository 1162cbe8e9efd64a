package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/handlers"
	"weather-dashboard/internal/presentation"
	"weather-dashboard/internal/providers"
	"weather-dashboard/internal/providers/simulated"
	"weather-dashboard/internal/providers/wttr"
	"weather-dashboard/internal/repository"
	"weather-dashboard/internal/services"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/logging"
	"weather-dashboard/pkg/metrics"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("weather-api", version, logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting weather dashboard API server", logging.Fields{
		"version":         version,
		"server_host":     cfg.Server.Host,
		"server_port":     cfg.Server.Port,
		"provider_mode":   cfg.Provider.Mode,
		"history_enabled": cfg.History.Enabled,
	})

	metricsCollector := metrics.NewCollector("weather_dashboard")

	// Content draws are seeded only in simulated mode so demo runs are repeatable
	var rng presentation.IndexProvider = presentation.RandomIndex{}
	if cfg.Provider.Mode == config.ProviderSimulated && cfg.Provider.Seed != 0 {
		rng = presentation.NewSeededIndex(cfg.Provider.Seed)
	}

	provider := newProvider(cfg.Provider, rng)

	// Lookup history is optional
	var historyRepo repository.HistoryRepository
	if cfg.History.Enabled {
		db, err := database.NewPostgresDB(ctx, cfg.Database.Postgres(), logger, metricsCollector)
		if err != nil {
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to connect to database", logging.Fields{
				"db_host": cfg.Database.Host,
				"db_name": cfg.Database.Database,
			}, err)
		}
		defer db.Close()

		historyRepo = repository.NewHistoryRepository(db, logger, metricsCollector)
	}

	// Initialize services
	transformer := presentation.NewTransformer(rng)
	weatherService := services.NewWeatherService(provider, transformer, historyRepo, logger, metricsCollector)
	historyService := services.NewHistoryService(historyRepo, logger, metricsCollector)

	// Initialize handlers
	weatherHandler := handlers.NewWeatherHandler(weatherService, historyService, cfg.Provider.DefaultCity, version, logger, metricsCollector)

	// Setup router
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler())
	weatherHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handlers.Wrap(router, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address":  server.Addr,
			"provider": provider.Name(),
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}

func newProvider(cfg config.ProviderConfig, rng presentation.IndexProvider) providers.Provider {
	if cfg.Mode == config.ProviderSimulated {
		return simulated.NewProvider(rng)
	}
	return wttr.NewClient(cfg.BaseURL, cfg.UserAgent, cfg.Timeout)
}
