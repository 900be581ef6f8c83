// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scanplan/backend/internal/api"
	"github.com/scanplan/backend/internal/cache"
	"github.com/scanplan/backend/internal/catalog"
	"github.com/scanplan/backend/internal/config"
	"github.com/scanplan/backend/internal/domain"
	"github.com/scanplan/backend/internal/projection"
	"github.com/scanplan/backend/internal/service"
	"github.com/scanplan/backend/internal/storage"
	"github.com/scanplan/backend/internal/store"
	"github.com/scanplan/backend/internal/synthetic"
	"github.com/scanplan/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Catalog reference data: Postgres when configured, embedded otherwise
	cat := loadCatalog(cfg)

	// Summary rollup cache (redis or noop)
	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("summary cache unavailable, continuing without")
		summaryCache = cache.NewNoopSummaryCache()
	}

	// Export sink (optional object storage)
	sink, err := storage.FromConfig(cfg.Storage)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize storage backend")
	}

	// Core planner wiring
	gen := synthetic.New(cfg.Planner.RandomSeed)
	engine := projection.NewEngine(cat)
	clusterStore := store.New(engine, gen)

	mode, ok := domain.ParseMode(cfg.Planner.DefaultMode)
	if !ok {
		mode = domain.ModeBudget
	}
	plannerService := service.NewPlannerService(clusterStore, summaryCache, mode)
	exportService := service.NewExportService(plannerService, cfg.Export.OutputDir, sink)

	if cfg.Planner.FixturesPath != "" {
		if _, err := plannerService.LoadFixtures(context.Background(), cfg.Planner.FixturesPath); err != nil {
			logger.Log.Warn().Err(err).Msg("Failed to load planner fixtures")
		}
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Planner: plannerService,
		Export:  exportService,
		Catalog: cat,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func loadCatalog(cfg *config.Config) *catalog.Catalog {
	if !cfg.HasDatabase() {
		logger.Log.Info().Msg("Using embedded catalog reference data")
		return catalog.NewStatic()
	}

	db, err := catalog.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Catalog database unavailable, falling back to embedded catalog")
		return catalog.NewStatic()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cat, err := catalog.LoadCatalog(ctx, db)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Catalog load failed, falling back to embedded catalog")
		return catalog.NewStatic()
	}

	logger.Log.Info().Int("products", len(cat.Products())).Msg("Catalog loaded from database")
	return cat
}
