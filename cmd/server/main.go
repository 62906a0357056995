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
	"github.com/magazyn-app/backend-go/internal/api"
	"github.com/magazyn-app/backend-go/internal/cache"
	"github.com/magazyn-app/backend-go/internal/config"
	"github.com/magazyn-app/backend-go/internal/demand"
	"github.com/magazyn-app/backend-go/internal/reconcile"
	"github.com/magazyn-app/backend-go/internal/repository/postgres"
	"github.com/magazyn-app/backend-go/internal/service"
	"github.com/magazyn-app/backend-go/internal/storage"
	"github.com/magazyn-app/backend-go/pkg/logger"
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

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	stockRepo := postgres.NewStockRepository(db)
	salesRepo := postgres.NewSalesRepository(db)

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without it")
		reportCache = cache.NewNoopReportCache()
	}

	var archive storage.ObjectStorage = storage.Noop{}
	if cfg.Archive.Enabled {
		client, err := storage.NewMinioClient(cfg.Archive)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Upload archive unavailable, continuing without it")
		} else {
			archive = client
		}
	}

	// Initialize services
	reconciler := reconcile.NewReconciler(stockRepo, salesRepo)
	uploadService := service.NewUploadService(reconciler, archive, reportCache)
	reportService := service.NewReportService(stockRepo, demand.NewAggregator(salesRepo), reportCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		UploadService: uploadService,
		ReportService: reportService,
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
