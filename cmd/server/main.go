package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AlessioMurgia/capitaltracker/internal/api"
	"github.com/AlessioMurgia/capitaltracker/internal/config"
	"github.com/AlessioMurgia/capitaltracker/internal/database"
	"github.com/AlessioMurgia/capitaltracker/internal/marketdata"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	portfolioRepo := repository.NewPortfolioRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create services
	systemService, err := service.NewSystemService(db, settingRepo, cfg.Settings.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize system service: %v", err)
	}
	loader := service.NewSnapshotLoader(transactionRepo, assetRepo, valuationRepo)
	portfolioService := service.NewPortfolioService(portfolioRepo, snapshotRepo, loader)
	historyService := service.NewHistoryService(portfolioRepo, snapshotRepo, loader)
	assetService := service.NewAssetService(assetRepo)
	transactionService := service.NewTransactionService(transactionRepo, portfolioRepo, assetRepo, historyService)
	valuationService := service.NewValuationService(
		valuationRepo,
		assetRepo,
		portfolioRepo,
		historyService,
		systemService,
		marketdata.NewAlphaVantageClient(cfg.MarketData.BaseURL),
	)

	// Nightly jobs: refresh market data, then rebuild stored history.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 2 * * *", func() {
		if systemService.HasMarketDataKey() {
			result, err := valuationService.RefreshFromMarketData()
			if err != nil {
				log.Printf("Nightly market data refresh failed: %v", err)
			} else {
				log.Printf("Nightly market data refresh: %d refreshed, %d skipped, %d failed",
					result.Refreshed, result.Skipped, len(result.Failed))
			}
		}
		if err := historyService.RebuildAllSnapshots(); err != nil {
			log.Printf("Nightly history rebuild failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule nightly job: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(
		systemService,
		portfolioService,
		historyService,
		assetService,
		transactionService,
		valuationService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
