package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/api"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/config"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/database"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/fx"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/marketdata"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/repository"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/service"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/source"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Select the transaction source
	txSource, err := newTransactionSource(cfg.Source)
	if err != nil {
		log.Fatalf("Failed to configure transaction source: %v", err)
	}

	// Create services
	cleaningCfg := dataquality.DefaultConfig()
	provider := marketdata.NewProvider(yahoo.NewFinanceClient(), fx.NewClient())
	valuationService := service.NewValuationService(provider)
	manualPriceRepo := repository.NewManualPriceRepository(db)
	portfolioService := service.NewPortfolioService(
		txSource,
		cleaningCfg,
		valuationService,
		manualPriceRepo,
	)

	// Optional scheduled quote-cache warm-up. Valuations stay request-driven;
	// this only pre-fills the lookup cache so page loads hit warm entries.
	if cfg.PriceRefresh.Enabled {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.PriceRefresh.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := portfolioService.StockView(ctx); err != nil {
				log.Printf("Quote cache warm-up failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid price refresh schedule %q: %v", cfg.PriceRefresh.Schedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("Quote cache warm-up scheduled: %s", cfg.PriceRefresh.Schedule)
	}

	// Create router
	router := api.NewRouter(db, portfolioService, manualPriceRepo, cleaningCfg.AllowedCurrencies, cfg)

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

// newTransactionSource builds the configured transaction source. The workbook
// name applies to the sheet source; file sources use the configured path.
func newTransactionSource(cfg config.SourceConfig) (service.TransactionSource, error) {
	switch cfg.Kind {
	case "xlsx":
		return source.NewXLSXSource(cfg.Path, cfg.Worksheet), nil
	case "csv":
		return source.NewCSVFileSource(cfg.Path), nil
	case "sheet":
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("SOURCE_SPREADSHEET_ID is required for the sheet source")
		}
		return source.NewSheetCSVSource(cfg.SpreadsheetID, cfg.Worksheet, cfg.Token), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
