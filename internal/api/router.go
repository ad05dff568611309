package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/api/handlers"
	custommiddleware "github.com/rodrigoBaranda/PersonalPortfolio/internal/api/middleware"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/config"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/repository"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	db *sql.DB,
	portfolioService *service.PortfolioService,
	manualPriceRepo *repository.ManualPriceRepository,
	allowedCurrencies []string,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(portfolioService)
			r.Get("/", transactionHandler.Transactions)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/stocks", portfolioHandler.Stocks)
			r.Get("/cashflows", portfolioHandler.Cashflows)
			r.Get("/manual-input", portfolioHandler.ManualInput)
		})

		r.Route("/manual-prices", func(r chi.Router) {
			manualPriceHandler := handlers.NewManualPriceHandler(manualPriceRepo, allowedCurrencies)
			r.Get("/", manualPriceHandler.List)
			r.Put("/", manualPriceHandler.Upsert)
			r.Delete("/{id}", manualPriceHandler.Delete)
		})
	})

	return r
}
