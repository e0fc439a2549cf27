package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AlessioMurgia/capitaltracker/internal/api/handlers"
	custommiddleware "github.com/AlessioMurgia/capitaltracker/internal/api/middleware"
	"github.com/AlessioMurgia/capitaltracker/internal/config"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	historyService *service.HistoryService,
	assetService *service.AssetService,
	transactionService *service.TransactionService,
	valuationService *service.ValuationService,
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
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/settings/marketdata-key", systemHandler.MarketDataKeyStatus)
			r.Put("/settings/marketdata-key", systemHandler.SetMarketDataKey)
		})

		portfolioHandler := handlers.NewPortfolioHandler(portfolioService, historyService)
		r.Get("/overview", portfolioHandler.Overview)

		r.Route("/portfolios", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/state", portfolioHandler.PortfolioState)
				r.Get("/history", portfolioHandler.PortfolioHistory)
				r.Get("/allocation", portfolioHandler.Allocation)
				r.Get("/allocation/history", portfolioHandler.AllocationHistory)
			})
		})

		r.Route("/assets", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(assetService)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Get("/", transactionHandler.Transactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/valuations", func(r chi.Router) {
			valuationHandler := handlers.NewValuationHandler(valuationService)
			r.Get("/", valuationHandler.Valuations)
			r.Post("/", valuationHandler.CreateValuation)
			r.Post("/refresh", valuationHandler.Refresh)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", valuationHandler.DeleteValuation)
			})
		})
	})

	return r
}
