package handlers

import (
	"net/http"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/api/response"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/apperrors"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/service"
)

// cashflowTypes are the transaction types the trends endpoint accepts.
var cashflowTypes = map[string]model.TransactionType{
	"Buy":                   model.TypeBuy,
	"Sell":                  model.TypeSell,
	"Dividend":              model.TypeDividend,
	"Dividend Reinvestment": model.TypeDividendReinvestment,
	"Interest":              model.TypeInterest,
	"Pension":               model.TypePension,
}

// PortfolioHandler handles HTTP requests for the aggregated and valued
// portfolio views.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Summary handles GET requests for the per-security portfolio overview.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with array of OverviewRow, sorted by open amount descending
// Error: 502 Bad Gateway if the transaction source is unavailable
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to compute portfolio summary", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, rows)
}

// Stocks handles GET requests for the valued stock-centric view.
//
// Endpoint: GET /api/portfolio/stocks
// Response: 200 OK with array of StockPosition; unresolved values encode as null
// Error: 502 Bad Gateway if the transaction source is unavailable
func (h *PortfolioHandler) Stocks(w http.ResponseWriter, r *http.Request) {
	positions, err := h.portfolioService.StockView(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to compute stock view", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, positions)
}

// Cashflows handles GET requests for the monthly gross EUR series of one
// transaction type.
//
// Endpoint: GET /api/portfolio/cashflows?type=Interest
// Response: 200 OK with array of MonthlyCashflow sorted by month ascending
// Error: 400 Bad Request for an unknown type, 502 if the source is unavailable
func (h *PortfolioHandler) Cashflows(w http.ResponseWriter, r *http.Request) {
	txType, ok := cashflowTypes[r.URL.Query().Get("type")]
	if !ok {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnsupportedTransactionType.Error(), r.URL.Query().Get("type"))
		return
	}

	series, err := h.portfolioService.Cashflows(r.Context(), txType)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to compute cashflows", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, series)
}

// ManualInput handles GET requests for the list of tickers needing a manual
// price.
//
// Endpoint: GET /api/portfolio/manual-input
// Response: 200 OK with array of ticker strings
// Error: 502 Bad Gateway if the transaction source is unavailable
func (h *PortfolioHandler) ManualInput(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.portfolioService.ManualInputTickers(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to determine tickers needing input", err.Error())
		return
	}
	if tickers == nil {
		tickers = []string{}
	}
	response.RespondJSON(w, http.StatusOK, tickers)
}
