package handlers

import (
	"net/http"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/api/response"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/service"
)

// TransactionHandler handles HTTP requests for the cleaned transaction table.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolio service.
type TransactionHandler struct {
	portfolioService *service.PortfolioService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(portfolioService *service.PortfolioService) *TransactionHandler {
	return &TransactionHandler{portfolioService: portfolioService}
}

// transactionsResponse bundles the canonical table with the cleaning report
// so the dashboard can show drop counts next to the data.
type transactionsResponse struct {
	Transactions []model.CanonicalTransaction `json:"transactions"`
	Report       dataquality.Report           `json:"report"`
}

// Transactions handles GET requests to retrieve the cleaned transaction table.
//
// Endpoint: GET /api/transactions
// Response: 200 OK with the canonical transactions plus cleaning report
// Error: 502 Bad Gateway if the transaction source is unavailable
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	txs, report, err := h.portfolioService.LoadTransactions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to load transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactionsResponse{
		Transactions: txs,
		Report:       report,
	})
}
