package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/api/response"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/apperrors"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/model"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/repository"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/validation"
)

// ManualPriceHandler handles HTTP requests for manual price overrides.
type ManualPriceHandler struct {
	repo              *repository.ManualPriceRepository
	allowedCurrencies []string
}

// NewManualPriceHandler creates a new ManualPriceHandler with the provided
// repository and the currency codes overrides may use.
func NewManualPriceHandler(repo *repository.ManualPriceRepository, allowedCurrencies []string) *ManualPriceHandler {
	return &ManualPriceHandler{repo: repo, allowedCurrencies: allowedCurrencies}
}

// List handles GET requests to retrieve all manual price overrides.
//
// Endpoint: GET /api/manual-prices
// Response: 200 OK with array of ManualPrice
// Error: 500 Internal Server Error if retrieval fails
func (h *ManualPriceHandler) List(w http.ResponseWriter, r *http.Request) {
	prices, err := h.repo.List(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve manual prices", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, prices)
}

// Upsert handles PUT requests to create or replace the override for a ticker.
//
// Endpoint: PUT /api/manual-prices
// Request body: {"ticker": "ACME", "price": 12.5, "currency": "USD"}
// Response: 200 OK with the stored ManualPrice
// Error: 400 Bad Request on invalid body, 500 on persistence failure
func (h *ManualPriceHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var price model.ManualPrice
	if err := json.NewDecoder(r.Body).Decode(&price); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	price.Ticker = strings.TrimSpace(price.Ticker)
	price.Currency = strings.ToUpper(strings.TrimSpace(price.Currency))
	if price.Currency == "" {
		price.Currency = "EUR"
	}

	if err := validation.ValidateManualPrice(price, h.allowedCurrencies); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stored, err := h.repo.Upsert(r.Context(), price)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store manual price", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, stored)
}

// Delete handles DELETE requests to remove an override by ID.
//
// Endpoint: DELETE /api/manual-prices/{id}
// Response: 204 No Content
// Error: 400 Bad Request on malformed ID, 404 if no such override
func (h *ManualPriceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validation.ValidateUUID(id); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid manual price ID", err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrManualPriceNotFound) {
			response.RespondError(w, http.StatusNotFound, "manual price not found", nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete manual price", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}
