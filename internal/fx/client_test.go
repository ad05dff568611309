package fx_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/fx"
)

// TestClient_GetRate tests rate retrieval against a stubbed latest-rates
// endpoint.
//
// WHY: The client must pick the requested target rate out of the response map
// and report failure for missing currencies and upstream errors so the
// provider's 1.0 degradation can kick in.
func TestClient_GetRate(t *testing.T) {
	t.Run("returns the requested rate", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/USD" {
				t.Errorf("Unexpected path: %s", r.URL.Path)
			}
			fmt.Fprint(w, `{"base": "USD", "date": "2025-01-02", "rates": {"EUR": 0.92, "DKK": 6.87}}`)
		}))
		defer server.Close()
		client := fx.NewClientWithBaseURL(server.URL)

		// Execute
		rate, err := client.GetRate(context.Background(), "USD", "EUR")

		// Assert
		if err != nil {
			t.Fatalf("GetRate() returned unexpected error: %v", err)
		}
		if rate != 0.92 {
			t.Errorf("Rate = %v, want 0.92", rate)
		}
	})

	t.Run("errors when the target currency is missing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"base": "USD", "rates": {"DKK": 6.87}}`)
		}))
		defer server.Close()
		client := fx.NewClientWithBaseURL(server.URL)

		_, err := client.GetRate(context.Background(), "USD", "EUR")

		if err == nil {
			t.Fatal("Expected error for missing target currency, got nil")
		}
	})

	t.Run("errors on non-200 responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()
		client := fx.NewClientWithBaseURL(server.URL)

		_, err := client.GetRate(context.Background(), "USD", "EUR")

		if err == nil {
			t.Fatal("Expected error for 429 response, got nil")
		}
	})

	t.Run("errors on malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		}))
		defer server.Close()
		client := fx.NewClientWithBaseURL(server.URL)

		_, err := client.GetRate(context.Background(), "USD", "EUR")

		if err == nil {
			t.Fatal("Expected error for malformed body, got nil")
		}
	})
}
