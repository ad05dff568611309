package source_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/source"
)

// TestCSVFileSource_Fetch tests reading a local CSV export.
//
// WHY: CSV is the simplest offline path for the transaction table; a missing
// file must read as source unavailable, not as an empty portfolio.
func TestCSVFileSource_Fetch(t *testing.T) {
	t.Run("parses a CSV file with a header row", func(t *testing.T) {
		// Setup
		path := filepath.Join(t.TempDir(), "transactions.csv")
		content := "Ticker,Name,Quantity\nACME,ACME Corp,10\nASML.AS,ASML Holding,2\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		src := source.NewCSVFileSource(path)

		// Execute
		rows, err := src.Fetch(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Fetch() returned unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		if rows[0]["Ticker"] != "ACME" || rows[1]["Quantity"] != "2" {
			t.Errorf("Unexpected rows: %v", rows)
		}
	})

	t.Run("errors when the file is missing", func(t *testing.T) {
		src := source.NewCSVFileSource(filepath.Join(t.TempDir(), "missing.csv"))

		_, err := src.Fetch(context.Background())

		if err == nil {
			t.Fatal("Expected error for missing file, got nil")
		}
	})

	t.Run("header-only file yields no rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		if err := os.WriteFile(path, []byte("Ticker,Name\n"), 0o644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
		src := source.NewCSVFileSource(path)

		rows, err := src.Fetch(context.Background())

		if err != nil {
			t.Fatalf("Fetch() returned unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("Expected no rows, got %v", rows)
		}
	})
}

// TestSheetCSVSource_Fetch tests the Google Sheets CSV export source.
//
// WHY: The export endpoint answers permission and missing-sheet problems with
// non-200 statuses; those must surface as source failures instead of feeding
// an error page into the CSV parser.
func TestSheetCSVSource_Fetch(t *testing.T) {
	t.Run("fetches and parses the worksheet export", func(t *testing.T) {
		// Setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wantPath := "/spreadsheets/d/sheet-id-1/gviz/tq"
			if r.URL.Path != wantPath {
				t.Errorf("Path = %q, want %q", r.URL.Path, wantPath)
			}
			if got := r.URL.Query().Get("sheet"); got != "Transactions" {
				t.Errorf("sheet = %q, want Transactions", got)
			}
			fmt.Fprint(w, "Ticker,Name\nACME,ACME Corp\n")
		}))
		defer server.Close()
		src := source.NewSheetCSVSourceWithBaseURL(server.URL, "sheet-id-1", "Transactions", "")

		// Execute
		rows, err := src.Fetch(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Fetch() returned unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0]["Ticker"] != "ACME" {
			t.Errorf("Unexpected rows: %v", rows)
		}
	})

	t.Run("passes the access token when configured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("access_token"); got != "secret-token" {
				t.Errorf("access_token = %q, want secret-token", got)
			}
			fmt.Fprint(w, "Ticker\nACME\n")
		}))
		defer server.Close()
		src := source.NewSheetCSVSourceWithBaseURL(server.URL, "sheet-id-1", "Transactions", "secret-token")

		if _, err := src.Fetch(context.Background()); err != nil {
			t.Fatalf("Fetch() returned unexpected error: %v", err)
		}
	})

	t.Run("treats non-200 responses as source failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()
		src := source.NewSheetCSVSourceWithBaseURL(server.URL, "sheet-id-1", "Transactions", "")

		_, err := src.Fetch(context.Background())

		if err == nil {
			t.Fatal("Expected error for 403 response, got nil")
		}
	})
}
