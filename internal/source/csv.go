package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"
)

// CSVFileSource reads the transaction table from a local CSV file with a
// header row.
type CSVFileSource struct {
	path string
}

// NewCSVFileSource creates a source for the given CSV path.
func NewCSVFileSource(path string) *CSVFileSource {
	return &CSVFileSource{path: path}
}

// Fetch reads and parses the CSV file.
func (s *CSVFileSource) Fetch(_ context.Context) ([]dataquality.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %q: %w", s.path, err)
	}
	defer f.Close()

	return parseCSV(f)
}

// SheetCSVSource fetches a Google Sheets worksheet through the CSV export
// endpoint. The spreadsheet must be readable by the link holder, or an API
// token must be supplied as a query parameter.
type SheetCSVSource struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	sheet         string
	apiToken      string
}

// NewSheetCSVSource creates a source for the given spreadsheet ID and
// worksheet name. token may be empty for link-readable sheets.
func NewSheetCSVSource(spreadsheetID, sheet, token string) *SheetCSVSource {
	return &SheetCSVSource{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       "https://docs.google.com",
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		apiToken:      token,
	}
}

// NewSheetCSVSourceWithBaseURL creates a source pointed at a custom endpoint.
// Used by tests to target an httptest server.
func NewSheetCSVSourceWithBaseURL(baseURL, spreadsheetID, sheet, token string) *SheetCSVSource {
	s := NewSheetCSVSource(spreadsheetID, sheet, token)
	s.baseURL = baseURL
	return s
}

// Fetch downloads the worksheet as CSV and parses it. Non-200 responses are
// source failures: a denied or missing spreadsheet must not be confused with
// an empty one.
func (s *SheetCSVSource) Fetch(ctx context.Context) ([]dataquality.Row, error) {
	endpoint := fmt.Sprintf(
		"%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		s.baseURL,
		url.PathEscape(s.spreadsheetID),
		url.QueryEscape(s.sheet),
	)
	if s.apiToken != "" {
		endpoint += "&access_token=" + url.QueryEscape(s.apiToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet %q: %w", s.spreadsheetID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spreadsheet %q returned status %d", s.spreadsheetID, resp.StatusCode)
	}

	return parseCSV(resp.Body)
}

func parseCSV(r io.Reader) ([]dataquality.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are padded later, not rejected

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return tableRows(records), nil
}
