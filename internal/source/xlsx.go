package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"
)

// XLSXSource reads the transaction table from one worksheet of a local xlsx
// workbook. The first row is the header row.
type XLSXSource struct {
	path  string
	sheet string
}

// NewXLSXSource creates a source for the given workbook path and worksheet
// name.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// Fetch opens the workbook and returns its rows. A missing workbook or
// worksheet is a source failure; a worksheet with only a header row yields an
// empty result.
func (s *XLSXSource) Fetch(_ context.Context) ([]dataquality.Row, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %q: %w", s.path, err)
	}
	defer f.Close()

	records, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", s.sheet, err)
	}

	return tableRows(records), nil
}
