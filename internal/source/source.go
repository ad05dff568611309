// Package source implements the pluggable transaction sources: a local xlsx
// workbook, a local CSV file and a Google Sheets CSV export fetched over
// HTTP. All of them return header-to-value rows for the cleaning pipeline.
//
// A source error means "unavailable" (connectivity, permissions, missing
// file); a readable table with no data rows is returned as an empty slice
// and is not an error.
package source

import "github.com/rodrigoBaranda/PersonalPortfolio/internal/dataquality"

// tableRows converts a header row plus data rows into the map-per-row shape
// the cleaning pipeline consumes. Short data rows are padded with empty
// cells; columns with blank headers are skipped.
func tableRows(records [][]string) []dataquality.Row {
	if len(records) < 2 {
		return []dataquality.Row{}
	}

	headers := records[0]
	rows := make([]dataquality.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(dataquality.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
