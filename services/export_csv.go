package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// GenerateCSV renders an approved cost sheet as CSV with the standard
// export columns. Monetary cells carry the fixed currency label so the
// file matches the tabular PDF rendition.
func GenerateCSV(data ExportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range data.Rows {
		record := []string{
			strconv.Itoa(r.ItemNumber),
			r.Date,
			r.Item,
			r.SupplierName,
			formatQty(r.Qty),
			FormatAED(r.SupplierCost),
			FormatAED(r.MiscCost),
			FormatAED(r.TotalCost),
			FormatAED(r.Margin),
			FormatAED(r.QuotedPrice),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", r.ItemNumber, err)
		}
	}

	// Trailing summary row mirrors the totals strip of the records view.
	summary := []string{
		"", "", "", "Total", strconv.Itoa(data.Totals.TotalItems),
		"", "", FormatAED(data.Totals.TotalCost), "", FormatAED(data.Totals.TotalQuoted),
	}
	if err := w.Write(summary); err != nil {
		return nil, fmt.Errorf("write csv summary: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
