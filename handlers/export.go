package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// errClientNotFound separates a bad client ID from a store failure so the
// export handlers can answer 404 and 500 distinctly.
var errClientNotFound = errors.New("client not found")

// buildExportData fetches a client's approved items and assembles the
// ExportData for rendering. When an item is marked as chosen for quotation
// the admin-chosen supplier and cost values replace the estimator's.
func buildExportData(app *pocketbase.PocketBase, clientID string) (services.ExportData, error) {
	client, err := app.FindRecordById("clients", clientID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("client %s: %w", clientID, errClientNotFound)
	}

	items, err := approvedItems(app, clientID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("query approved items: %w", err)
	}

	supplierName := func(id string) string {
		if id == "" {
			return ""
		}
		rec, err := app.FindRecordById("suppliers", id)
		if err != nil {
			return ""
		}
		return rec.GetString("name")
	}

	var rows []services.ExportRow
	var forTotals []services.ItemForTotals
	for i, item := range items {
		row := services.ExportRow{
			ItemNumber:   i + 1,
			Date:         item.GetString("date"),
			Item:         item.GetString("item"),
			SupplierName: supplierName(item.GetString("supplier")),
			Qty:          item.GetFloat("qty"),
			SupplierCost: item.GetFloat("supplier_cost"),
			MiscCost:     item.GetFloat("misc_cost"),
			TotalCost:    item.GetFloat("total_cost"),
			Margin:       item.GetFloat("rea_margin"),
			QuotedPrice:  item.GetFloat("actual_quoted"),
		}

		if item.GetBool("admin_chosen_for_quotation") {
			row.SupplierName = supplierName(item.GetString("admin_chosen_supplier"))
			row.SupplierCost = item.GetFloat("admin_chosen_supplier_cost")
			row.MiscCost = item.GetFloat("admin_chosen_misc_cost")
			row.TotalCost = item.GetFloat("admin_chosen_total_cost")
			row.Margin = item.GetFloat("admin_chosen_rea_margin")
			row.QuotedPrice = item.GetFloat("admin_chosen_actual_quoted")
		}

		rows = append(rows, row)
		forTotals = append(forTotals, services.ItemForTotals{
			TotalCost:   row.TotalCost,
			QuotedPrice: row.QuotedPrice,
		})
	}

	return services.ExportData{
		ClientName:    client.GetString("name"),
		GeneratedDate: time.Now().Format("02 Jan 2006"),
		Rows:          rows,
		Totals:        services.CalcRecordTotals(forTotals),
	}, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleExportCSV returns a handler that generates and downloads a CSV file
// of a client's approved cost sheet.
func HandleExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.String(http.StatusBadRequest, "Missing client ID")
		}

		data, err := buildExportData(app, clientID)
		if err != nil {
			log.Printf("export_csv: %v", err)
			if errors.Is(err, errClientNotFound) {
				return e.String(http.StatusNotFound, "Client not found")
			}
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		csvBytes, err := services.GenerateCSV(data)
		if err != nil {
			log.Printf("export_csv: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate CSV file")
		}

		filename := fmt.Sprintf("CostSheet_%s_%d.csv", sanitizeFilename(data.ClientName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(csvBytes)
		return nil
	}
}

// HandleExportExcel returns a handler that generates and downloads an Excel
// file of a client's approved cost sheet.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.String(http.StatusBadRequest, "Missing client ID")
		}

		data, err := buildExportData(app, clientID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			if errors.Is(err, errClientNotFound) {
				return e.String(http.StatusNotFound, "Client not found")
			}
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("CostSheet_%s_%d.xlsx", sanitizeFilename(data.ClientName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleExportPDF returns a handler that generates and downloads a PDF file
// of a client's approved cost sheet.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.String(http.StatusBadRequest, "Missing client ID")
		}

		data, err := buildExportData(app, clientID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			if errors.Is(err, errClientNotFound) {
				return e.String(http.StatusNotFound, "Client not found")
			}
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("CostSheet_%s_%d.pdf", sanitizeFilename(data.ClientName), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
