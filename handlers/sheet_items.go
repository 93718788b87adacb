package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ItemResponse is the JSON shape of a cost sheet item.
type ItemResponse struct {
	ID                  string  `json:"id"`
	ItemNumber          int     `json:"item_number"`
	Date                string  `json:"date"`
	Item                string  `json:"item"`
	SupplierID          string  `json:"supplier_id"`
	MiscSupplierID      string  `json:"misc_supplier_id"`
	Qty                 float64 `json:"qty"`
	SupplierCost        float64 `json:"supplier_cost"`
	MiscQty             float64 `json:"misc_qty"`
	MiscCost            float64 `json:"misc_cost"`
	MiscCostType        string  `json:"misc_cost_type"`
	MiscDescription     string  `json:"misc_description"`
	MiscType            string  `json:"misc_type"`
	TotalCost           float64 `json:"total_cost"`
	ReaMarginPercentage float64 `json:"rea_margin_percentage"`
	ReaMargin           float64 `json:"rea_margin"`
	ActualQuoted        float64 `json:"actual_quoted"`
	ApprovalStatus      string  `json:"approval_status"`
	AdminRemarks        string  `json:"admin_remarks"`
}

// SheetResponse is the JSON shape of a cost sheet with its active items.
type SheetResponse struct {
	ID          string         `json:"id"`
	ClientID    string         `json:"client_id"`
	CreatedBy   string         `json:"created_by"`
	Status      string         `json:"status"`
	SubmittedAt string         `json:"submitted_at"`
	Items       []ItemResponse `json:"items"`
}

// itemToResponse maps a stored item record to its JSON shape.
func itemToResponse(rec *core.Record) ItemResponse {
	return ItemResponse{
		ID:                  rec.Id,
		ItemNumber:          int(rec.GetFloat("item_number")),
		Date:                rec.GetString("date"),
		Item:                rec.GetString("item"),
		SupplierID:          rec.GetString("supplier"),
		MiscSupplierID:      rec.GetString("misc_supplier"),
		Qty:                 rec.GetFloat("qty"),
		SupplierCost:        rec.GetFloat("supplier_cost"),
		MiscQty:             rec.GetFloat("misc_qty"),
		MiscCost:            rec.GetFloat("misc_cost"),
		MiscCostType:        rec.GetString("misc_cost_type"),
		MiscDescription:     rec.GetString("misc_description"),
		MiscType:            rec.GetString("misc_type"),
		TotalCost:           rec.GetFloat("total_cost"),
		ReaMarginPercentage: rec.GetFloat("rea_margin_percentage"),
		ReaMargin:           rec.GetFloat("rea_margin"),
		ActualQuoted:        rec.GetFloat("actual_quoted"),
		ApprovalStatus:      rec.GetString("approval_status"),
		AdminRemarks:        rec.GetString("admin_remarks"),
	}
}

// HandleSheetItems returns a handler that loads the working cost sheet for a
// client. Fully approved items are filtered out of the active view; they
// surface only in the approved ledger.
func HandleSheetItems(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing client ID"})
		}

		sheets, err := app.FindRecordsByFilter(
			"cost_sheets",
			"client = {:client}",
			"-created", 1, 0,
			map[string]any{"client": clientID},
		)
		if err != nil {
			log.Printf("sheet_items: query failed for client %s: %v", clientID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		if len(sheets) == 0 {
			// No sheet yet; the first save will create one.
			return e.JSON(http.StatusOK, SheetResponse{ClientID: clientID, Items: []ItemResponse{}})
		}

		sheet := sheets[0]
		items, err := app.FindRecordsByFilter(
			"cost_sheet_items",
			"cost_sheet = {:sheet} && approval_status != 'approved_both'",
			"item_number", 0, 0,
			map[string]any{"sheet": sheet.Id},
		)
		if err != nil {
			log.Printf("sheet_items: items query failed for sheet %s: %v", sheet.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		resp := SheetResponse{
			ID:          sheet.Id,
			ClientID:    sheet.GetString("client"),
			CreatedBy:   sheet.GetString("created_by"),
			Status:      sheet.GetString("status"),
			SubmittedAt: sheet.GetString("submitted_at"),
			Items:       make([]ItemResponse, 0, len(items)),
		}
		for _, rec := range items {
			resp.Items = append(resp.Items, itemToResponse(rec))
		}
		return e.JSON(http.StatusOK, resp)
	}
}
