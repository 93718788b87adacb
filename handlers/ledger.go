package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// approvedItems loads every fully approved item, optionally narrowed to one
// client via a relation dot-path filter.
func approvedItems(app *pocketbase.PocketBase, clientID string) ([]*core.Record, error) {
	filter := "approval_status = 'approved_both'"
	params := map[string]any{}
	if clientID != "" {
		filter += " && cost_sheet.client = {:client}"
		params["client"] = clientID
	}
	return app.FindRecordsByFilter("cost_sheet_items", filter, "-created", 0, 0, params)
}

// HandleLedger returns a handler for the approved ledger view: all fully
// approved items rolled up into one row per client.
func HandleLedger(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		items, err := approvedItems(app, "")
		if err != nil {
			log.Printf("ledger: query failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		// Resolve sheet and client per item, caching lookups since many
		// items share the same sheet.
		sheetCache := map[string]*core.Record{}
		clientCache := map[string]*core.Record{}

		approved := make([]services.ApprovedItem, 0, len(items))
		for _, item := range items {
			sheetID := item.GetString("cost_sheet")
			sheet, ok := sheetCache[sheetID]
			if !ok {
				sheet, err = app.FindRecordById("cost_sheets", sheetID)
				if err != nil {
					log.Printf("ledger: sheet %s not found for item %s: %v", sheetID, item.Id, err)
					continue
				}
				sheetCache[sheetID] = sheet
			}

			clientID := sheet.GetString("client")
			client, ok := clientCache[clientID]
			if !ok {
				client, err = app.FindRecordById("clients", clientID)
				if err != nil {
					log.Printf("ledger: client %s not found: %v", clientID, err)
					continue
				}
				clientCache[clientID] = client
			}

			approved = append(approved, services.ApprovedItem{
				ClientID:    clientID,
				ClientName:  client.GetString("name"),
				SubmittedAt: sheet.GetString("submitted_at"),
				TotalCost:   item.GetFloat("total_cost"),
			})
		}

		entries := services.GroupApprovedByClient(approved)
		if entries == nil {
			entries = []services.ClientLedgerEntry{}
		}
		return e.JSON(http.StatusOK, entries)
	}
}

// HandleLedgerClient returns a handler for one client's approved items with
// their summary totals.
func HandleLedgerClient(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing client ID"})
		}

		items, err := approvedItems(app, clientID)
		if err != nil {
			log.Printf("ledger: query failed for client %s: %v", clientID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		responses := make([]ItemResponse, 0, len(items))
		forTotals := make([]services.ItemForTotals, 0, len(items))
		for _, item := range items {
			responses = append(responses, itemToResponse(item))
			forTotals = append(forTotals, services.ItemForTotals{
				TotalCost:   item.GetFloat("total_cost"),
				QuotedPrice: item.GetFloat("actual_quoted"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":  responses,
			"totals": services.CalcRecordTotals(forTotals),
		})
	}
}
