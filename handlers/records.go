package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// HandleClientRecords returns a handler for the records view: every line
// item ever authored for a client, regardless of approval state, with
// summary totals across them.
func HandleClientRecords(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing client ID"})
		}

		items, err := app.FindRecordsByFilter(
			"cost_sheet_items",
			"cost_sheet.client = {:client}",
			"-created", 0, 0,
			map[string]any{"client": clientID},
		)
		if err != nil {
			log.Printf("records: query failed for client %s: %v", clientID, err)
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
