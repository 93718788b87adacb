package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// SupplierResponse is the JSON shape of a supplier record.
type SupplierResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ClientID string `json:"client_id"`
}

// HandleSupplierList returns a handler that lists the suppliers of one client.
func HandleSupplierList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		clientID := e.Request.PathValue("clientId")
		if clientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing client ID"})
		}

		records, err := app.FindRecordsByFilter(
			"suppliers",
			"client = {:client}",
			"name", 0, 0,
			map[string]any{"client": clientID},
		)
		if err != nil {
			log.Printf("supplier_list: query failed for client %s: %v", clientID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		suppliers := make([]SupplierResponse, 0, len(records))
		for _, rec := range records {
			suppliers = append(suppliers, SupplierResponse{
				ID:       rec.Id,
				Name:     rec.GetString("name"),
				ClientID: rec.GetString("client"),
			})
		}
		return e.JSON(http.StatusOK, suppliers)
	}
}
