package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSupplierCreate returns a handler that adds a supplier to a client's pool.
func HandleSupplierCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body struct {
			Name     string `json:"name"`
			ClientID string `json:"client_id"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Supplier name is required"})
		}
		if body.ClientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing client ID"})
		}

		if _, err := app.FindRecordById("clients", body.ClientID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Client not found"})
		}

		col, err := app.FindCollectionByNameOrId("suppliers")
		if err != nil {
			log.Printf("supplier_create: suppliers collection not found: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		rec.Set("client", body.ClientID)
		if err := app.Save(rec); err != nil {
			log.Printf("supplier_create: failed to save supplier %q: %v", name, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, SupplierResponse{
			ID:       rec.Id,
			Name:     rec.GetString("name"),
			ClientID: rec.GetString("client"),
		})
	}
}
