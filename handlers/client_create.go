package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleClientCreate returns a handler that creates a new client.
// Client names are unique; a duplicate gets a distinct conflict response
// rather than the generic failure message.
func HandleClientCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		name := strings.TrimSpace(body.Name)
		if name == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Client name is required"})
		}

		// Check for an existing client first so the duplicate case gets a
		// clear message instead of a raw index violation.
		existing, err := app.FindRecordsByFilter(
			"clients",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": name},
		)
		if err == nil && len(existing) > 0 {
			return e.JSON(http.StatusConflict, map[string]string{"error": "A client with this name already exists"})
		}

		col, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_create: clients collection not found: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		rec := core.NewRecord(col)
		rec.Set("name", name)
		if err := app.Save(rec); err != nil {
			// The unique index still backstops a concurrent insert.
			log.Printf("client_create: failed to save client %q: %v", name, err)
			return e.JSON(http.StatusConflict, map[string]string{"error": "A client with this name already exists"})
		}

		return e.JSON(http.StatusOK, ClientResponse{ID: rec.Id, Name: rec.GetString("name")})
	}
}
