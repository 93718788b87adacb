package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ClientResponse is the JSON shape of a client record.
type ClientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleClientList returns a handler that lists all clients ordered by name.
func HandleClientList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("clients")
		if err != nil {
			log.Printf("client_list: clients collection not found: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "name", 0, 0)
		if err != nil {
			log.Printf("client_list: query failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		clients := make([]ClientResponse, 0, len(records))
		for _, rec := range records {
			clients = append(clients, ClientResponse{
				ID:   rec.Id,
				Name: rec.GetString("name"),
			})
		}
		return e.JSON(http.StatusOK, clients)
	}
}
