package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSupplierDelete returns a handler that removes a supplier from a
// client's pool. Items that already reference the supplier keep their
// stored costs.
func HandleSupplierDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		supplierID := e.Request.PathValue("id")
		if supplierID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing supplier ID"})
		}

		rec, err := app.FindRecordById("suppliers", supplierID)
		if err != nil {
			log.Printf("supplier_delete: could not find supplier %s: %v", supplierID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Supplier not found"})
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("supplier_delete: failed to delete supplier %s: %v", supplierID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
