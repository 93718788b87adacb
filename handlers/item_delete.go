package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// HandleItemDelete returns a handler that removes a single line item.
// Admins may delete unconditionally; estimators only while the item is
// still editable.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		itemID := e.Request.PathValue("id")
		if itemID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing item ID"})
		}

		item, err := app.FindRecordById("cost_sheet_items", itemID)
		if err != nil {
			log.Printf("item_delete: could not find item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}

		sheet, err := app.FindRecordById("cost_sheets", item.GetString("cost_sheet"))
		if err != nil {
			log.Printf("item_delete: could not find sheet for item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Cost sheet not found"})
		}

		sheetStatus, err := services.ParseSheetStatus(sheet.GetString("status"))
		if err != nil {
			log.Printf("item_delete: sheet %s: %v", sheet.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		itemStatus, err := services.ParseApprovalStatus(item.GetString("approval_status"))
		if err != nil {
			log.Printf("item_delete: item %s: %v", item.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		if err := services.CheckDeleteItem(actor, sheetStatus, itemStatus); err != nil {
			return guardError(e, err)
		}

		if err := app.Delete(item); err != nil {
			log.Printf("item_delete: failed to delete item %s: %v", itemID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
