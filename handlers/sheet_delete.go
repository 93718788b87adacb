package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSheetDelete returns a handler that deletes a cost sheet and all of
// its items. Items are removed before the sheet record to satisfy
// referential integrity; if the sheet deletion then fails the two cases
// get distinct failure messages so the caller knows an emptied sheet
// remains behind.
func HandleSheetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing sheet ID"})
		}

		sheet, err := app.FindRecordById("cost_sheets", sheetID)
		if err != nil {
			log.Printf("sheet_delete: could not find sheet %s: %v", sheetID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Cost sheet not found"})
		}

		for _, item := range mustFindSheetItems(app, sheet.Id) {
			if err := app.Delete(item); err != nil {
				log.Printf("sheet_delete: failed to delete item %s: %v", item.Id, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete cost sheet items"})
			}
		}

		if err := app.Delete(sheet); err != nil {
			log.Printf("sheet_delete: failed to delete sheet %s: %v", sheetID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Items were deleted but the cost sheet could not be removed"})
		}

		return e.JSON(http.StatusOK, map[string]string{"status": "deleted"})
	}
}
