package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// HandleItemReject returns a handler that rejects a pending item of a
// submitted sheet. The item stays editable by the estimator; there is no
// automatic re-submission. Optional remarks from the admin are stored on
// the item and included in the creator's notification.
func HandleItemReject(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		itemID := e.Request.PathValue("id")
		if itemID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing item ID"})
		}

		var body struct {
			Remarks string `json:"remarks"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		item, err := app.FindRecordById("cost_sheet_items", itemID)
		if err != nil {
			log.Printf("item_reject: could not find item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}

		sheet, err := app.FindRecordById("cost_sheets", item.GetString("cost_sheet"))
		if err != nil {
			log.Printf("item_reject: could not find sheet for item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Cost sheet not found"})
		}

		sheetStatus, err := services.ParseSheetStatus(sheet.GetString("status"))
		if err != nil {
			log.Printf("item_reject: sheet %s: %v", sheet.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		itemStatus, err := services.ParseApprovalStatus(item.GetString("approval_status"))
		if err != nil {
			log.Printf("item_reject: item %s: %v", item.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		if err := services.CheckRejectItem(actor, sheetStatus, itemStatus); err != nil {
			return guardError(e, err)
		}

		item.Set("approval_status", string(services.ApprovalRejected))
		if body.Remarks != "" {
			item.Set("admin_remarks", body.Remarks)
		}
		if err := app.Save(item); err != nil {
			log.Printf("item_reject: failed to save item %s: %v", itemID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		message := fmt.Sprintf("%q was rejected.", item.GetString("item"))
		if body.Remarks != "" {
			message = fmt.Sprintf("%q was rejected: %s", item.GetString("item"), body.Remarks)
		}
		if err := createNotification(app, sheet.GetString("created_by"), "❌ Item Rejected", message, "rejection"); err != nil {
			log.Printf("item_reject: failed to notify creator: %v", err)
		}

		return e.JSON(http.StatusOK, itemToResponse(item))
	}
}
