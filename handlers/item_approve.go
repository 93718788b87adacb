package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// HandleItemApprove returns a handler that approves a pending item of a
// submitted sheet. Approval is single-stage: one admin action moves the
// item straight to approved_both. The sheet's creator is notified with the
// resolved supplier name and quoted price.
func HandleItemApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		itemID := e.Request.PathValue("id")
		if itemID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing item ID"})
		}

		item, err := app.FindRecordById("cost_sheet_items", itemID)
		if err != nil {
			log.Printf("item_approve: could not find item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}

		sheet, err := app.FindRecordById("cost_sheets", item.GetString("cost_sheet"))
		if err != nil {
			log.Printf("item_approve: could not find sheet for item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Cost sheet not found"})
		}

		sheetStatus, err := services.ParseSheetStatus(sheet.GetString("status"))
		if err != nil {
			log.Printf("item_approve: sheet %s: %v", sheet.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		itemStatus, err := services.ParseApprovalStatus(item.GetString("approval_status"))
		if err != nil {
			log.Printf("item_approve: item %s: %v", item.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		if err := services.CheckApproveItem(actor, sheetStatus, itemStatus); err != nil {
			return guardError(e, err)
		}

		item.Set("approval_status", string(services.ApproveTarget()))
		item.Set("approved_by_admin_a", true)
		item.Set("approved_by_admin_b", true)
		if err := app.Save(item); err != nil {
			log.Printf("item_approve: failed to save item %s: %v", itemID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		supplierName := "No supplier"
		if supplier, err := app.FindRecordById("suppliers", item.GetString("supplier")); err == nil {
			supplierName = supplier.GetString("name")
		}
		message := fmt.Sprintf("%q (%s) was approved at %s.",
			item.GetString("item"), supplierName, services.FormatAED(item.GetFloat("actual_quoted")))
		if err := createNotification(app, sheet.GetString("created_by"), "✅ Item Approved", message, "approval"); err != nil {
			log.Printf("item_approve: failed to notify creator: %v", err)
		}

		return e.JSON(http.StatusOK, itemToResponse(item))
	}
}
