package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// HandleSheetSubmit returns a handler that moves a draft sheet into the
// approval queue. Every admin gets a notification referencing the client.
func HandleSheetSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing sheet ID"})
		}

		sheet, err := app.FindRecordById("cost_sheets", sheetID)
		if err != nil {
			log.Printf("sheet_submit: could not find sheet %s: %v", sheetID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Cost sheet not found"})
		}

		items := mustFindSheetItems(app, sheet.Id)
		sheetStatus, err := services.ParseSheetStatus(sheet.GetString("status"))
		if err != nil {
			log.Printf("sheet_submit: sheet %s: %v", sheet.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}
		if err := services.CheckSubmitSheet(actor, sheetStatus, len(items)); err != nil {
			return guardError(e, err)
		}

		sheet.Set("status", string(services.SheetSubmitted))
		sheet.Set("submitted_at", time.Now().UTC().Format(time.RFC3339))
		if err := app.Save(sheet); err != nil {
			log.Printf("sheet_submit: failed to save sheet %s: %v", sheetID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		clientName := ""
		if client, err := app.FindRecordById("clients", sheet.GetString("client")); err == nil {
			clientName = client.GetString("name")
		}

		message := fmt.Sprintf("A cost sheet for %s with %d item(s) is awaiting your approval.", clientName, len(items))
		if err := notifyAdmins(app, "📋 New Cost Sheet Awaiting Approval", message, "approval_request"); err != nil {
			// The submit already succeeded; notification failure is logged only.
			log.Printf("sheet_submit: failed to notify admins: %v", err)
		}

		return e.JSON(http.StatusOK, map[string]string{
			"status":       sheet.GetString("status"),
			"submitted_at": sheet.GetString("submitted_at"),
		})
	}
}
