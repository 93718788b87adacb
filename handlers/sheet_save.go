package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// ItemPayload carries the estimator-entered fields of one line item. A
// payload without an ID creates a new item; with an ID it updates the
// existing one.
type ItemPayload struct {
	ID                  string  `json:"id"`
	Date                string  `json:"date"`
	Item                string  `json:"item"`
	SupplierID          string  `json:"supplier_id"`
	MiscSupplierID      string  `json:"misc_supplier_id"`
	Qty                 float64 `json:"qty"`
	SupplierCost        float64 `json:"supplier_cost"`
	MiscQty             float64 `json:"misc_qty"`
	MiscCost            float64 `json:"misc_cost"`
	MiscCostType        string  `json:"misc_cost_type"`
	MiscDescription     string  `json:"misc_description"`
	MiscType            string  `json:"misc_type"`
	ReaMarginPercentage float64 `json:"rea_margin_percentage"`
}

// applyItemPayload writes the estimator fields and recomputed derived
// fields onto an item record. Derived values are always recomputed server
// side so the stored totals never trust the client.
func applyItemPayload(rec *core.Record, p ItemPayload) {
	totals := services.CalcItemTotals(services.ItemInputs{
		Qty:             p.Qty,
		SupplierCost:    p.SupplierCost,
		MiscQty:         p.MiscQty,
		MiscCost:        p.MiscCost,
		HasMiscSupplier: p.MiscSupplierID != "",
		MarkupPercent:   p.ReaMarginPercentage,
	})

	rec.Set("date", p.Date)
	rec.Set("item", p.Item)
	rec.Set("supplier", p.SupplierID)
	rec.Set("misc_supplier", p.MiscSupplierID)
	rec.Set("qty", p.Qty)
	rec.Set("supplier_cost", p.SupplierCost)
	rec.Set("misc_qty", p.MiscQty)
	rec.Set("misc_cost", p.MiscCost)
	rec.Set("misc_cost_type", p.MiscCostType)
	rec.Set("misc_description", p.MiscDescription)
	rec.Set("misc_type", p.MiscType)
	rec.Set("total_cost", totals.TotalCost)
	rec.Set("rea_margin_percentage", p.ReaMarginPercentage)
	rec.Set("rea_margin", totals.MarkupAmount)
	rec.Set("actual_quoted", totals.QuotedPrice)
}

// guardError maps a workflow guard failure to the matching HTTP status.
func guardError(e *core.RequestEvent, err error) error {
	status := http.StatusForbidden
	switch {
	case errors.Is(err, services.ErrSheetNotEditable),
		errors.Is(err, services.ErrSheetNotDraft),
		errors.Is(err, services.ErrSheetNotSubmitted),
		errors.Is(err, services.ErrItemNotPending),
		errors.Is(err, services.ErrItemApproved),
		errors.Is(err, services.ErrNoItems):
		status = http.StatusConflict
	}
	return e.JSON(status, map[string]string{"error": err.Error()})
}

// HandleSheetSave returns a handler that persists the estimator's working
// view: the sheet is created in draft on first save and each item payload
// is either inserted or updated with server-recomputed totals.
func HandleSheetSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)

		var body struct {
			ClientID string        `json:"client_id"`
			Items    []ItemPayload `json:"items"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if body.ClientID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing client ID"})
		}

		if _, err := app.FindRecordById("clients", body.ClientID); err != nil {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Client not found"})
		}

		// Find the client's working sheet, or create one in draft.
		sheets, err := app.FindRecordsByFilter(
			"cost_sheets",
			"client = {:client}",
			"-created", 1, 0,
			map[string]any{"client": body.ClientID},
		)
		if err != nil {
			log.Printf("sheet_save: sheet query failed: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		var sheet *core.Record
		if len(sheets) > 0 {
			sheet = sheets[0]
		} else {
			if actor.Role != services.RoleEstimator {
				return guardError(e, services.ErrNotEstimator)
			}
			col, err := app.FindCollectionByNameOrId("cost_sheets")
			if err != nil {
				log.Printf("sheet_save: cost_sheets collection not found: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
			sheet = core.NewRecord(col)
			sheet.Set("client", body.ClientID)
			sheet.Set("created_by", actor.ID)
			sheet.Set("status", string(services.SheetDraft))
			if err := app.Save(sheet); err != nil {
				log.Printf("sheet_save: failed to create sheet: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
		}

		sheetStatus, err := services.ParseSheetStatus(sheet.GetString("status"))
		if err != nil {
			log.Printf("sheet_save: sheet %s: %v", sheet.Id, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		itemsCol, err := app.FindCollectionByNameOrId("cost_sheet_items")
		if err != nil {
			log.Printf("sheet_save: cost_sheet_items collection not found: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		existingCount := len(mustFindSheetItems(app, sheet.Id))

		saved := make([]ItemResponse, 0, len(body.Items))
		for _, p := range body.Items {
			var rec *core.Record
			if p.ID == "" {
				if err := services.CheckCreateItem(actor, sheetStatus); err != nil {
					return guardError(e, err)
				}
				rec = core.NewRecord(itemsCol)
				rec.Set("cost_sheet", sheet.Id)
				rec.Set("item_number", services.NextItemNumber(existingCount))
				rec.Set("approval_status", string(services.ApprovalPending))
				existingCount++

				// New rows default to quantity 1 when left blank.
				if p.Qty == 0 {
					p.Qty = 1
				}
				if p.MiscSupplierID != "" && p.MiscQty == 0 {
					p.MiscQty = 1
				}
			} else {
				rec, err = app.FindRecordById("cost_sheet_items", p.ID)
				if err != nil {
					return e.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
				}
				if rec.GetString("cost_sheet") != sheet.Id {
					return e.JSON(http.StatusBadRequest, map[string]string{"error": "Item does not belong to this sheet"})
				}
				itemStatus, err := services.ParseApprovalStatus(rec.GetString("approval_status"))
				if err != nil {
					log.Printf("sheet_save: item %s: %v", rec.Id, err)
					return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
				}
				if err := services.CheckEditItem(actor, sheetStatus, itemStatus); err != nil {
					return guardError(e, err)
				}
			}

			applyItemPayload(rec, p)
			if err := app.Save(rec); err != nil {
				log.Printf("sheet_save: failed to save item: %v", err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
			saved = append(saved, itemToResponse(rec))
		}

		return e.JSON(http.StatusOK, SheetResponse{
			ID:          sheet.Id,
			ClientID:    sheet.GetString("client"),
			CreatedBy:   sheet.GetString("created_by"),
			Status:      sheet.GetString("status"),
			SubmittedAt: sheet.GetString("submitted_at"),
			Items:       saved,
		})
	}
}

// mustFindSheetItems loads all items of a sheet, treating query failure as
// an empty result.
func mustFindSheetItems(app *pocketbase.PocketBase, sheetID string) []*core.Record {
	items, err := app.FindRecordsByFilter(
		"cost_sheet_items",
		"cost_sheet = {:sheet}",
		"item_number", 0, 0,
		map[string]any{"sheet": sheetID},
	)
	if err != nil {
		return nil
	}
	return items
}
