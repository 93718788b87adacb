package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// HandleItemQuotation returns a handler that records the admin's chosen
// supplier/cost overrides for quotation. The estimator's canonical values
// stay untouched; exports substitute the chosen values when the item is
// marked as chosen for quotation.
func HandleItemQuotation(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := GetActor(e.Request)
		if actor.Role != services.RoleAdmin {
			return guardError(e, services.ErrNotAdmin)
		}

		itemID := e.Request.PathValue("id")
		if itemID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing item ID"})
		}

		var body struct {
			ChosenForQuotation bool    `json:"chosen_for_quotation"`
			SupplierID         string  `json:"supplier_id"`
			MiscSupplierID     string  `json:"misc_supplier_id"`
			SupplierCost       float64 `json:"supplier_cost"`
			MiscCost           float64 `json:"misc_cost"`
			Notes              string  `json:"notes"`
		}
		if err := e.BindBody(&body); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		item, err := app.FindRecordById("cost_sheet_items", itemID)
		if err != nil {
			log.Printf("item_quotation: could not find item %s: %v", itemID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}

		item.Set("admin_chosen_for_quotation", body.ChosenForQuotation)
		item.Set("admin_quotation_notes", body.Notes)

		if body.ChosenForQuotation {
			// Recompute the override totals with the item's own quantities
			// and markup, swapping only the chosen cost inputs.
			totals := services.CalcItemTotals(services.ItemInputs{
				Qty:             item.GetFloat("qty"),
				SupplierCost:    body.SupplierCost,
				MiscQty:         item.GetFloat("misc_qty"),
				MiscCost:        body.MiscCost,
				HasMiscSupplier: body.MiscSupplierID != "",
				MarkupPercent:   item.GetFloat("rea_margin_percentage"),
			})

			item.Set("admin_chosen_supplier", body.SupplierID)
			item.Set("admin_chosen_misc_supplier", body.MiscSupplierID)
			item.Set("admin_chosen_supplier_cost", body.SupplierCost)
			item.Set("admin_chosen_misc_cost", body.MiscCost)
			item.Set("admin_chosen_total_cost", totals.TotalCost)
			item.Set("admin_chosen_rea_margin", totals.MarkupAmount)
			item.Set("admin_chosen_actual_quoted", totals.QuotedPrice)
		} else {
			item.Set("admin_chosen_supplier", "")
			item.Set("admin_chosen_misc_supplier", "")
			item.Set("admin_chosen_supplier_cost", 0)
			item.Set("admin_chosen_misc_cost", 0)
			item.Set("admin_chosen_total_cost", 0)
			item.Set("admin_chosen_rea_margin", 0)
			item.Set("admin_chosen_actual_quoted", 0)
		}

		if err := app.Save(item); err != nil {
			log.Printf("item_quotation: failed to save item %s: %v", itemID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, itemToResponse(item))
	}
}
