package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the clients, suppliers,
// cost_sheets, cost_sheet_items, user_roles and notifications
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	clients := ensureCollection(app, "clients", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_clients_name", true, "name", "")
	})

	suppliers := ensureCollection(app, "suppliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "client",
			Required:     true,
			CollectionId: clients.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	costSheets := ensureCollection(app, "cost_sheets", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "client",
			Required:     true,
			CollectionId: clients.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "created_by", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "submitted", "approved", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "submitted_at", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "cost_sheet_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "cost_sheet",
			Required:     true,
			CollectionId: costSheets.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "item_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.TextField{Name: "item", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "supplier",
			Required:     false,
			CollectionId: suppliers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "misc_supplier",
			Required:     false,
			CollectionId: suppliers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "supplier_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "misc_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "misc_cost", Required: false})
		c.Fields.Add(&core.TextField{Name: "misc_cost_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "misc_description", Required: false})
		c.Fields.Add(&core.TextField{Name: "misc_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rea_margin_percentage", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rea_margin", Required: false})
		c.Fields.Add(&core.NumberField{Name: "actual_quoted", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "approval_status",
			Required:  true,
			Values:    []string{"pending", "approved_admin_a", "approved_admin_b", "approved_both", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "approved_by_admin_a"})
		c.Fields.Add(&core.BoolField{Name: "approved_by_admin_b"})
		c.Fields.Add(&core.TextField{Name: "admin_remarks", Required: false})
		c.Fields.Add(&core.TextField{Name: "admin_quotation_notes", Required: false})
		c.Fields.Add(&core.BoolField{Name: "admin_chosen_for_quotation"})
		c.Fields.Add(&core.RelationField{
			Name:         "admin_chosen_supplier",
			Required:     false,
			CollectionId: suppliers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "admin_chosen_misc_supplier",
			Required:     false,
			CollectionId: suppliers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "admin_chosen_supplier_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "admin_chosen_misc_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "admin_chosen_total_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "admin_chosen_rea_margin", Required: false})
		c.Fields.Add(&core.NumberField{Name: "admin_chosen_actual_quoted", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "user_roles", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "user_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"estimator", "admin"},
			MaxSelect: 1,
		})
		c.AddIndex("idx_user_roles_user_id", true, "user_id", "")
	})

	ensureCollection(app, "notifications", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "user_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "message", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"approval_request", "approval", "rejection"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "read"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
