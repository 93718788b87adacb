package collections_test

import (
	"testing"

	"costsheets/collections"
	"costsheets/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"clients",
	"suppliers",
	"cost_sheets",
	"cost_sheet_items",
	"user_roles",
	"notifications",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_ClientsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("clients")

	for _, f := range []string{"name", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("clients: missing field %q", f)
		}
	}
}

func TestSetup_SuppliersFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("suppliers")

	for _, f := range []string{"name", "client", "created"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("suppliers: missing field %q", f)
		}
	}

	clientField := col.Fields.GetByName("client")
	if rf, ok := clientField.(*core.RelationField); ok {
		if rf.MaxSelect != 1 {
			t.Errorf("suppliers.client: expected MaxSelect=1, got %d", rf.MaxSelect)
		}
	} else {
		t.Errorf("suppliers.client is not a RelationField")
	}
}

func TestSetup_CostSheetsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("cost_sheets")

	fields := []string{"client", "created_by", "status", "submitted_at", "created", "updated"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("cost_sheets: missing field %q", f)
		}
	}

	// Verify status is a select field with expected values
	statusField := col.Fields.GetByName("status")
	if sf, ok := statusField.(*core.SelectField); ok {
		expected := map[string]bool{"draft": true, "submitted": true, "approved": true, "rejected": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected status value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing status value: %q", v)
		}
	} else {
		t.Errorf("status field is not a SelectField")
	}
}

func TestSetup_CostSheetItemsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("cost_sheet_items")

	fields := []string{
		"cost_sheet", "item_number", "date", "item",
		"supplier", "misc_supplier",
		"qty", "supplier_cost", "misc_qty", "misc_cost",
		"misc_cost_type", "misc_description", "misc_type",
		"total_cost", "rea_margin_percentage", "rea_margin", "actual_quoted",
		"approval_status", "approved_by_admin_a", "approved_by_admin_b",
		"admin_remarks", "admin_quotation_notes", "admin_chosen_for_quotation",
		"admin_chosen_supplier", "admin_chosen_misc_supplier",
		"admin_chosen_supplier_cost", "admin_chosen_misc_cost",
		"admin_chosen_total_cost", "admin_chosen_rea_margin", "admin_chosen_actual_quoted",
		"created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("cost_sheet_items: missing field %q", f)
		}
	}

	// approval_status select field carries all five workflow states
	statusField := col.Fields.GetByName("approval_status")
	if sf, ok := statusField.(*core.SelectField); ok {
		if len(sf.Values) != 5 {
			t.Errorf("cost_sheet_items.approval_status: expected 5 values, got %d", len(sf.Values))
		}
	} else {
		t.Errorf("approval_status field is not a SelectField")
	}

	// cost_sheet relation
	sheetField := col.Fields.GetByName("cost_sheet")
	if rf, ok := sheetField.(*core.RelationField); ok {
		if rf.MaxSelect != 1 {
			t.Errorf("cost_sheet_items.cost_sheet: expected MaxSelect=1, got %d", rf.MaxSelect)
		}
	} else {
		t.Errorf("cost_sheet_items.cost_sheet is not a RelationField")
	}
}

func TestSetup_UserRolesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("user_roles")

	for _, f := range []string{"user_id", "email", "role"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("user_roles: missing field %q", f)
		}
	}

	roleField := col.Fields.GetByName("role")
	if sf, ok := roleField.(*core.SelectField); ok {
		if len(sf.Values) != 2 {
			t.Errorf("user_roles.role: expected 2 values, got %d", len(sf.Values))
		}
	} else {
		t.Errorf("role field is not a SelectField")
	}
}

func TestSetup_NotificationsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("notifications")

	for _, f := range []string{"user_id", "title", "message", "type", "read", "created"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("notifications: missing field %q", f)
		}
	}

	typeField := col.Fields.GetByName("type")
	if sf, ok := typeField.(*core.SelectField); ok {
		expected := []string{"approval_request", "approval", "rejection"}
		if len(sf.Values) != len(expected) {
			t.Errorf("notifications.type: expected %d values, got %d", len(expected), len(sf.Values))
		}
	}
}

func TestSetup_ClientNameUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestClient(t, app, "Emaar Properties")

	col, _ := app.FindCollectionByNameOrId("clients")
	dup := core.NewRecord(col)
	dup.Set("name", "Emaar Properties")
	if err := app.Save(dup); err == nil {
		t.Error("expected unique index to reject a duplicate client name")
	}
}

func TestSetup_UserRoleUserIDUnique(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateTestUserRole(t, app, "est-1", "estimator")

	col, _ := app.FindCollectionByNameOrId("user_roles")
	dup := core.NewRecord(col)
	dup.Set("user_id", "est-1")
	dup.Set("role", "admin")
	if err := app.Save(dup); err == nil {
		t.Error("expected unique index to reject a duplicate user_id")
	}
}
