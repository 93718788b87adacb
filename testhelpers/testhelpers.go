// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestClient creates a client record with the given name and returns it.
func CreateTestClient(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		t.Fatalf("failed to find clients collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test client: %v", err)
	}

	return record
}

// CreateTestSupplier creates a supplier record linked to a client and returns it.
func CreateTestSupplier(t *testing.T, app *pocketbase.PocketBase, clientID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		t.Fatalf("failed to find suppliers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("client", clientID)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test supplier: %v", err)
	}

	return record
}

// CreateTestSheet creates a cost sheet record in the given status.
func CreateTestSheet(t *testing.T, app *pocketbase.PocketBase, clientID, createdBy, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cost_sheets")
	if err != nil {
		t.Fatalf("failed to find cost_sheets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("client", clientID)
	record.Set("created_by", createdBy)
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test cost sheet: %v", err)
	}

	return record
}

// CreateTestItem creates a cost sheet item with sensible pricing defaults.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, sheetID string, number int, approvalStatus string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cost_sheet_items")
	if err != nil {
		t.Fatalf("failed to find cost_sheet_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("cost_sheet", sheetID)
	record.Set("item_number", number)
	record.Set("date", "2025-11-01")
	record.Set("item", "Test line item")
	record.Set("qty", 2.0)
	record.Set("supplier_cost", 500.0)
	record.Set("total_cost", 1000.0)
	record.Set("rea_margin_percentage", 20.0)
	record.Set("rea_margin", 200.0)
	record.Set("actual_quoted", 1200.0)
	record.Set("approval_status", approvalStatus)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// CreateTestUserRole creates a user_roles record for the given user.
func CreateTestUserRole(t *testing.T, app *pocketbase.PocketBase, userID, role string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("user_roles")
	if err != nil {
		t.Fatalf("failed to find user_roles collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("user_id", userID)
	record.Set("email", userID+"@example.com")
	record.Set("role", role)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user role: %v", err)
	}

	return record
}

// CountNotifications returns the number of notifications stored for a user.
func CountNotifications(t *testing.T, app *pocketbase.PocketBase, userID string) int {
	t.Helper()

	records, err := app.FindRecordsByFilter(
		"notifications",
		"user_id = {:user}",
		"-created",
		0,
		0,
		map[string]any{"user": userID},
	)
	if err != nil {
		t.Fatalf("failed to query notifications: %v", err)
	}
	return len(records)
}
