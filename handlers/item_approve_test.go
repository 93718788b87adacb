package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"costsheets/testhelpers"
)

func TestHandleItemApprove_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "pending")
	handler := HandleItemApprove(app)

	req := withActor(httptest.NewRequest(http.MethodPost, "/api/items/"+item.Id+"/approve", nil), testAdmin)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, _ := app.FindRecordById("cost_sheet_items", item.Id)
	if updated.GetString("approval_status") != "approved_both" {
		t.Errorf("expected approved_both, got %q", updated.GetString("approval_status"))
	}

	// The sheet's creator gets a notification with the quoted price.
	notifs, err := app.FindRecordsByFilter(
		"notifications", "user_id = {:user}", "", 0, 0,
		map[string]any{"user": testEstimator.ID},
	)
	if err != nil || len(notifs) != 1 {
		t.Fatalf("expected 1 creator notification, got %d (err %v)", len(notifs), err)
	}
	if notifs[0].GetString("type") != "approval" {
		t.Errorf("expected approval type, got %q", notifs[0].GetString("type"))
	}
	if !strings.Contains(notifs[0].GetString("message"), "AED 1,200.00") {
		t.Errorf("expected formatted quoted price in message, got %q", notifs[0].GetString("message"))
	}
}

func TestHandleItemApprove_SheetNotSubmitted(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "draft")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "pending")
	handler := HandleItemApprove(app)

	req := withActor(httptest.NewRequest(http.MethodPost, "/api/items/"+item.Id+"/approve", nil), testAdmin)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for draft sheet, got %d", rec.Code)
	}

	// The item must be untouched.
	updated, _ := app.FindRecordById("cost_sheet_items", item.Id)
	if updated.GetString("approval_status") != "pending" {
		t.Errorf("expected item to stay pending, got %q", updated.GetString("approval_status"))
	}
}

func TestHandleItemApprove_AlreadyDecided(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "approved_both")
	handler := HandleItemApprove(app)

	req := withActor(httptest.NewRequest(http.MethodPost, "/api/items/"+item.Id+"/approve", nil), testAdmin)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for non-pending item, got %d", rec.Code)
	}
}

func TestHandleItemApprove_EstimatorForbidden(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "pending")
	handler := HandleItemApprove(app)

	req := withActor(httptest.NewRequest(http.MethodPost, "/api/items/"+item.Id+"/approve", nil), testEstimator)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for estimator approval, got %d", rec.Code)
	}
}

func TestHandleItemApprove_CorruptStoredStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "pending")
	handler := HandleItemApprove(app)

	// Plant a value outside the approval enum, bypassing schema validation.
	item.Set("approval_status", "bogus")
	if err := app.SaveNoValidate(item); err != nil {
		t.Fatalf("save corrupt item: %v", err)
	}

	req := withActor(httptest.NewRequest(http.MethodPost, "/api/items/"+item.Id+"/approve", nil), testAdmin)
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for corrupt item status, got %d", rec.Code)
	}

	// Same for a sheet status outside the enum.
	item.Set("approval_status", "pending")
	if err := app.SaveNoValidate(item); err != nil {
		t.Fatalf("restore item: %v", err)
	}
	sheet.Set("status", "bogus")
	if err := app.SaveNoValidate(sheet); err != nil {
		t.Fatalf("save corrupt sheet: %v", err)
	}

	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for corrupt sheet status, got %d", rec.Code)
	}

	// The item must be untouched either way.
	updated, _ := app.FindRecordById("cost_sheet_items", item.Id)
	if updated.GetString("approval_status") != "pending" {
		t.Errorf("expected item to stay pending, got %q", updated.GetString("approval_status"))
	}
}

func TestHandleItemReject_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "pending")
	handler := HandleItemReject(app)

	body := `{"remarks": "Supplier cost looks too high"}`
	req := withActor(httptest.NewRequest(http.MethodPost, "/api/items/"+item.Id+"/reject", strings.NewReader(body)), testAdmin)
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("id", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, _ := app.FindRecordById("cost_sheet_items", item.Id)
	if updated.GetString("approval_status") != "rejected" {
		t.Errorf("expected rejected, got %q", updated.GetString("approval_status"))
	}
	if updated.GetString("admin_remarks") != "Supplier cost looks too high" {
		t.Errorf("expected remarks stored, got %q", updated.GetString("admin_remarks"))
	}

	notifs, _ := app.FindRecordsByFilter(
		"notifications", "user_id = {:user}", "", 0, 0,
		map[string]any{"user": testEstimator.ID},
	)
	if len(notifs) != 1 || notifs[0].GetString("type") != "rejection" {
		t.Errorf("expected 1 rejection notification, got %d", len(notifs))
	}
}
