package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"costsheets/testhelpers"
)

func TestHandleExportCSV_Download(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	testhelpers.CreateTestItem(t, app, sheet.Id, 1, "approved_both")
	handler := HandleExportCSV(app)

	req := withActor(httptest.NewRequest(http.MethodGet, "/api/clients/"+client.Id+"/export/csv", nil), testAdmin)
	req.SetPathValue("clientId", client.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "CostSheet_Emaar-Properties_") || !strings.HasSuffix(cd, `.csv"`) {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Test line item") {
		t.Error("expected approved item in CSV body")
	}
	if !strings.Contains(body, "AED 1,200.00") {
		t.Error("expected formatted quoted price in CSV body")
	}
}

func TestHandleExportCSV_ClientNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleExportCSV(app)

	req := withActor(httptest.NewRequest(http.MethodGet, "/api/clients/nonexistent/export/csv", nil), testAdmin)
	req.SetPathValue("clientId", "nonexistent")
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleExportCSV_QueryFailure(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")

	// Drop the items collection so the approved-items query fails even
	// though the client exists.
	col, err := app.FindCollectionByNameOrId("cost_sheet_items")
	if err != nil {
		t.Fatalf("find collection: %v", err)
	}
	if err := app.Delete(col); err != nil {
		t.Fatalf("drop collection: %v", err)
	}

	handler := HandleExportCSV(app)
	req := withActor(httptest.NewRequest(http.MethodGet, "/api/clients/"+client.Id+"/export/csv", nil), testAdmin)
	req.SetPathValue("clientId", client.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// A store failure is not a missing client.
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for a failing query, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Client not found") {
		t.Error("store failure must not be reported as a missing client")
	}
}

func TestHandleExportCSV_AdminChosenOverride(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Emaar Properties")
	altSupplier := testhelpers.CreateTestSupplier(t, app, client.Id, "Desert Signage LLC")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	item := testhelpers.CreateTestItem(t, app, sheet.Id, 1, "approved_both")

	// Admin picked a cheaper supplier for the quotation.
	item.Set("admin_chosen_for_quotation", true)
	item.Set("admin_chosen_supplier", altSupplier.Id)
	item.Set("admin_chosen_supplier_cost", 400.0)
	item.Set("admin_chosen_total_cost", 800.0)
	item.Set("admin_chosen_rea_margin", 160.0)
	item.Set("admin_chosen_actual_quoted", 960.0)
	if err := app.Save(item); err != nil {
		t.Fatalf("save item: %v", err)
	}

	handler := HandleExportCSV(app)
	req := withActor(httptest.NewRequest(http.MethodGet, "/api/clients/"+client.Id+"/export/csv", nil), testAdmin)
	req.SetPathValue("clientId", client.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Desert Signage LLC") {
		t.Error("expected admin-chosen supplier in export")
	}
	if !strings.Contains(body, "AED 960.00") {
		t.Error("expected admin-chosen quoted price in export")
	}
	if strings.Contains(body, "AED 1,200.00") {
		t.Error("estimator quoted price should be replaced in the export row")
	}
}

func TestHandleExportPDF_Download(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Etisalat")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	testhelpers.CreateTestItem(t, app, sheet.Id, 1, "approved_both")
	handler := HandleExportPDF(app)

	req := withActor(httptest.NewRequest(http.MethodGet, "/api/clients/"+client.Id+"/export/pdf", nil), testAdmin)
	req.SetPathValue("clientId", client.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("expected a PDF document body")
	}
}

func TestHandleExportExcel_Download(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	client := testhelpers.CreateTestClient(t, app, "Majid Al Futtaim")
	sheet := testhelpers.CreateTestSheet(t, app, client.Id, testEstimator.ID, "submitted")
	testhelpers.CreateTestItem(t, app, sheet.Id, 1, "approved_both")
	handler := HandleExportExcel(app)

	req := withActor(httptest.NewRequest(http.MethodGet, "/api/clients/"+client.Id+"/export/excel", nil), testAdmin)
	req.SetPathValue("clientId", client.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a non-empty workbook body")
	}
}
