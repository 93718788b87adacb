package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/collections"
	"costsheets/handlers"
	"costsheets/services"
)

func main() {
	app := pocketbase.New()
	bus := services.NewBus()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	// Publish record mutations to the change stream so open sessions see
	// approvals and edits performed elsewhere.
	publishItemChange := func(rec *core.Record) {
		bus.Publish(services.ChangeEvent{
			Collection: "cost_sheet_items",
			RecordID:   rec.Id,
			SheetID:    rec.GetString("cost_sheet"),
			Status:     rec.GetString("approval_status"),
		})
	}
	app.OnRecordAfterCreateSuccess("cost_sheet_items").BindFunc(func(e *core.RecordEvent) error {
		publishItemChange(e.Record)
		return e.Next()
	})
	app.OnRecordAfterUpdateSuccess("cost_sheet_items").BindFunc(func(e *core.RecordEvent) error {
		publishItemChange(e.Record)
		return e.Next()
	})
	app.OnRecordAfterDeleteSuccess("cost_sheet_items").BindFunc(func(e *core.RecordEvent) error {
		publishItemChange(e.Record)
		return e.Next()
	})
	app.OnRecordAfterUpdateSuccess("cost_sheets").BindFunc(func(e *core.RecordEvent) error {
		bus.Publish(services.ChangeEvent{
			Collection: "cost_sheets",
			RecordID:   e.Record.Id,
			SheetID:    e.Record.Id,
			Status:     e.Record.GetString("status"),
		})
		return e.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve the acting user for every request
		se.Router.BindFunc(handlers.ActorMiddleware(app))

		// ── Clients ──────────────────────────────────────────────
		se.Router.GET("/api/clients", handlers.HandleClientList(app))
		se.Router.POST("/api/clients", handlers.RequireActor(handlers.HandleClientCreate(app)))

		// ── Suppliers ────────────────────────────────────────────
		se.Router.GET("/api/clients/{clientId}/suppliers", handlers.HandleSupplierList(app))
		se.Router.POST("/api/suppliers", handlers.RequireActor(handlers.HandleSupplierCreate(app)))
		se.Router.DELETE("/api/suppliers/{id}", handlers.RequireActor(handlers.HandleSupplierDelete(app)))

		// ── Cost sheets ──────────────────────────────────────────
		se.Router.GET("/api/clients/{clientId}/sheet", handlers.HandleSheetItems(app))
		se.Router.POST("/api/sheets/save", handlers.RequireActor(handlers.HandleSheetSave(app)))
		se.Router.POST("/api/sheets/{id}/submit", handlers.RequireActor(handlers.HandleSheetSubmit(app)))
		se.Router.DELETE("/api/sheets/{id}", handlers.RequireActor(handlers.HandleSheetDelete(app)))

		// ── Items ────────────────────────────────────────────────
		se.Router.POST("/api/items/{id}/approve", handlers.RequireActor(handlers.HandleItemApprove(app)))
		se.Router.POST("/api/items/{id}/reject", handlers.RequireActor(handlers.HandleItemReject(app)))
		se.Router.POST("/api/items/{id}/quotation", handlers.RequireActor(handlers.HandleItemQuotation(app)))
		se.Router.DELETE("/api/items/{id}", handlers.RequireActor(handlers.HandleItemDelete(app)))

		// ── Approved ledger & records ────────────────────────────
		se.Router.GET("/api/ledger", handlers.HandleLedger(app))
		se.Router.GET("/api/ledger/{clientId}", handlers.HandleLedgerClient(app))
		se.Router.GET("/api/clients/{clientId}/records", handlers.HandleClientRecords(app))

		// ── Notifications ────────────────────────────────────────
		se.Router.GET("/api/notifications", handlers.RequireActor(handlers.HandleNotificationList(app)))
		se.Router.POST("/api/notifications/{id}/read", handlers.RequireActor(handlers.HandleNotificationRead(app)))
		se.Router.POST("/api/notifications/read-all", handlers.RequireActor(handlers.HandleNotificationReadAll(app)))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/api/clients/{clientId}/export/csv", handlers.HandleExportCSV(app))
		se.Router.GET("/api/clients/{clientId}/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/api/clients/{clientId}/export/pdf", handlers.HandleExportPDF(app))

		// ── Change stream ────────────────────────────────────────
		se.Router.GET("/api/stream", handlers.HandleChangeStream(bus))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
