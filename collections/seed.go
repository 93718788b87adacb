package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheets/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type userRoleDef struct {
	userID string
	email  string
	role   string
}

type supplierDef struct {
	name string
}

type clientDef struct {
	name      string
	suppliers []supplierDef
}

type itemDef struct {
	date          string
	item          string
	supplierName  string
	qty           float64
	supplierCost  float64
	miscSupplier  string
	miscQty       float64
	miscCost      float64
	miscType      string
	markupPercent float64
}

// Seed populates all collections with realistic advertising production
// data. It is safe to call on every startup because it returns early if
// any client records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if clients already exist ───────────────────
	clientsCol, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return fmt.Errorf("seed: could not find clients collection: %w", err)
	}
	existing, err := app.FindAllRecords(clientsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query clients: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: clients collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	suppliersCol, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		return fmt.Errorf("seed: could not find suppliers collection: %w", err)
	}
	sheetsCol, err := app.FindCollectionByNameOrId("cost_sheets")
	if err != nil {
		return fmt.Errorf("seed: could not find cost_sheets collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("cost_sheet_items")
	if err != nil {
		return fmt.Errorf("seed: could not find cost_sheet_items collection: %w", err)
	}
	rolesCol, err := app.FindCollectionByNameOrId("user_roles")
	if err != nil {
		return fmt.Errorf("seed: could not find user_roles collection: %w", err)
	}

	// ── helper: create user role ─────────────────────────────────────
	createUserRole := func(d userRoleDef) error {
		r := core.NewRecord(rolesCol)
		r.Set("user_id", d.userID)
		r.Set("email", d.email)
		r.Set("role", d.role)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save user role %q: %w", d.userID, err)
		}
		return nil
	}

	// ── helper: create client with its suppliers ─────────────────────
	createClient := func(d clientDef) (*core.Record, map[string]string, error) {
		c := core.NewRecord(clientsCol)
		c.Set("name", d.name)
		if err := app.Save(c); err != nil {
			return nil, nil, fmt.Errorf("seed: save client %q: %w", d.name, err)
		}

		supplierIDs := make(map[string]string, len(d.suppliers))
		for _, s := range d.suppliers {
			r := core.NewRecord(suppliersCol)
			r.Set("name", s.name)
			r.Set("client", c.Id)
			if err := app.Save(r); err != nil {
				return nil, nil, fmt.Errorf("seed: save supplier %q: %w", s.name, err)
			}
			supplierIDs[s.name] = r.Id
		}
		return c, supplierIDs, nil
	}

	// ── helper: create cost sheet item ───────────────────────────────
	createItem := func(sheetID string, number int, supplierIDs map[string]string, d itemDef) error {
		totals := services.CalcItemTotals(services.ItemInputs{
			Qty:             d.qty,
			SupplierCost:    d.supplierCost,
			MiscQty:         d.miscQty,
			MiscCost:        d.miscCost,
			HasMiscSupplier: d.miscSupplier != "",
			MarkupPercent:   d.markupPercent,
		})

		r := core.NewRecord(itemsCol)
		r.Set("cost_sheet", sheetID)
		r.Set("item_number", number)
		r.Set("date", d.date)
		r.Set("item", d.item)
		r.Set("supplier", supplierIDs[d.supplierName])
		r.Set("qty", d.qty)
		r.Set("supplier_cost", d.supplierCost)
		if d.miscSupplier != "" {
			r.Set("misc_supplier", supplierIDs[d.miscSupplier])
			r.Set("misc_qty", d.miscQty)
			r.Set("misc_cost", d.miscCost)
			r.Set("misc_type", d.miscType)
		}
		r.Set("total_cost", totals.TotalCost)
		r.Set("rea_margin_percentage", d.markupPercent)
		r.Set("rea_margin", totals.MarkupAmount)
		r.Set("actual_quoted", totals.QuotedPrice)
		r.Set("approval_status", "pending")
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save item %q: %w", d.item, err)
		}
		return nil
	}

	// ── user roles ───────────────────────────────────────────────────
	roles := []userRoleDef{
		{userID: "est-hamdan", email: "hamdan@rea.ae", role: "estimator"},
		{userID: "adm-fatima", email: "fatima@rea.ae", role: "admin"},
		{userID: "adm-omar", email: "omar@rea.ae", role: "admin"},
	}
	for _, d := range roles {
		if err := createUserRole(d); err != nil {
			return err
		}
	}

	// ── clients with their supplier pools ────────────────────────────
	emaar, emaarSuppliers, err := createClient(clientDef{
		name: "Emaar Properties",
		suppliers: []supplierDef{
			{name: "Gulf Print House"},
			{name: "Desert Signage LLC"},
			{name: "Al Noor Media Production"},
			{name: "Skyline Hoarding Rentals"},
		},
	})
	if err != nil {
		return err
	}

	_, _, err = createClient(clientDef{
		name: "Majid Al Futtaim",
		suppliers: []supplierDef{
			{name: "Oasis Exhibition Builders"},
			{name: "Pearl Digital Displays"},
		},
	})
	if err != nil {
		return err
	}

	_, _, err = createClient(clientDef{
		name: "Etisalat",
		suppliers: []supplierDef{
			{name: "Falcon Outdoor Advertising"},
			{name: "Marina Event Services"},
			{name: "Gulf Print House"},
		},
	})
	if err != nil {
		return err
	}

	// ── draft cost sheet for the first client ────────────────────────
	sheet := core.NewRecord(sheetsCol)
	sheet.Set("client", emaar.Id)
	sheet.Set("created_by", "est-hamdan")
	sheet.Set("status", "draft")
	if err := app.Save(sheet); err != nil {
		return fmt.Errorf("seed: save cost sheet: %w", err)
	}

	items := []itemDef{
		{
			date: "2025-11-03", item: "Lamppost banners — Downtown Boulevard (40 units)",
			supplierName: "Gulf Print House", qty: 40, supplierCost: 185,
			miscSupplier: "Skyline Hoarding Rentals", miscQty: 40, miscCost: 65, miscType: "installation",
			markupPercent: 25,
		},
		{
			date: "2025-11-05", item: "Mall atrium LED screen content — 30s spot",
			supplierName: "Al Noor Media Production", qty: 1, supplierCost: 14500,
			markupPercent: 30,
		},
		{
			date: "2025-11-10", item: "Hoarding wrap — Sheikh Zayed Road site 7",
			supplierName: "Desert Signage LLC", qty: 2, supplierCost: 9800,
			miscSupplier: "Skyline Hoarding Rentals", miscQty: 2, miscCost: 1200, miscType: "crane hire",
			markupPercent: 20,
		},
	}
	for i, d := range items {
		if err := createItem(sheet.Id, i+1, emaarSuppliers, d); err != nil {
			return err
		}
	}

	log.Println("seed: all seed data inserted successfully (3 clients, 9 suppliers, 1 draft cost sheet)")
	return nil
}
