package services

// ExportRow is a single approved line item in a cost sheet export.
// When the reviewing admin marked the item as chosen for quotation, the
// admin-chosen supplier/cost values are substituted before the row is
// built; the canonical estimator values are untouched in the store.
type ExportRow struct {
	ItemNumber   int
	Date         string
	Item         string
	SupplierName string
	Qty          float64
	SupplierCost float64
	MiscCost     float64
	TotalCost    float64
	Margin       float64
	QuotedPrice  float64
}

// ExportData holds everything needed to render a cost sheet export.
type ExportData struct {
	ClientName    string
	GeneratedDate string
	Rows          []ExportRow
	Totals        RecordTotals
}

// exportHeader is the literal column set shared by the CSV, Excel and PDF
// renditions of an approved cost sheet.
var exportHeader = []string{
	"#", "Date", "Item", "Supplier", "Qty",
	"Supplier Cost", "Misc Cost", "Total Cost", "REA Margin", "Actual Quoted",
}
