package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleExportData() ExportData {
	return ExportData{
		ClientName:    "Emaar Properties",
		GeneratedDate: "15 Nov 2025",
		Rows: []ExportRow{
			{ItemNumber: 1, Date: "2025-11-03", Item: "Lamppost banners", SupplierName: "Gulf Print House",
				Qty: 40, SupplierCost: 185, MiscCost: 65, TotalCost: 10000, Margin: 2500, QuotedPrice: 12500},
			{ItemNumber: 2, Date: "2025-11-05", Item: "LED screen content", SupplierName: "Al Noor Media Production",
				Qty: 1, SupplierCost: 14500, TotalCost: 14500, Margin: 4350, QuotedPrice: 18850},
		},
		Totals: RecordTotals{TotalItems: 2, TotalCost: 24500, TotalQuoted: 31350},
	}
}

func TestGenerateCSV(t *testing.T) {
	result, err := GenerateCSV(sampleExportData())
	if err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}

	// header + 2 data rows + summary row
	if len(records) != 4 {
		t.Fatalf("expected 4 CSV records, got %d", len(records))
	}
	if records[0][0] != "#" || records[0][9] != "Actual Quoted" {
		t.Errorf("unexpected header row: %v", records[0])
	}
	if records[1][3] != "Gulf Print House" {
		t.Errorf("expected supplier in row 1, got %q", records[1][3])
	}
	if records[1][9] != "AED 12,500.00" {
		t.Errorf("expected formatted quoted price, got %q", records[1][9])
	}
	if records[3][3] != "Total" || records[3][7] != "AED 24,500.00" {
		t.Errorf("unexpected summary row: %v", records[3])
	}
}

func TestGenerateCSV_Empty(t *testing.T) {
	result, err := GenerateCSV(ExportData{ClientName: "Empty", GeneratedDate: "15 Nov 2025"})
	if err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	// header + summary row only
	if len(records) != 2 {
		t.Errorf("expected 2 CSV records, got %d", len(records))
	}
}

func TestGeneratePDF_ApprovedSheet(t *testing.T) {
	result, err := GeneratePDF(sampleExportData())
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
	// PDF files start with %PDF
	if len(result) > 4 && string(result[:5]) != "%PDF-" {
		t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
	}
}

func TestGeneratePDF_EmptyItems(t *testing.T) {
	result, err := GeneratePDF(ExportData{ClientName: "Empty", GeneratedDate: "15 Nov 2025"})
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestGenerateExcel_ApprovedSheet(t *testing.T) {
	result, err := GenerateExcel(sampleExportData())
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("generated Excel does not open: %v", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName != "Emaar Properties" {
		t.Errorf("expected sheet named after client, got %q", sheetName)
	}

	val, err := f.GetCellValue(sheetName, "D6")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if val != "Gulf Print House" {
		t.Errorf("expected supplier in D6, got %q", val)
	}
}

func TestGenerateExcel_LongClientNameTruncated(t *testing.T) {
	data := sampleExportData()
	data.ClientName = strings.Repeat("X", 40)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("generated Excel does not open: %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); len(name) != 31 {
		t.Errorf("expected sheet name truncated to 31 chars, got %d", len(name))
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Gulf Print House", "Gulf Print House"},
		{"formula", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus", "+1234", "'+1234"},
		{"minus", "-discount", "'-discount"},
		{"at sign", "@cmd", "'@cmd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeExcelCell(tt.input); got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
