package excel

import (
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{"Sr", "Name of Employees", "Email", "Basic", "HRA", "Gross Amt"}

func exportRecords() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"sr": 1.0, "name_of_employees": "Asha", "email": "asha@example.com",
			"basic": 50000.0, "hra": 20000.0, "gross_amt": 70000.0,
		},
		{
			"sr": 2.0, "name_of_employees": "Ravi", "email": "ravi@example.com",
			"basic": 40000.0, "hra": 15000.0, "gross_amt": 55000.0,
		},
	}
}

// TestGenerateLayout tests title, period and header placement
func TestGenerateLayout(t *testing.T) {
	data, err := Generate(exportRecords(), exportColumns, "Acme", "January- 26", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, sheet := openWorkbook(t, data)
	title, err := f.GetCellValue(sheet, "A1")
	if err != nil || title != "ACME SALARY SHEET" {
		t.Errorf("A1 = %q (%v), want ACME SALARY SHEET", title, err)
	}
	period, _ := f.GetCellValue(sheet, "E1")
	if period != "January- 26" {
		t.Errorf("E1 = %q, want January- 26", period)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		got, _ := f.GetCellValue(sheet, cell)
		if got != col {
			t.Errorf("header %s = %q, want %q", cell, got, col)
		}
	}

	name, _ := f.GetCellValue(sheet, "B4")
	if name != "Asha" {
		t.Errorf("B4 = %q, want Asha", name)
	}
}

// TestGenerateFormulaCells tests template instantiation with concrete rows
func TestGenerateFormulaCells(t *testing.T) {
	templates := map[string]string{"Gross Amt": "=D{row}+E{row}"}

	data, err := Generate(exportRecords(), exportColumns, "Acme", "", templates)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, sheet := openWorkbook(t, data)
	for row := dataStartRow; row < dataStartRow+2; row++ {
		cell, _ := excelize.CoordinatesToCellName(6, row)
		formula, err := f.GetCellFormula(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellFormula %s: %v", cell, err)
		}
		want := fmt.Sprintf("D%d+E%d", row, row)
		if formula != want {
			t.Errorf("%s formula = %q, want %q", cell, formula, want)
		}
	}
}

// TestGenerateTotalRow tests the aggregate row under the data
func TestGenerateTotalRow(t *testing.T) {
	data, err := Generate(exportRecords(), exportColumns, "Acme", "", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, sheet := openWorkbook(t, data)
	totalRow := dataStartRow + 2

	label, _ := f.GetCellValue(sheet, "A6")
	if label != "TOTAL" {
		t.Errorf("A%d = %q, want TOTAL", totalRow, label)
	}

	// Basic is monetary and sits in column D.
	formula, err := f.GetCellFormula(sheet, "D6")
	if err != nil {
		t.Fatalf("GetCellFormula D6: %v", err)
	}
	if formula != "SUM(D4:D5)" {
		t.Errorf("D6 formula = %q, want SUM(D4:D5)", formula)
	}

	// Email is not monetary, no aggregate.
	if formula, _ := f.GetCellFormula(sheet, "C6"); formula != "" {
		t.Errorf("C6 formula = %q, want none", formula)
	}
}

// TestGenerateEmptyRecords tests that zero records still yield a valid workbook
func TestGenerateEmptyRecords(t *testing.T) {
	data, err := Generate(nil, exportColumns, "Acme", "January- 26", nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, sheet := openWorkbook(t, data)
	title, _ := f.GetCellValue(sheet, "A1")
	if title != "ACME SALARY SHEET" {
		t.Errorf("A1 = %q", title)
	}
	label, _ := f.GetCellValue(sheet, "A4")
	if label != "TOTAL" {
		t.Errorf("A4 = %q, want TOTAL", label)
	}
	if formula, _ := f.GetCellFormula(sheet, "D4"); formula != "" {
		t.Errorf("D4 formula = %q, want no aggregate without data rows", formula)
	}
}

// TestGenerateExtractRoundTrip tests that generated formulas survive re-extraction
func TestGenerateExtractRoundTrip(t *testing.T) {
	templates := map[string]string{"Gross Amt": "=D{row}+E{row}"}

	data, err := Generate(exportRecords(), exportColumns, "Acme", "January- 26", templates)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, sheet := openWorkbook(t, data)
	header, err := LocateHeader(f, sheet, nil, DefaultExtractionConfig())
	if err != nil {
		t.Fatalf("LocateHeader: %v", err)
	}
	if header.RowIndex != headerRow-1 {
		t.Fatalf("RowIndex = %d, want %d", header.RowIndex, headerRow-1)
	}

	extracted, err := ExtractFormulas(f, sheet, header, DefaultExtractionConfig())
	if err != nil {
		t.Fatalf("ExtractFormulas: %v", err)
	}
	if got := extracted["Gross Amt"]; got != "=D{row}+E{row}" {
		t.Errorf("round-tripped template = %q, want =D{row}+E{row}", got)
	}
}

// TestIsMonetaryColumn tests monetary column classification
func TestIsMonetaryColumn(t *testing.T) {
	monetary := []string{"Basic", "HRA", "Gross Amt", "Net Amount", "Conv Allow", "Reimbursement", "Basic Pay"}
	for _, col := range monetary {
		if !IsMonetaryColumn(col) {
			t.Errorf("%q should be monetary", col)
		}
	}
	nonMonetary := []string{"Sr", "Name of Employees", "Email", "Designation"}
	for _, col := range nonMonetary {
		if IsMonetaryColumn(col) {
			t.Errorf("%q should not be monetary", col)
		}
	}
}
