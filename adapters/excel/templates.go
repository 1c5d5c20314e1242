package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sampleRows is example data for the sample template download, keyed by the
// common canonical column names. Columns outside this set come out blank.
var sampleRows = []map[string]interface{}{
	{
		"EMP ID":            "EMP001",
		"Name of Employees": "John Doe",
		"Email":             "john.doe@example.com",
		"Designation":       "Manager",
		"Name of Site":      "Main Branch",
		"Basic Pay":         50000,
		"HRA":               15000,
		"DA":                5000,
		"Special Allowance": 8000,
		"Gross Amt":         78000,
		"PF":                6000,
		"TDS":               5500,
		"Net Amt":           66500,
	},
	{
		"EMP ID":            "EMP002",
		"Name of Employees": "Jane Smith",
		"Email":             "jane.smith@example.com",
		"Designation":       "Developer",
		"Name of Site":      "Tech Center",
		"Basic Pay":         45000,
		"HRA":               13500,
		"DA":                4500,
		"Special Allowance": 7000,
		"Gross Amt":         70000,
		"PF":                5400,
		"TDS":               4900,
		"Net Amt":           59700,
	},
}

// GenerateBlankTemplate emits an empty upload template: title and
// instruction rows, then the company's canonical columns as a styled header
// at row 3.
func GenerateBlankTemplate(columns []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTemplateHead(f, "Salary Sheet Template",
		"Fill in employee data below. All columns are required.", columns); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateSampleTemplate emits a template pre-filled with example rows so
// uploaders can see the expected format.
func GenerateSampleTemplate(columns []string, companyName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTemplateHead(f, companyName+" - Sample Salary Template",
		"This is a sample file with example data. Replace with your real employee data.", columns); err != nil {
		return nil, err
	}

	for ri, sample := range sampleRows {
		row := headerRow + 1 + ri
		for ci, col := range columns {
			value, ok := sample[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write sample template: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTemplateHead(f *excelize.File, title, instructions string, columns []string) error {
	if err := f.MergeCell(sheetName, "A1", "F1"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return err
	}

	if err := f.MergeCell(sheetName, "A2", "F2"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "A2", instructions); err != nil {
		return err
	}
	noteStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A2", "A2", noteStyle); err != nil {
		return err
	}

	if err := writeHeader(f, columns); err != nil {
		return err
	}

	for i, col := range columns {
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(len(col) + 5)
		if width < minColWidth {
			width = minColWidth
		}
		if err := f.SetColWidth(sheetName, letter, letter, width); err != nil {
			return err
		}
	}
	return nil
}
