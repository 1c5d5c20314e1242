package excel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"paysheet/domain/schema"
)

const (
	sheetName    = "Sheet1"
	headerRow    = 3
	dataStartRow = 4
	minColWidth  = 15
	maxColWidth  = 60
)

// monetaryTerms mark columns that get a SUM formula on the aggregate row.
var monetaryTerms = []string{"amount", "pay", "amt", "basic", "hra", "conv", "reimb", "allow"}

// Generate emits a styled salary-sheet workbook: merged title row, styled
// header at row 3, one row per record from row 4, and a TOTAL row summing
// every monetary column. Columns present in formulaTemplates are written as
// formulas with the concrete row substituted for `{row}`; their computed
// values are never written, formulas stay unevaluated. Record values are
// resolved by normalized-key match and NaN/Inf never reach a cell.
func Generate(records []map[string]interface{}, columns []string, title, monthYear string, formulaTemplates map[string]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTitle(f, title, monthYear); err != nil {
		return nil, err
	}
	if err := writeHeader(f, columns); err != nil {
		return nil, err
	}

	// Templates are matched to columns case-insensitively.
	templates := make(map[string]string, len(formulaTemplates))
	for col, tmpl := range formulaTemplates {
		templates[schema.NormalizeForMatching(col)] = tmpl
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}

	for ri, record := range records {
		row := dataStartRow + ri
		for ci, col := range columns {
			cell, err := excelize.CoordinatesToCellName(ci+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell name for column %d row %d: %w", ci+1, row, err)
			}

			if tmpl, ok := templates[schema.NormalizeForMatching(col)]; ok {
				formula := strings.ReplaceAll(tmpl, "{row}", strconv.Itoa(row))
				if err := f.SetCellFormula(sheetName, cell, strings.TrimPrefix(formula, "=")); err != nil {
					return nil, fmt.Errorf("set formula %s: %w", cell, err)
				}
				continue
			}

			value := schema.CleanValue(record[schema.NormalizeForStorage(col)])
			if value == nil {
				continue
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("set value %s: %w", cell, err)
			}
			if l := len(fmt.Sprintf("%v", value)); l > widths[ci] {
				widths[ci] = l
			}
		}
	}

	if err := writeTotalRow(f, columns, len(records)); err != nil {
		return nil, err
	}
	if err := setColumnWidths(f, widths); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTitle(f *excelize.File, title, monthYear string) error {
	if err := f.MergeCell(sheetName, "A1", "D1"); err != nil {
		return fmt.Errorf("merge title cells: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", strings.ToUpper(title)+" SALARY SHEET"); err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "A1", titleStyle); err != nil {
		return err
	}

	if monthYear == "" {
		return nil
	}
	if err := f.MergeCell(sheetName, "E1", "G1"); err != nil {
		return fmt.Errorf("merge period cells: %w", err)
	}
	if err := f.SetCellValue(sheetName, "E1", monthYear); err != nil {
		return err
	}
	periodStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, "E1", "E1", periodStyle)
}

func writeHeader(f *excelize.File, columns []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border:    thinBorder(),
	})
	if err != nil {
		return err
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// writeTotalRow appends the aggregate row: a TOTAL label, then a SUM over
// the data range for every monetary column. Non-monetary columns get no
// aggregate. With zero data rows only the label is written so the workbook
// stays valid.
func writeTotalRow(f *excelize.File, columns []string, recordCount int) error {
	totalRow := dataStartRow + recordCount

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	labelCell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, labelCell, "TOTAL"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, labelCell, labelCell, boldStyle); err != nil {
		return err
	}

	if recordCount == 0 {
		return nil
	}

	numFmt := "#,##0.00"
	sumStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return err
	}

	for i, col := range columns {
		if !IsMonetaryColumn(col) {
			continue
		}
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := fmt.Sprintf("%s%d", letter, totalRow)
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", letter, dataStartRow, letter, totalRow-1)
		if err := f.SetCellFormula(sheetName, cell, formula); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, sumStyle); err != nil {
			return err
		}
	}
	return nil
}

// IsMonetaryColumn reports whether a column name looks like a money
// amount, which makes it eligible for the TOTAL row sum.
func IsMonetaryColumn(col string) bool {
	key := schema.NormalizeForMatching(col)
	for _, term := range monetaryTerms {
		if strings.Contains(key, term) {
			return true
		}
	}
	return false
}

func setColumnWidths(f *excelize.File, widths []int) error {
	for i, w := range widths {
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(w + 2)
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheetName, letter, letter, width); err != nil {
			return err
		}
	}
	return nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
