package excel

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"paysheet/internal/apperr"
)

// ReadSheet locates the header (honoring an optional caller-supplied row
// override) and reads every data row below it, keyed by header label.
// Numeric-looking cells are converted to float64 so that monetary fields
// survive as numbers; blank cells become nil.
func ReadSheet(f *excelize.File, sheet string, overrideRow *int, cfg ExtractionConfig) (*SheetData, error) {
	header, err := LocateHeader(f, sheet, overrideRow, cfg)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.MalformedWorkbook(err)
	}

	data := &SheetData{Header: header}
	for i := header.RowIndex + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		raw := make(RawRow, len(header.Columns))
		for j, column := range header.Columns {
			if j < len(row) {
				raw[column] = parseCell(row[j])
			} else {
				raw[column] = nil
			}
		}
		data.Rows = append(data.Rows, raw)
	}

	return data, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseCell converts a raw cell string to nil, float64 or string.
func parseCell(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return n
	}
	return trimmed
}
