package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"paysheet/internal/apperr"
)

// Open parses workbook bytes and returns the excelize handle plus the name
// of the first worksheet. The caller owns the handle and must Close it on
// every exit path.
func Open(data []byte) (*excelize.File, string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", apperr.MalformedWorkbook(err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, "", apperr.MalformedWorkbook(fmt.Errorf("workbook has no worksheets"))
	}
	return f, sheets[0], nil
}

// LocateHeader finds the header row of a worksheet. When overrideRow is
// non-nil that row is read directly without scoring (caller-trusted path).
// Otherwise the first HeaderScanRows rows are scored by indicator-keyword
// count and non-empty density; among qualifying rows the highest keyword
// count wins, ties going to the earliest row since the champion is only
// replaced on a strictly greater score. When no row qualifies the locator
// falls back to FallbackHeaderRow, the documented default for this sheet
// family.
func LocateHeader(f *excelize.File, sheet string, overrideRow *int, cfg ExtractionConfig) (HeaderLocation, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return HeaderLocation{}, apperr.MalformedWorkbook(err)
	}

	if overrideRow != nil {
		idx := *overrideRow
		if idx < 0 || idx >= len(rows) {
			return HeaderLocation{}, apperr.HeaderNotFound()
		}
		return HeaderLocation{RowIndex: idx, Columns: cleanColumns(rows[idx])}, nil
	}

	bestIdx := -1
	bestMatches := 0
	limit := cfg.HeaderScanRows
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		matches := countIndicatorMatches(rows[i])
		if matches < cfg.KeywordThreshold {
			continue
		}
		if nonEmptyRatio(rows[i]) < cfg.DensityThreshold {
			continue
		}
		if matches > bestMatches {
			bestMatches = matches
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		bestIdx = cfg.FallbackHeaderRow
		if bestIdx >= len(rows) {
			return HeaderLocation{}, apperr.HeaderNotFound()
		}
	}

	return HeaderLocation{RowIndex: bestIdx, Columns: cleanColumns(rows[bestIdx])}, nil
}

// countIndicatorMatches counts how many distinct indicator terms appear
// anywhere in the row's joined, lowercased text.
func countIndicatorMatches(row []string) int {
	text := strings.ToLower(strings.Join(row, " "))
	matches := 0
	for _, ind := range headerIndicators {
		if strings.Contains(text, ind) {
			matches++
		}
	}
	return matches
}

func nonEmptyRatio(row []string) float64 {
	if len(row) == 0 {
		return 0
	}
	nonEmpty := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" && !isPlaceholder(cell) {
			nonEmpty++
		}
	}
	return float64(nonEmpty) / float64(len(row))
}

// isPlaceholder recognizes auto-generated header markers left behind by
// other tooling ("Unnamed: 3" and the like).
func isPlaceholder(cell string) bool {
	return strings.Contains(strings.ToLower(cell), "unnamed")
}

// cleanColumns turns a header row into display column names. Blank or
// placeholder cells get a positionally stable synthesized name so that
// re-running on identical input yields identical output.
func cleanColumns(row []string) []string {
	columns := make([]string, len(row))
	for i, cell := range row {
		trimmed := strings.TrimSpace(cell)
		if trimmed == "" || isPlaceholder(trimmed) {
			columns[i] = fmt.Sprintf("Column_%d", i+1)
		} else {
			columns[i] = trimmed
		}
	}
	return columns
}
