package excel

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"paysheet/domain/schema"
	"paysheet/internal/apperr"
)

// ExtractFormulas scans a bounded window of data rows below the header for
// formula cells and turns each into a row-parametrized template: the
// literal current row number is replaced with the `{row}` placeholder. The
// first formula found under a column wins; later rows never overwrite it,
// which tolerates sparse template rows. When the scan yields nothing the
// extractor falls back to heuristic synthesis from column names.
func ExtractFormulas(f *excelize.File, sheet string, header HeaderLocation, cfg ExtractionConfig) (map[string]string, error) {
	templates := make(map[string]string)

	firstDataRow := header.RowIndex + 2 // 1-based excel row just below the header
	for row := firstDataRow; row < firstDataRow+cfg.FormulaScanRows; row++ {
		for i, column := range header.Columns {
			if _, done := templates[column]; done {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, apperr.ExtractionFailed(err)
			}
			formula, err := f.GetCellFormula(sheet, cell)
			if err != nil {
				return nil, apperr.ExtractionFailed(err)
			}
			if formula == "" {
				continue
			}

			if !strings.HasPrefix(formula, "=") {
				formula = "=" + formula
			}
			templates[column] = strings.ReplaceAll(formula, strconv.Itoa(row), "{row}")
		}
	}

	if len(templates) == 0 {
		return SynthesizeFormulas(header.Columns), nil
	}
	return templates, nil
}

// Column-name role terms for fallback synthesis. Salary sheets have a flat
// additive structure, so synthesized formulas combine cell references with
// + and - only.
var (
	allowanceTerms = []string{"basic", "hra", "allow", "reimb", "lta", "medical", "education"}
	deductionTerms = []string{"tax", "tds", "pf", "esic", "advance"}
	extraPayTerms  = []string{"bonus", "reimb", "other"}
)

// SynthesizeFormulas builds formula templates from column names alone, for
// sheets uploaded without any formulas on disk. Recognized roles: a gross
// amount column sums the allowance-like columns, a total deduction column
// sums the deduction-like columns, a net amount column subtracts the two,
// and a payable column adds bonus-like columns onto net.
func SynthesizeFormulas(columns []string) map[string]string {
	letters := make([]string, len(columns))
	keys := make([]string, len(columns))
	for i, col := range columns {
		letters[i], _ = excelize.ColumnNumberToName(i + 1)
		keys[i] = schema.NormalizeForStorage(col)
	}

	grossIdx, deductionIdx, netIdx, payableIdx := -1, -1, -1, -1
	for i, key := range keys {
		switch {
		case strings.Contains(key, "gross") && isAmountColumn(key):
			grossIdx = i
		case strings.Contains(key, "total") && strings.Contains(key, "deduction"):
			deductionIdx = i
		case strings.Contains(key, "net") && isAmountColumn(key):
			netIdx = i
		case strings.Contains(key, "payable"):
			payableIdx = i
		}
	}

	templates := make(map[string]string)

	if grossIdx >= 0 {
		refs := collectRefs(keys, letters, allowanceTerms, grossIdx)
		if len(refs) > 0 {
			templates[columns[grossIdx]] = "=" + strings.Join(refs, "+")
		}
	}

	if deductionIdx >= 0 {
		refs := collectRefs(keys, letters, deductionTerms, deductionIdx)
		if len(refs) > 0 {
			templates[columns[deductionIdx]] = "=" + strings.Join(refs, "+")
		}
	}

	if netIdx >= 0 && grossIdx >= 0 && deductionIdx >= 0 {
		templates[columns[netIdx]] = "=" + letters[grossIdx] + "{row}-" + letters[deductionIdx] + "{row}"
	}

	if payableIdx >= 0 && netIdx >= 0 {
		refs := []string{letters[netIdx] + "{row}"}
		refs = append(refs, collectRefs(keys, letters, extraPayTerms, payableIdx, netIdx)...)
		templates[columns[payableIdx]] = "=" + strings.Join(refs, "+")
	}

	return templates
}

func isAmountColumn(key string) bool {
	return strings.Contains(key, "amt") || strings.Contains(key, "amount")
}

// collectRefs gathers `{row}`-parametrized cell references for every column
// whose normalized name contains one of the terms, skipping the excluded
// positions (the derived column itself must never reference itself).
func collectRefs(keys, letters []string, terms []string, exclude ...int) []string {
	excluded := make(map[int]bool, len(exclude))
	for _, i := range exclude {
		excluded[i] = true
	}

	var refs []string
	for i, key := range keys {
		if excluded[i] {
			continue
		}
		for _, term := range terms {
			if strings.Contains(key, term) {
				refs = append(refs, letters[i]+"{row}")
				break
			}
		}
	}
	return refs
}
