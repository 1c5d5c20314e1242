package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"paysheet/domain/schema"
)

// MapColumns matches located sheet columns onto an expected column list,
// tolerating naming variance: an exact case-insensitive match wins, else a
// partial match (either name contains the other) is accepted only when it
// is unambiguous. The result maps 0-based sheet positions to expected
// column names; unmatched positions are absent.
func MapColumns(located []string, expected []string) map[int]string {
	mapping := make(map[int]string)

	for i, header := range located {
		key := schema.NormalizeForMatching(header)
		if key == "" {
			continue
		}

		matched := ""
		for _, exp := range expected {
			if schema.NormalizeForMatching(exp) == key {
				matched = exp
				break
			}
		}
		if matched != "" {
			mapping[i] = matched
			continue
		}

		var partial []string
		for _, exp := range expected {
			expKey := schema.NormalizeForMatching(exp)
			if strings.Contains(key, expKey) || strings.Contains(expKey, key) {
				partial = append(partial, exp)
			}
		}
		if len(partial) == 1 {
			mapping[i] = partial[0]
		}
	}
	return mapping
}

// ExtractMappedFormulas captures formula templates from a sheet whose
// headers differ from the canonical names: the header is located, columns
// are mapped onto expectedColumns, and templates are keyed by the canonical
// name rather than the header text found on disk.
func ExtractMappedFormulas(f *excelize.File, sheet string, expectedColumns []string, cfg ExtractionConfig) (map[string]string, error) {
	header, err := LocateHeader(f, sheet, nil, cfg)
	if err != nil {
		return nil, err
	}

	mapping := MapColumns(header.Columns, expectedColumns)

	// Rekey the located columns by their canonical names so the extraction
	// routine associates templates with them; unmapped positions keep the
	// sheet's own header text.
	mapped := make([]string, len(header.Columns))
	copy(mapped, header.Columns)
	for i, name := range mapping {
		mapped[i] = name
	}

	templates, err := ExtractFormulas(f, sheet, HeaderLocation{RowIndex: header.RowIndex, Columns: mapped}, cfg)
	if err != nil {
		return nil, err
	}

	// Only mapped columns may contribute formulas on this path.
	allowed := make(map[string]bool, len(mapping))
	for _, name := range mapping {
		allowed[name] = true
	}
	for col := range templates {
		if !allowed[col] {
			delete(templates, col)
		}
	}
	return templates, nil
}
