package excel

// HeaderLocation is the outcome of header detection: the 0-based row index
// that holds the column labels and the cleaned column list read from it.
type HeaderLocation struct {
	RowIndex int      `json:"header_row_index"`
	Columns  []string `json:"columns"`
}

// RawRow is one data row keyed by the header label it was read under.
// Values are either string, float64 or nil; key normalization happens
// later, during reconciliation.
type RawRow map[string]interface{}

// SheetData is a fully read worksheet: located header plus all data rows
// below it.
type SheetData struct {
	Header HeaderLocation
	Rows   []RawRow
}
