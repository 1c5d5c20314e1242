package excel

// ExtractionConfig holds the header-detection and formula-scan tuning for
// one sheet family. The defaults are empirical constants tuned to
// payroll-style salary sheets; other sheet families may need retuning, so
// they are configuration, not hard-coded values.
type ExtractionConfig struct {
	// HeaderScanRows is how many rows from the top are inspected for a
	// header candidate.
	HeaderScanRows int
	// KeywordThreshold is the minimum number of domain indicator terms a
	// row must contain to qualify as a header candidate.
	KeywordThreshold int
	// DensityThreshold is the minimum ratio of non-empty cells a header
	// candidate row must have.
	DensityThreshold float64
	// FallbackHeaderRow is the 0-based row used when no row qualifies.
	// Row index 2 (the third physical row) is the documented default for
	// salary sheets, which lead with title and month rows.
	FallbackHeaderRow int
	// FormulaScanRows bounds how many data rows below the header are
	// scanned for formula cells. Formulas are assumed uniform down a
	// column, so early rows suffice.
	FormulaScanRows int
}

// DefaultExtractionConfig returns the tuning for the payroll sheet family.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		HeaderScanRows:    10,
		KeywordThreshold:  3,
		DensityThreshold:  0.5,
		FallbackHeaderRow: 2,
		FormulaScanRows:   5,
	}
}

// headerIndicators are the domain terms whose presence marks a row as a
// likely salary-sheet header.
var headerIndicators = []string{
	"sr", "emp", "id", "name", "email", "basic", "hra", "gross", "net", "tax", "deduction",
}
