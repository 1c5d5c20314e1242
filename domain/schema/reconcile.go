package schema

import "strings"

// attendanceOnlyFields are sheet columns that belong to attendance
// bookkeeping, not the employee record. They are excluded from
// reconciliation regardless of presence in the source sheet. Keys are in
// storage-normalized form.
var attendanceOnlyFields = map[string]bool{
	"no_of_days_in_a_month": true,
	"no_of_days_present":    true,
	"days_in_month":         true,
	"days_present":          true,
}

// IsAttendanceOnlyColumn reports whether a column carries attendance data
// that must not land on the employee record.
func IsAttendanceOnlyColumn(name string) bool {
	return attendanceOnlyFields[NormalizeForStorage(name)]
}

// HasRequiredColumns checks that every expected column appears among the
// actual columns, case-insensitive and trimmed. Extra actual columns are
// allowed. Returns the expected columns that are missing, empty when the
// subset check passes.
func HasRequiredColumns(actual, expected []string) (bool, []string) {
	present := make(map[string]bool, len(actual))
	for _, col := range actual {
		present[NormalizeForMatching(col)] = true
	}

	var missing []string
	for _, col := range expected {
		if !present[NormalizeForMatching(col)] {
			missing = append(missing, col)
		}
	}
	return len(missing) == 0, missing
}

// ColumnsMatchExactly checks case-insensitive, trimmed set equality: no
// extras and no omissions. This is a deliberately stricter policy than
// HasRequiredColumns; call sites choose which strength applies.
func ColumnsMatchExactly(actual, expected []string) bool {
	actualSet := make(map[string]bool, len(actual))
	for _, col := range actual {
		actualSet[NormalizeForMatching(col)] = true
	}
	expectedSet := make(map[string]bool, len(expected))
	for _, col := range expected {
		expectedSet[NormalizeForMatching(col)] = true
	}

	if len(actualSet) != len(expectedSet) {
		return false
	}
	for col := range expectedSet {
		if !actualSet[col] {
			return false
		}
	}
	return true
}

// ReconcileRecord maps an arbitrary uploaded row onto the canonical column
// set. Every canonical column yields a key in the result (nil when the row
// has no matching value), so downstream consumers can rely on a fixed key
// set per schema. Attendance-only columns are dropped entirely.
func ReconcileRecord(raw map[string]interface{}, canonicalColumns []string) map[string]interface{} {
	normalized := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		normalized[NormalizeForStorage(k)] = v
	}

	record := make(map[string]interface{}, len(canonicalColumns))
	for _, col := range canonicalColumns {
		key := NormalizeForStorage(col)
		if attendanceOnlyFields[key] {
			continue
		}
		if v, ok := normalized[key]; ok {
			record[key] = CleanValue(v)
		} else {
			record[key] = nil
		}
	}
	return record
}

// FindEmailColumn returns the first column whose normalized name is or
// contains "email". The boolean is false when the sheet has no email-like
// column at all.
func FindEmailColumn(columns []string) (string, bool) {
	for _, col := range columns {
		if NormalizeForStorage(col) == "email" {
			return col, true
		}
	}
	for _, col := range columns {
		if strings.Contains(NormalizeForStorage(col), "email") {
			return col, true
		}
	}
	return "", false
}
