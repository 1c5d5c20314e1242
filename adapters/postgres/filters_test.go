package postgres

import (
	"strings"
	"testing"

	"paysheet/domain/schema"
)

// TestBuildFilterClausesEmpty tests that no filters yield no SQL
func TestBuildFilterClausesEmpty(t *testing.T) {
	clause, args := buildFilterClauses(nil, 1)
	if clause != "" || args != nil {
		t.Errorf("empty filters = (%q, %v)", clause, args)
	}
}

// TestBuildFilterClausesOperators tests SQL generation per operator
func TestBuildFilterClausesOperators(t *testing.T) {
	filters := []schema.Filter{
		{Field: "designation", Op: schema.OpEquals, Value: "Engineer"},
		{Field: "name_of_employees", Op: schema.OpContains, Value: "sh"},
		{Field: "basic", Op: schema.OpGTE, Value: 30000.0},
	}

	clause, args := buildFilterClauses(filters, 1)

	if !strings.HasPrefix(clause, " AND ") {
		t.Errorf("clause must start with AND, got %q", clause)
	}
	if !strings.Contains(clause, "data->>$2 = $3") {
		t.Errorf("equals clause missing: %q", clause)
	}
	if !strings.Contains(clause, "data->>$4 ILIKE '%' || $5 || '%'") {
		t.Errorf("contains clause missing: %q", clause)
	}
	if !strings.Contains(clause, "(data->>$6)::numeric >= $7") {
		t.Errorf("gte clause missing: %q", clause)
	}

	want := []interface{}{"designation", "Engineer", "name_of_employees", "sh", "basic", 30000.0}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

// TestBuildFilterClausesTextSearch tests the OR expansion over searchable fields
func TestBuildFilterClausesTextSearch(t *testing.T) {
	clause, args := buildFilterClauses([]schema.Filter{
		{Op: schema.OpTextSearch, Value: "asha"},
	}, 0)

	if strings.Count(clause, " OR ") != len(schema.TextSearchFields)-1 {
		t.Errorf("expected %d OR branches, got %q", len(schema.TextSearchFields), clause)
	}
	// One arg for the value, one per field name.
	if len(args) != len(schema.TextSearchFields)+1 {
		t.Errorf("args = %d, want %d", len(args), len(schema.TextSearchFields)+1)
	}
	if args[0] != "asha" {
		t.Errorf("args[0] = %v", args[0])
	}
	// The value parameter is reused across every branch.
	if strings.Count(clause, "$1") != len(schema.TextSearchFields) {
		t.Errorf("value arg not reused: %q", clause)
	}
}
