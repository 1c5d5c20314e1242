package excel

import "testing"

// TestMapColumns tests exact and unique-partial header matching
func TestMapColumns(t *testing.T) {
	expected := []string{"Name of Employees", "Email", "Basic", "Gross Amt"}

	located := []string{"name of employees", "Email Address", "Basic", "Designation"}
	mapping := MapColumns(located, expected)

	if mapping[0] != "Name of Employees" {
		t.Errorf("position 0 = %q, want exact match", mapping[0])
	}
	if mapping[1] != "Email" {
		t.Errorf("position 1 = %q, want unique partial match on Email", mapping[1])
	}
	if mapping[2] != "Basic" {
		t.Errorf("position 2 = %q", mapping[2])
	}
	if got, ok := mapping[3]; ok {
		t.Errorf("position 3 mapped to %q, want unmatched", got)
	}
}

// TestMapColumnsAmbiguousPartial tests that ambiguous partials stay unmatched
func TestMapColumnsAmbiguousPartial(t *testing.T) {
	expected := []string{"Basic Pay", "Basic HRA"}
	mapping := MapColumns([]string{"Basic"}, expected)
	if got, ok := mapping[0]; ok {
		t.Errorf("ambiguous header mapped to %q, want unmatched", got)
	}
}

// TestExtractMappedFormulas tests capture keyed by canonical names
func TestExtractMappedFormulas(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Title"},
		{},
		{"Sr", "Emp ID", "Name", "Basic Salary", "HRA Paid", "Gross Amt (Monthly)"},
		{1, "EMP001", "Asha", 50000, 20000, nil},
	}, map[string]string{
		"F4": "D4+E4",
	})

	f, sheet := openWorkbook(t, data)
	expected := []string{"Name", "Basic", "HRA", "Gross Amt", "Net Amt"}

	templates, err := ExtractMappedFormulas(f, sheet, expected, DefaultExtractionConfig())
	if err != nil {
		t.Fatalf("ExtractMappedFormulas: %v", err)
	}

	if got := templates["Gross Amt"]; got != "=D{row}+E{row}" {
		t.Errorf("Gross Amt = %q, want =D{row}+E{row}", got)
	}
	for col := range templates {
		if col == "Sr" || col == "Emp ID" {
			t.Errorf("unmapped sheet column %q contributed a template", col)
		}
	}
}
