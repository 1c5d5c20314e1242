package schema

import (
	"math"
	"testing"
)

// TestCleanValueScalars tests NaN and Inf coercion to nil
func TestCleanValueScalars(t *testing.T) {
	if CleanValue(math.NaN()) != nil {
		t.Error("NaN must clean to nil")
	}
	if CleanValue(math.Inf(1)) != nil {
		t.Error("+Inf must clean to nil")
	}
	if CleanValue(math.Inf(-1)) != nil {
		t.Error("-Inf must clean to nil")
	}
	if CleanValue(float32(math.NaN())) != nil {
		t.Error("float32 NaN must clean to nil")
	}
	if got := CleanValue(42.5); got != 42.5 {
		t.Errorf("finite float must pass through, got %v", got)
	}
	if got := CleanValue("hello"); got != "hello" {
		t.Errorf("string must pass through, got %v", got)
	}
	if got := CleanValue(nil); got != nil {
		t.Errorf("nil must pass through, got %v", got)
	}
}

// TestCleanValueNested tests recursion into maps and slices
func TestCleanValueNested(t *testing.T) {
	v := map[string]interface{}{
		"ok":  1.5,
		"bad": math.NaN(),
		"list": []interface{}{
			math.Inf(1),
			"text",
			map[string]interface{}{"inner": math.NaN()},
		},
	}

	cleaned := CleanValue(v).(map[string]interface{})
	if cleaned["ok"] != 1.5 {
		t.Errorf("ok = %v", cleaned["ok"])
	}
	if cleaned["bad"] != nil {
		t.Errorf("bad = %v, want nil", cleaned["bad"])
	}

	list := cleaned["list"].([]interface{})
	if list[0] != nil {
		t.Errorf("list[0] = %v, want nil", list[0])
	}
	if list[1] != "text" {
		t.Errorf("list[1] = %v", list[1])
	}
	inner := list[2].(map[string]interface{})
	if inner["inner"] != nil {
		t.Errorf("inner = %v, want nil", inner["inner"])
	}
}

// TestCleanRecord tests record-level cleaning
func TestCleanRecord(t *testing.T) {
	if CleanRecord(nil) != nil {
		t.Error("nil record stays nil")
	}

	record := map[string]interface{}{"net": math.NaN(), "name": "Asha"}
	cleaned := CleanRecord(record)
	if cleaned["net"] != nil {
		t.Errorf("net = %v, want nil", cleaned["net"])
	}
	if cleaned["name"] != "Asha" {
		t.Errorf("name = %v", cleaned["name"])
	}
}
