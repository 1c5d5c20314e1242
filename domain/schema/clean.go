package schema

import "math"

// CleanValue replaces NaN and infinite float values with nil, recursing into
// maps and slices. Everything else passes through untouched. Numeric
// pollution is a data-quality condition, not an error: it is coerced to
// null at every record boundary, both inbound and outbound.
func CleanValue(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return t
	case map[string]interface{}:
		cleaned := make(map[string]interface{}, len(t))
		for k, val := range t {
			cleaned[k] = CleanValue(val)
		}
		return cleaned
	case []interface{}:
		cleaned := make([]interface{}, len(t))
		for i, val := range t {
			cleaned[i] = CleanValue(val)
		}
		return cleaned
	default:
		return v
	}
}

// CleanRecord applies CleanValue to every field of a record.
func CleanRecord(record map[string]interface{}) map[string]interface{} {
	if record == nil {
		return nil
	}
	return CleanValue(record).(map[string]interface{})
}
