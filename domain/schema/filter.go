package schema

import "strings"

// FilterOp is the closed set of filter operators recognized on list and
// export queries. Incoming keys select an operator by suffix convention
// (`*_contains`, `*_gte`, `*_lte`, `text_search`); everything else is an
// exact match.
type FilterOp string

const (
	OpEquals     FilterOp = "eq"
	OpContains   FilterOp = "contains"
	OpGTE        FilterOp = "gte"
	OpLTE        FilterOp = "lte"
	OpTextSearch FilterOp = "text"
)

// TextSearchFields are the record fields a free-text search spans.
var TextSearchFields = []string{
	"name_of_employees",
	"email",
	"emp_id",
	"designation",
	"name_of_site",
}

// Filter is one parsed filter condition against a record field. Field is in
// storage-normalized form; for OpTextSearch it is empty.
type Filter struct {
	Field string
	Op    FilterOp
	Value interface{}
}

// ParseFilters translates a raw key/value filter map into the closed
// operator set. Nil values are skipped. The persistence adapter translates
// the result into its native query form.
func ParseFilters(raw map[string]interface{}) []Filter {
	filters := make([]Filter, 0, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}

		switch {
		case key == "text_search":
			filters = append(filters, Filter{Op: OpTextSearch, Value: value})
		case strings.HasSuffix(key, "_contains"):
			field := NormalizeForStorage(strings.TrimSuffix(key, "_contains"))
			filters = append(filters, Filter{Field: field, Op: OpContains, Value: value})
		case strings.HasSuffix(key, "_gte"):
			field := NormalizeForStorage(strings.TrimSuffix(key, "_gte"))
			filters = append(filters, Filter{Field: field, Op: OpGTE, Value: value})
		case strings.HasSuffix(key, "_lte"):
			field := NormalizeForStorage(strings.TrimSuffix(key, "_lte"))
			filters = append(filters, Filter{Field: field, Op: OpLTE, Value: value})
		default:
			filters = append(filters, Filter{Field: NormalizeForStorage(key), Op: OpEquals, Value: value})
		}
	}
	return filters
}
