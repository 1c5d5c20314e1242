package postgres

import (
	"fmt"
	"strings"

	"paysheet/domain/schema"
)

// buildFilterClauses translates the closed filter-operator set into SQL
// conditions over the JSONB data column. Field names and values are both
// bound as parameters; nothing is spliced into the query text. argOffset is
// the number of parameters already bound by the caller.
func buildFilterClauses(filters []schema.Filter, argOffset int) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	n := argOffset

	arg := func(v interface{}) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	for _, f := range filters {
		switch f.Op {
		case schema.OpEquals:
			clauses = append(clauses, fmt.Sprintf("data->>%s = %s", arg(f.Field), arg(f.Value)))
		case schema.OpContains:
			clauses = append(clauses, fmt.Sprintf("data->>%s ILIKE '%%' || %s || '%%'", arg(f.Field), arg(f.Value)))
		case schema.OpGTE:
			clauses = append(clauses, fmt.Sprintf("(data->>%s)::numeric >= %s", arg(f.Field), arg(f.Value)))
		case schema.OpLTE:
			clauses = append(clauses, fmt.Sprintf("(data->>%s)::numeric <= %s", arg(f.Field), arg(f.Value)))
		case schema.OpTextSearch:
			valueArg := arg(f.Value)
			var ors []string
			for _, field := range schema.TextSearchFields {
				ors = append(ors, fmt.Sprintf("data->>%s ILIKE '%%' || %s || '%%'", arg(field), valueArg))
			}
			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(clauses, " AND "), args
}
