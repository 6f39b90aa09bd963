package sysparm

import (
	"sort"
	"strings"

	"github.com/snquery/snquery/internal/queryir"
)

// DefaultOrderField is the order-by field the basic builder falls back to.
const DefaultOrderField = "opened_at"

// Match is one field/value pair for the basic builder. Pairs are ordered:
// the builder emits them exactly as given, so output is deterministic.
type Match struct {
	Field string
	Value string
}

// MatchesFromMap converts a field→value map to ordered Match pairs, sorted
// lexicographically by field name. Map iteration order is not reproducible;
// sorting keeps the encoded string stable across runs.
func MatchesFromMap(m map[string]string) []Match {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	matches := make([]Match, 0, len(m))
	for _, f := range fields {
		matches = append(matches, Match{Field: f, Value: m[f]})
	}
	return matches
}

// Basic builds the simple query form: one order key plus exact-match and
// contains-match pairs, always AND-combined. No grouping, no joins, and no
// operator table - only equality and LIKE exist in this mode.
//
// Zero-value defaults: OrderBy falls back to DefaultOrderField and
// Direction to descending.
type Basic struct {
	OrderBy       string
	Direction     queryir.Direction
	MatchExact    []Match
	MatchContains []Match
}

// Encode builds the query string by strict concatenation: the order-by
// fragment first, then one "^field=value" per exact match and one
// "^fieldLIKEvalue" per contains match, in pair order. Field names are
// lowercased; values pass through verbatim.
//
// Basic encoding cannot fail: there is nothing to validate beyond the
// direction default.
func (b Basic) Encode() string {
	var sb strings.Builder

	if b.Direction == queryir.Asc {
		sb.WriteString("ORDERBY")
	} else {
		sb.WriteString("ORDERBYDESC")
	}
	if b.OrderBy != "" {
		sb.WriteString(b.OrderBy)
	} else {
		sb.WriteString(DefaultOrderField)
	}

	for _, m := range b.MatchExact {
		sb.WriteString("^")
		sb.WriteString(strings.ToLower(m.Field))
		sb.WriteString("=")
		sb.WriteString(m.Value)
	}
	for _, m := range b.MatchContains {
		sb.WriteString("^")
		sb.WriteString(strings.ToLower(m.Field))
		sb.WriteString("LIKE")
		sb.WriteString(m.Value)
	}

	return sb.String()
}
