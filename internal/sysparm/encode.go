package sysparm

import (
	"fmt"
	"strings"

	"github.com/snquery/snquery/internal/queryir"
)

// Join tokens carry their own leading separator, so encoded fragments
// concatenate with no extra glue.
var joinTokens = map[queryir.JoinKind]string{
	queryir.JoinAnd:   "^",
	queryir.JoinOr:    "^OR",
	queryir.JoinGroup: "^NQ",
}

// Encoder compiles filter terms and order keys to one encoded query string.
//
// The zero Encoder is not usable; construct with NewEncoder. The operator
// table is read-only after construction, so a single Encoder may be shared
// across goroutines.
type Encoder struct {
	table *queryir.Table
}

// NewEncoder creates an Encoder over the given operator table.
// A nil table selects queryir.DefaultTable.
func NewEncoder(table *queryir.Table) *Encoder {
	if table == nil {
		table = queryir.DefaultTable()
	}
	return &Encoder{table: table}
}

// Table returns the operator table the encoder resolves against.
func (e *Encoder) Table() *queryir.Table {
	return e.table
}

// Encode compiles a filter sequence and a sort sequence into the encoded
// query string.
//
// Fragment order is the sole carrier of boolean-grouping semantics: filter
// fragments concatenate with no separator (joins embed their own leading
// caret), a non-empty filter section is closed with a trailing "^", and
// sort keys after the first are separated by "^".
//
// Encoding is fail-fast: the first invalid clause aborts the build with a
// *queryir.BuildError and no partial string is returned.
func (e *Encoder) Encode(filter []queryir.Term, sort []queryir.OrderKey) (string, error) {
	fragments, err := e.encodeFilter(filter)
	if err != nil {
		return "", err
	}

	sortFragments, err := encodeSort(sort)
	if err != nil {
		return "", err
	}
	fragments = append(fragments, sortFragments...)

	return strings.Join(fragments, ""), nil
}

// Check reports every invalid clause in the filter and sort sequences.
//
// Unlike Encode it does not stop at the first defect: all errors are
// collected, in clause order, filter before sort. An empty slice means
// Encode would succeed on the same input.
func (e *Encoder) Check(filter []queryir.Term, sort []queryir.OrderKey) []error {
	var errs []error

	for i, term := range filter {
		switch t := term.(type) {
		case queryir.Compare:
			if _, ok := e.table.Lookup(t.Op); !ok {
				errs = append(errs, queryir.NewUnknownOperatorError(i, t.Field, t.Op))
			}

		case queryir.Unary:
			op, ok := e.table.Lookup(t.Op)
			if !ok {
				errs = append(errs, queryir.NewUnknownOperatorError(i, t.Field, t.Op))
			} else if op.RequiresValue {
				errs = append(errs, queryir.NewMissingValueError(i, t.Field, t.Op))
			}

		case queryir.Join:
			if _, ok := joinTokens[t.Kind]; !ok {
				errs = append(errs, queryir.NewUnsupportedJoinError(i, string(t.Kind)))
			} else if i == len(filter)-1 {
				errs = append(errs, queryir.NewTrailingJoinError(i, string(t.Kind)))
			}

		default:
			errs = append(errs, fmt.Errorf("unsupported filter term: %T", term))
		}
	}

	for i, key := range sort {
		switch key.Direction {
		case "", queryir.Asc, queryir.Desc:
		default:
			errs = append(errs, queryir.NewInvalidDirectionError(i, key.Field, string(key.Direction)))
		}
	}

	return errs
}

// encodeFilter emits one fragment per term, in order.
//
// Comparisons resolve their symbolic operator against the table; joins map
// to their caret token. A join may not be the last term. If any fragment
// was produced, a trailing "^" closes the filter section.
func (e *Encoder) encodeFilter(filter []queryir.Term) ([]string, error) {
	var fragments []string

	for i, term := range filter {
		switch t := term.(type) {
		case queryir.Compare:
			op, ok := e.table.Lookup(t.Op)
			if !ok {
				return nil, queryir.NewUnknownOperatorError(i, t.Field, t.Op)
			}
			// RequiresValue is deliberately not cross-checked here: a
			// no-value operator in three-part form still encodes, matching
			// the two-part check being the only value-requirement gate.
			fragments = append(fragments, t.Field+op.QueryOperator+t.Value)

		case queryir.Unary:
			op, ok := e.table.Lookup(t.Op)
			if !ok {
				return nil, queryir.NewUnknownOperatorError(i, t.Field, t.Op)
			}
			if op.RequiresValue {
				return nil, queryir.NewMissingValueError(i, t.Field, t.Op)
			}
			fragments = append(fragments, t.Field+op.QueryOperator)

		case queryir.Join:
			token, ok := joinTokens[t.Kind]
			if !ok {
				return nil, queryir.NewUnsupportedJoinError(i, string(t.Kind))
			}
			if i == len(filter)-1 {
				return nil, queryir.NewTrailingJoinError(i, string(t.Kind))
			}
			fragments = append(fragments, token)

		default:
			return nil, fmt.Errorf("unsupported filter term: %T", term)
		}
	}

	if len(fragments) > 0 {
		// Close the filter section before any sort keys.
		fragments = append(fragments, "^")
	}
	return fragments, nil
}

// encodeSort emits ORDERBY / ORDERBYDESC fragments, caret-separated between
// keys. The first key carries no leading separator of its own; the filter
// section's trailing caret already delimits it.
func encodeSort(sort []queryir.OrderKey) ([]string, error) {
	var fragments []string

	for i, key := range sort {
		var prefix string
		switch key.Direction {
		case "", queryir.Asc:
			prefix = "ORDERBY"
		case queryir.Desc:
			prefix = "ORDERBYDESC"
		default:
			return nil, queryir.NewInvalidDirectionError(i, key.Field, string(key.Direction))
		}

		if i > 0 {
			fragments = append(fragments, "^")
		}
		fragments = append(fragments, prefix+key.Field)
	}
	return fragments, nil
}
