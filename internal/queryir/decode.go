package queryir

import "fmt"

// Maximum clause tuple sizes for the loosely typed input forms.
const (
	maxFilterItems = 3
	maxSortItems   = 2
)

// DecodeFilter converts loosely typed filter input into Term values.
//
// The input is either a single clause or a list of clauses; both shapes are
// accepted. A clause is a small tuple whose length determines its meaning:
//
//	[]            no-op, skipped
//	[join]        join token: and, or, group (a bare string works too)
//	[field, op]   no-value comparison
//	[field, op, value]  standard comparison
//
// Shape detection probes the first element: a scalar first element means the
// whole input is one clause and is wrapped; a nested sequence means the
// input is already a list of clauses. Empty input decodes to no terms.
//
// Decoding only enforces tuple shape (arity, scalar elements). Operator and
// join-token validity are checked by the encoder, so directly constructed
// terms get the same checks as decoded ones.
func DecodeFilter(input any) ([]Term, error) {
	clauses, err := normalize(input)
	if err != nil {
		return nil, err
	}

	var terms []Term
	for i, clause := range clauses {
		switch len(clause) {
		case 0:
			// Empty clause is a no-op.
		case 1:
			terms = append(terms, Join{Kind: JoinKind(clause[0])})
		case 2:
			terms = append(terms, Unary{Field: clause[0], Op: clause[1]})
		case 3:
			terms = append(terms, Compare{Field: clause[0], Op: clause[1], Value: clause[2]})
		default:
			return nil, NewTooManyItemsError(i, len(clause), maxFilterItems, "filter")
		}
	}
	return terms, nil
}

// DecodeSort converts loosely typed sort input into OrderKey values.
//
// Accepts the same single-clause / list-of-clauses shapes as DecodeFilter.
// A clause is [field] (ascending default) or [field, direction]. Direction
// validity is checked by the encoder.
func DecodeSort(input any) ([]OrderKey, error) {
	clauses, err := normalize(input)
	if err != nil {
		return nil, err
	}

	var keys []OrderKey
	for i, clause := range clauses {
		switch len(clause) {
		case 0:
			// Empty clause is a no-op.
		case 1:
			keys = append(keys, OrderKey{Field: clause[0]})
		case 2:
			keys = append(keys, OrderKey{Field: clause[0], Direction: Direction(clause[1])})
		default:
			return nil, NewTooManyItemsError(i, len(clause), maxSortItems, "sort")
		}
	}
	return keys, nil
}

// normalize turns the dual-shape input into a list of string clauses.
//
// A bare scalar is one single-element clause. A sequence whose first
// element is a scalar is one clause. A sequence of sequences is already a
// clause list. nil and empty sequences normalize to no clauses.
func normalize(input any) ([][]string, error) {
	if input == nil {
		return nil, nil
	}

	// A bare string is sugar for a one-element clause (a join token).
	if s, ok := scalarString(input); ok {
		return [][]string{{s}}, nil
	}

	seq, ok := asSequence(input)
	if !ok {
		return nil, fmt.Errorf("clause input must be a sequence, got %T", input)
	}
	if len(seq) == 0 {
		return nil, nil
	}

	// Scalar first element: the whole input is one clause.
	if _, ok := scalarString(seq[0]); ok {
		clause, err := scalarClause(seq)
		if err != nil {
			return nil, err
		}
		return [][]string{clause}, nil
	}

	// Otherwise a list of clauses, each itself a scalar tuple or a bare
	// join-token string.
	clauses := make([][]string, 0, len(seq))
	for i, elem := range seq {
		if s, ok := scalarString(elem); ok {
			clauses = append(clauses, []string{s})
			continue
		}
		inner, ok := asSequence(elem)
		if !ok {
			return nil, fmt.Errorf("clause %d: expected sequence or string, got %T", i, elem)
		}
		clause, err := scalarClause(inner)
		if err != nil {
			return nil, fmt.Errorf("clause %d: %w", i, err)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// scalarClause converts one clause tuple to strings, rejecting nested
// sequences inside a clause.
func scalarClause(seq []any) ([]string, error) {
	clause := make([]string, 0, len(seq))
	for i, elem := range seq {
		s, ok := scalarString(elem)
		if !ok {
			return nil, fmt.Errorf("item %d: expected scalar, got %T", i, elem)
		}
		clause = append(clause, s)
	}
	return clause, nil
}

// asSequence reports whether v is a generic sequence.
// YAML and JSON decoders produce []any; []string shows up from typed callers.
func asSequence(v any) ([]any, bool) {
	switch seq := v.(type) {
	case []any:
		return seq, true
	case []string:
		out := make([]any, len(seq))
		for i, s := range seq {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// scalarString coerces a scalar to its string form. Numbers and bools are
// accepted because YAML decodes unquoted literals to them; they encode by
// their literal text.
func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case int, int64, uint64, bool:
		return fmt.Sprintf("%v", s), true
	case float64:
		// YAML turns unquoted 1.5 into a float; format without exponent.
		return fmt.Sprintf("%g", s), true
	default:
		return "", false
	}
}
