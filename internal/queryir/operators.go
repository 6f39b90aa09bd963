package queryir

import "fmt"

// Operator is one entry of the operator table: a symbolic operator name,
// the token it encodes to on the wire, and whether a comparison using it
// must carry a value.
type Operator struct {
	// Name is the symbolic operator, e.g. "-eq" or "-like".
	Name string

	// QueryOperator is the encoded wire token, e.g. "=" or "LIKE".
	QueryOperator string

	// RequiresValue reports whether the operator needs a right-hand value.
	// Operators such as ISEMPTY compare against nothing and set it false.
	RequiresValue bool
}

// Table is an immutable operator lookup, built once at startup and
// read-only afterwards. Lookups are by symbolic name.
type Table struct {
	ops    []Operator
	byName map[string]Operator
}

// NewTable builds a Table from the given operators, preserving their
// order for listing. Duplicate names are rejected.
func NewTable(ops []Operator) (*Table, error) {
	t := &Table{
		ops:    make([]Operator, 0, len(ops)),
		byName: make(map[string]Operator, len(ops)),
	}
	for _, op := range ops {
		if op.Name == "" {
			return nil, fmt.Errorf("operator with empty name")
		}
		if _, exists := t.byName[op.Name]; exists {
			return nil, fmt.Errorf("duplicate operator %q", op.Name)
		}
		t.ops = append(t.ops, op)
		t.byName[op.Name] = op
	}
	return t, nil
}

// Lookup returns the operator with the given symbolic name.
func (t *Table) Lookup(name string) (Operator, bool) {
	op, ok := t.byName[name]
	return op, ok
}

// Operators returns the table entries in their original order.
// The returned slice is a copy.
func (t *Table) Operators() []Operator {
	out := make([]Operator, len(t.ops))
	copy(out, t.ops)
	return out
}

// Len returns the number of operators in the table.
func (t *Table) Len() int {
	return len(t.ops)
}

// DefaultTable returns the standard operator set.
//
// The set covers equality, ordering, pattern containment and the no-value
// emptiness checks. Callers needing a different vocabulary build their own
// Table (see the optable package for the config-file form).
func DefaultTable() *Table {
	t, err := NewTable([]Operator{
		{Name: "-eq", QueryOperator: "=", RequiresValue: true},
		{Name: "-ne", QueryOperator: "!=", RequiresValue: true},
		{Name: "-lt", QueryOperator: "<", RequiresValue: true},
		{Name: "-le", QueryOperator: "<=", RequiresValue: true},
		{Name: "-gt", QueryOperator: ">", RequiresValue: true},
		{Name: "-ge", QueryOperator: ">=", RequiresValue: true},
		{Name: "-like", QueryOperator: "LIKE", RequiresValue: true},
		{Name: "-notlike", QueryOperator: "NOTLIKE", RequiresValue: true},
		{Name: "-startswith", QueryOperator: "STARTSWITH", RequiresValue: true},
		{Name: "-endswith", QueryOperator: "ENDSWITH", RequiresValue: true},
		{Name: "-in", QueryOperator: "IN", RequiresValue: true},
		{Name: "-notin", QueryOperator: "NOT IN", RequiresValue: true},
		{Name: "-between", QueryOperator: "BETWEEN", RequiresValue: true},
		{Name: "-isempty", QueryOperator: "ISEMPTY", RequiresValue: false},
		{Name: "-isnotempty", QueryOperator: "ISNOTEMPTY", RequiresValue: false},
	})
	if err != nil {
		// The default set is a compile-time constant; a duplicate here is
		// a programming error.
		panic(err)
	}
	return t
}
