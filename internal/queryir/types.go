package queryir

// Term represents one filter clause.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the encoder.
//
// Term types:
//   - Compare: field OP value comparison
//   - Unary: field OP comparison without a value (e.g. ISEMPTY)
//   - Join: boolean connective between neighbouring comparisons
type Term interface {
	filterTerm() // Marker method - seals interface to this package
}

// JoinKind names a boolean connective between filter comparisons.
type JoinKind string

const (
	// JoinAnd conjoins the surrounding comparisons.
	JoinAnd JoinKind = "and"

	// JoinOr disjoins the surrounding comparisons.
	JoinOr JoinKind = "or"

	// JoinGroup starts a new disjunctive group (a fresh sub-query that is
	// OR-ed against everything before it).
	JoinGroup JoinKind = "group"
)

// Compare is a standard three-part comparison: field, symbolic operator,
// literal value.
//
// Example:
//
//	Compare{Field: "state", Op: "-eq", Value: "1"}
//
// encodes (with the default table) to:
//
//	state=1
//
// Op is the symbolic operator name, resolved against the operator table at
// encode time. The value is emitted verbatim - no quoting, no escaping.
// Whether the resolved operator actually wants a value is not cross-checked
// in this form; see Unary for the checked no-value variant.
type Compare struct {
	Field string // record field name
	Op    string // symbolic operator name (e.g. "-eq")
	Value string // literal value, emitted verbatim
}

func (Compare) filterTerm() {}

// Unary is a two-part comparison for operators that take no value,
// such as ISEMPTY.
//
// Example:
//
//	Unary{Field: "assigned_to", Op: "-isempty"}
//
// encodes to:
//
//	assigned_toISEMPTY
//
// Encoding fails with a missing-value error when the resolved operator has
// RequiresValue set.
type Unary struct {
	Field string // record field name
	Op    string // symbolic operator name (e.g. "-isempty")
}

func (Unary) filterTerm() {}

// Join is a boolean connective between the comparisons immediately before
// and after it.
//
// Joins carry their own leading separator in the encoded form, so encoded
// fragments concatenate with no extra glue:
//
//	and   → ^
//	or    → ^OR
//	group → ^NQ
//
// A Join must never be the last term of a filter sequence.
type Join struct {
	Kind JoinKind
}

func (Join) filterTerm() {}

// Direction names a sort direction.
type Direction string

const (
	// Asc sorts ascending. The zero Direction on an OrderKey also means
	// ascending.
	Asc Direction = "asc"

	// Desc sorts descending.
	Desc Direction = "desc"
)

// OrderKey is one sort instruction. Multiple keys sort by the first key,
// then the second, and so on.
//
// A zero Direction defaults to ascending, so OrderKey{Field: "state"} and
// OrderKey{Field: "state", Direction: Asc} encode identically.
type OrderKey struct {
	Field     string
	Direction Direction
}

// NewCompare returns a three-part comparison term.
func NewCompare(field, op, value string) Compare {
	return Compare{Field: field, Op: op, Value: value}
}

// NewUnary returns a no-value comparison term.
func NewUnary(field, op string) Unary {
	return Unary{Field: field, Op: op}
}

// NewJoin returns a join term of the given kind.
func NewJoin(kind JoinKind) Join {
	return Join{Kind: kind}
}

// NewOrderKey returns a sort key. Pass a zero Direction for the ascending
// default.
func NewOrderKey(field string, direction Direction) OrderKey {
	return OrderKey{Field: field, Direction: direction}
}
