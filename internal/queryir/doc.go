// Package queryir defines the typed clause representation for encoded
// record queries.
//
// A query is built from two ordered sequences:
//
//   - filter terms: comparisons and the join tokens between them
//   - order keys: multi-key sort instructions
//
// Both sequences are compiled by the sysparm package into a single encoded
// query string. The clause types here carry no encoding knowledge; they are
// plain values classified by type, not by tuple arity.
//
// SEALED INTERFACE:
//
// Term is a sealed interface using the marker method pattern. Only types in
// this package implement Term, which keeps type switches in the encoder
// exhaustive:
//
//	switch term := t.(type) {
//	case queryir.Compare:
//	    // field OP value
//	case queryir.Unary:
//	    // field OP (no value)
//	case queryir.Join:
//	    // and / or / group
//	}
//
// DYNAMIC INPUTS:
//
// Callers holding loosely typed clause data (YAML documents, generic
// []any tuples) convert it with DecodeFilter and DecodeSort, which accept
// both a single clause and a list of clauses. Typed callers construct
// terms directly and skip decoding entirely.
//
// The operator table (Operator, Table) is static configuration: built once,
// read-only afterwards. Concurrent encoding against a shared table needs no
// locking.
package queryir
