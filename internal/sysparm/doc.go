// Package sysparm compiles typed filter and sort clauses into the encoded
// query string understood by record-query APIs (the sysparm_query wire
// form: caret-joined comparison and order-by tokens).
//
// Two builders share the output encoding:
//
//   - Encoder compiles the advanced form: an ordered sequence of
//     queryir.Term filter clauses and queryir.OrderKey sort keys, with
//     arbitrary boolean joins and multi-key ordering.
//   - Basic builds the simple form: exact-match and contains-match field
//     pairs plus a single order key, always AND-combined.
//
// Both are pure functions of their input and the read-only operator table;
// concurrent use from multiple goroutines is safe.
//
// The output is an opaque string. No URL escaping is performed here - that
// belongs to the transport layer that puts the string on the wire.
package sysparm
