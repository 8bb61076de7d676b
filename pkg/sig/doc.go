// Package sig implements coogle's signature representation and matching
// engine: a textual function-type query and a stream of declaration
// type-spellings are lowered into a normalized structural form that
// supports O(1) wildcard-aware equality checks across tens of thousands
// of candidates without per-comparison allocation.
//
// All strings live in a chunked Arena owned by a Storage; signatures are
// views into that arena and share its lifetime. Normalization runs once,
// at parse/build time, so matching is pure byte equality afterwards.
package sig
