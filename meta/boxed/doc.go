// Package boxed implements the type-erased value handle of the metakit
// value system.
//
// # Overview
//
// A Value wraps one payload of any concrete type behind a uniform handle and
// carries metadata about it: the type descriptor, flags (reference, return
// value, readonly, null), creation and modification timestamps, a best
// effort access counter, and an attribute map from names to further Values.
//
// Handles are cheap. Clone returns a second handle to the same shared
// record, so attribute mutations made through one handle are visible through
// every other handle of the same logical value.
//
// # Payload forms
//
// The payload is a tagged sum of three forms:
//
//   - empty: no payload; the descriptor is the undefined descriptor
//   - owned: the record owns a copy of the value
//   - borrowed: the record holds a pointer to external storage whose
//     lifetime is governed by the caller
//
// Construct with Box (owning), BoxRef (borrowed, mutable), BoxConstRef
// (borrowed, readonly), or BoxVoid (empty):
//
//	x := boxed.Box(42)
//	n, ok := boxed.TryCast[int](x)   // 42, true
//
//	s := "original"
//	r := boxed.BoxRef(&s)
//	p, _ := boxed.TryCast[*string](r)
//	*p = "mutated"                   // s == "mutated"
//
// # Thread safety
//
// Each record carries one reader-writer lock guarding payload, flags,
// attributes, and timestamps. Read operations take shared access, writes
// take exclusive access. The lock is never held while user-supplied
// capability hooks run.
package boxed
