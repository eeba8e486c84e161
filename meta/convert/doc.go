// Package convert implements the directed conversion graph of the metakit
// value system.
//
// # Overview
//
// An Engine holds directed conversion edges between type descriptors. Each
// edge is a function from one concrete type to another: a static cast inside
// a hierarchy, a dynamic downcast that may reject the runtime value, or any
// caller-supplied transformation. Conversion between two descriptors runs
// the shortest chain of edges found by breadth-first search; the discovered
// descriptor sequence is memoized per (from, to) pair and invalidated
// whenever the edge set changes.
//
// Fewer hops are strictly better: each edge may lose precision or allocate,
// so the engine never prefers a longer route. Ties resolve to the first path
// discovered, which follows edge insertion order.
//
// # Container conversions
//
// When both endpoints are containers of the same shape and an element edge
// exists, the engine converts elementwise: slices to slices, sets to sets,
// and maps with convertible value types.
//
// # Usage
//
//	e := convert.NewEngine(convert.Options{})
//	e.Register(derived, base, convert.Upcast[*Circle, Shape]())
//	out, err := e.Convert(derived, base, &Circle{R: 2})
//
// Edge functions are never invoked while the engine's lock is held.
package convert
