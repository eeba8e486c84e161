// Package meta provides runtime type identity for the metakit value system.
//
// # Overview
//
// This package implements the two foundations everything else builds on: the
// type descriptor and the process-wide type registry. A Descriptor is a
// compact, comparable identity for one concrete Go type together with a trait
// bitset describing its shape (pointer, arithmetic, class-like, and so on).
// The Registry maps human-readable type names to descriptors and to zero
// argument factories, so callers can discover and instantiate types by name
// at runtime.
//
// # Key Types
//
//   - Descriptor: immutable identity + trait bitset for a type
//   - Trait / TraitSet: individual flags and the packed flag set
//   - Registry: thread-safe name -> descriptor and name -> factory map
//
// # Descriptors
//
// Descriptors are obtained statically or dynamically:
//
//	d := meta.TypeOf[[]int]()          // from a type parameter
//	d := meta.TypeFor(v)               // from an instance's dynamic type
//
// Two descriptors are equal iff they identify the same type under the same
// decoration. BareEqual ignores reference, const, and pointer decoration, so
// a plain T, a *T and a readonly reference to T all compare bare-equal.
//
// # The registry
//
// The package-level registry is lazily initialized on first use:
//
//	meta.Types().Register("vector<int>", meta.TypeOf[[]int]())
//	d, ok := meta.Types().Lookup("vector<int>")
//
// Registration of a duplicate name follows the registry's duplicate policy
// (error by default).
//
// This package also defines the error taxonomy shared by the boxed, convert,
// typemeta and facade packages. Match with errors.Is:
//
//	if errors.Is(err, meta.ErrNotFound) { ... }
package meta
