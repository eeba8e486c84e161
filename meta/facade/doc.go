// Package facade implements capability probing and skill dispatch for the
// metakit value system.
//
// # Overview
//
// Six optional skills are probed per concrete type: printable, stringable,
// comparable, serializable, cloneable, and callable. Probing happens once,
// when the type is registered; the result is a capability vtable stored
// next to the type and stamped into every boxed value of that type at
// construction. Per-call dispatch is then a single pointer load.
//
// A type opts into a skill by implementing the matching interface (Printer,
// fmt.Stringer, Equaler, Lesser, Serializer, Deserializer, Cloner, Caller).
// Where the skill has a natural meaning for plain kinds the probe fills in
// a fallback: numbers and strings become stringable, serializable and
// ordered; comparable kinds gain equality; value types without hidden
// indirection gain cloning; func values gain invocation.
//
// # Strict and lenient dispatch
//
// Invoke is strict: a skill the type does not satisfy fails with
// meta.ErrUnsupported. The convenience entry points apply the documented
// fallbacks instead: Print falls back to the debug rendering, ToString to
// the descriptor name, and Equal / LessThan to "never equal, never less".
//
//	facade.Register[Person]()
//	v := boxed.Box(Person{Name: "ada"})
//	s, err := facade.Serialize(v)
package facade
