// Package metakit is the high-level entry point of the reflective value
// system. It wires the three registries — type names, conversions, and
// reflection metadata — together with the capability facade, so one call
// registers a type everywhere it needs to be known.
//
// # Quick start
//
//	sys := metakit.New(metakit.Options{})
//	metakit.RegisterType[Person](sys, "Person")
//
//	v := boxed.Box(Person{Name: "ada"})
//	out, err := sys.CallMethod(v, "update", boxed.Box("grace"), boxed.Box(41))
//
// The package-level Default system wraps the process-wide registries, which
// initialize lazily on first touch and live until process exit.
//
// For the individual layers see meta (descriptors and the type registry),
// meta/boxed (the value handle), meta/convert (the conversion engine),
// meta/typemeta (methods, properties, events, constructors), and
// meta/facade (capability probing and dispatch).
package metakit
