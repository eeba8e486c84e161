// Package typemeta implements the per-type reflection registry of the
// metakit value system: constructors, named methods with overloads,
// properties, and events with prioritized listeners, all dispatched against
// boxed values at runtime.
//
// # Overview
//
// Each registered type name owns an Entry. Methods are ordered overload
// lists; dispatch scans overloads in registration order and the first one
// that does not reject the argument list wins. Rejection is signalled by
// returning an error wrapping meta.ErrArgumentMismatch; any other error
// means the overload ran and failed, and propagates unchanged. When every
// overload rejects, the call fails with meta.ErrNotFound.
//
// Properties pair a getter with an optional setter, a default value, and a
// description. Events hold listeners ordered by descending priority, stable
// for equal priorities.
//
// # Usage
//
//	r := typemeta.NewRegistry(typemeta.Options{})
//	r.AddMethod("person", "update", updateNameAge)
//	r.AddMethod("person", "update", updateNameAgeAddress)
//	out, err := r.CallMethod(target, "update", args)
//
// # Locking
//
// Entries are read-mostly. Lookups take a shared lock; registrations take
// the exclusive lock. Callables, listeners, getters and setters are always
// invoked after the lock is released, so user code may re-enter the
// registry freely.
package typemeta
