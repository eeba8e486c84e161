package boxed

import (
	"io"
	"reflect"
	"sync"
)

// VTable is the per-concrete-type capability dispatch table. The facade
// package builds one when a type is registered; every Value constructed for
// that type afterwards carries a pointer to it, so capability dispatch is a
// single pointer load. Any field may be nil when the concrete type does not
// satisfy the capability.
type VTable struct {
	// Print writes a human-readable rendering of v to w.
	Print func(v any, w io.Writer) error

	// ToString renders v as a string.
	ToString func(v any) string

	// Equals reports whether v equals other. other carries the same
	// concrete type unless a cross-type comparator was installed.
	Equals func(v, other any) bool

	// Less reports whether v orders before other.
	Less func(v, other any) bool

	// Serialize renders v to the type's own text form.
	Serialize func(v any) (string, error)

	// Deserialize parses s and returns the replacement payload.
	Deserialize func(v any, s string) (any, error)

	// Clone returns an independently owned copy of v.
	Clone func(v any) (any, error)

	// Call invokes v with the given arguments.
	Call func(v any, args []*Value) (*Value, error)
}

// vtables maps reflect.Type to the *VTable built at registration time.
// Read-mostly: one store per registered type, a load per construction.
var vtables sync.Map

// RegisterVTable installs the capability table for concrete type rt.
// Values of rt constructed after this call dispatch through vt.
func RegisterVTable(rt reflect.Type, vt *VTable) {
	vtables.Store(rt, vt)
}

// VTableFor returns the capability table for rt, or nil when the type was
// never registered.
func VTableFor(rt reflect.Type) *VTable {
	if rt == nil {
		return nil
	}
	if vt, ok := vtables.Load(rt); ok {
		return vt.(*VTable)
	}
	return nil
}
