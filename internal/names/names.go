// Package names derives display and bare names for runtime types.
package names

import "reflect"

// Display returns the human-readable name for rt, e.g. "[]int" or
// "*fits.Header". A nil rt names the undefined type.
func Display(rt reflect.Type) string {
	if rt == nil {
		return "<undefined>"
	}
	return rt.String()
}

// Bare strips pointer decoration from rt until a non-pointer type remains.
func Bare(rt reflect.Type) reflect.Type {
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt
}

// Ref decorates a display name as a reference form.
func Ref(base string) string {
	return base + " &"
}

// ConstRef decorates a display name as a readonly reference form.
func ConstRef(base string) string {
	return "const " + base + " &"
}
