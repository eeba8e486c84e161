package meta

import "reflect"

// Trait is one flag in a descriptor's trait bitset.
type Trait uint8

// Trait flags, in bitset index order. The index order is the order traits
// appear in ToJSON output.
const (
	TraitConst Trait = iota
	TraitReference
	TraitPointer
	TraitVoid
	TraitArithmetic
	TraitArray
	TraitBoundedArray
	TraitUnboundedArray
	TraitEnum
	TraitScopedEnum
	TraitClass
	TraitFunction
	TraitTrivial
	TraitStandardLayout
	TraitDefaultConstructible
	TraitMovable
	TraitCopyable
	TraitAggregate
	TraitFinal
	TraitAbstract
	TraitPolymorphic
	TraitEmpty
	TraitUndefined

	traitCount
)

var traitNames = [traitCount]string{
	TraitConst:                "is_const",
	TraitReference:            "is_reference",
	TraitPointer:              "is_pointer",
	TraitVoid:                 "is_void",
	TraitArithmetic:           "is_arithmetic",
	TraitArray:                "is_array",
	TraitBoundedArray:         "is_bounded_array",
	TraitUnboundedArray:       "is_unbounded_array",
	TraitEnum:                 "is_enum",
	TraitScopedEnum:           "is_scoped_enum",
	TraitClass:                "is_class",
	TraitFunction:             "is_function",
	TraitTrivial:              "is_trivial",
	TraitStandardLayout:       "is_standard_layout",
	TraitDefaultConstructible: "is_default_constructible",
	TraitMovable:              "is_movable",
	TraitCopyable:             "is_copyable",
	TraitAggregate:            "is_aggregate",
	TraitFinal:                "is_final",
	TraitAbstract:             "is_abstract",
	TraitPolymorphic:          "is_polymorphic",
	TraitEmpty:                "is_empty",
	TraitUndefined:            "is_undefined",
}

func (t Trait) String() string {
	if t < traitCount {
		return traitNames[t]
	}
	return "is_unknown"
}

// TraitSet is a packed set of Trait flags.
type TraitSet uint32

// Has reports whether flag t is set.
func (s TraitSet) Has(t Trait) bool {
	return s&(1<<t) != 0
}

func (s TraitSet) with(t Trait) TraitSet {
	return s | 1<<t
}

// traitsOf derives the trait set for rt under the given decoration. A nil rt
// describes the undefined (void) descriptor.
func traitsOf(rt reflect.Type, deco decoration) TraitSet {
	var s TraitSet
	if rt == nil {
		return s.with(TraitVoid).with(TraitUndefined)
	}
	switch deco {
	case decoRef:
		s = s.with(TraitReference)
	case decoConstRef:
		s = s.with(TraitReference).with(TraitConst)
	}

	switch rt.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		s = s.with(TraitPointer)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		s = s.with(TraitArithmetic)
	case reflect.Array:
		s = s.with(TraitArray).with(TraitBoundedArray)
	case reflect.Slice:
		s = s.with(TraitArray).with(TraitUnboundedArray)
	case reflect.Struct:
		s = s.with(TraitClass)
		if isAggregate(rt) {
			s = s.with(TraitAggregate)
		}
		if rt.NumField() == 0 {
			s = s.with(TraitEmpty)
		}
	case reflect.Func:
		s = s.with(TraitFunction)
	case reflect.Interface:
		s = s.with(TraitPolymorphic)
		if rt.NumMethod() > 0 {
			s = s.with(TraitAbstract)
		} else {
			s = s.with(TraitEmpty)
		}
	}

	// Defined (named) integer types behave like scoped enumerations: the
	// values do not convert implicitly to or from the builtin kinds.
	if isEnumLike(rt) {
		s = s.with(TraitEnum).with(TraitScopedEnum)
	}

	if isTrivial(rt) {
		s = s.with(TraitTrivial)
	}
	if isStandardLayout(rt) {
		s = s.with(TraitStandardLayout)
	}

	// Every Go type has a usable zero value, can be moved, and can be
	// copied by assignment.
	s = s.with(TraitDefaultConstructible).with(TraitMovable).with(TraitCopyable)

	// Concrete types cannot be derived from; only interfaces are open.
	if rt.Kind() != reflect.Interface {
		s = s.with(TraitFinal)
	}
	return s
}

// isEnumLike reports whether rt is a defined non-builtin type with an
// integer underlying kind.
func isEnumLike(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rt.PkgPath() != ""
	default:
		return false
	}
}

// isTrivial reports whether rt holds no indirection at any depth: plain
// bytes that can be duplicated with a memory copy.
func isTrivial(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isTrivial(rt.Elem())
	case reflect.Struct:
		for i := range rt.NumField() {
			if !isTrivial(rt.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// isStandardLayout reports whether a struct keeps all fields at one access
// level (all exported or all unexported). Non-struct types are standard
// layout when trivial.
func isStandardLayout(rt reflect.Type) bool {
	if rt.Kind() != reflect.Struct {
		return isTrivial(rt)
	}
	exported, unexported := 0, 0
	for i := range rt.NumField() {
		if rt.Field(i).IsExported() {
			exported++
		} else {
			unexported++
		}
	}
	return exported == 0 || unexported == 0
}

// isAggregate reports whether a struct is plainly constructible from a field
// list: every field exported, none embedded.
func isAggregate(rt reflect.Type) bool {
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() || f.Anonymous {
			return false
		}
	}
	return true
}
