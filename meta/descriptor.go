package meta

import (
	"hash/fnv"
	"reflect"

	"github.com/joshuapare/metakit/internal/names"
)

// decoration records how a descriptor's type was presented: plain, as a
// mutable reference, or as a readonly reference. Decoration participates in
// descriptor identity; BareEqual ignores it.
type decoration uint8

const (
	decoNone decoration = iota
	decoRef
	decoConstRef
)

// Descriptor is an immutable, cheaply copyable identity for one type.
// The zero Descriptor is the undefined descriptor.
type Descriptor struct {
	rt     reflect.Type
	bareRT reflect.Type
	deco   decoration
	name   string
	bare   string
	traits TraitSet
}

// TypeOf returns the descriptor for the type parameter T. The same T always
// yields an equal descriptor.
func TypeOf[T any]() Descriptor {
	return descriptorOf(reflect.TypeFor[T](), decoNone)
}

// RefOf returns the reference-decorated descriptor for T, as carried by
// values that wrap external storage.
func RefOf[T any]() Descriptor {
	return descriptorOf(reflect.TypeFor[T](), decoRef)
}

// ConstRefOf returns the readonly-reference-decorated descriptor for T.
func ConstRefOf[T any]() Descriptor {
	return descriptorOf(reflect.TypeFor[T](), decoConstRef)
}

// TypeFor returns the descriptor for the dynamic type of v. A nil v yields
// the undefined descriptor.
func TypeFor(v any) Descriptor {
	if v == nil {
		return Undefined()
	}
	return descriptorOf(reflect.TypeOf(v), decoNone)
}

// DescriptorOf returns the plain descriptor for a reflect.Type. A nil rt
// yields the undefined descriptor.
func DescriptorOf(rt reflect.Type) Descriptor {
	return descriptorOf(rt, decoNone)
}

// Undefined returns the undefined descriptor: equal only to itself, with the
// is_undefined trait set.
func Undefined() Descriptor {
	return Descriptor{
		name:   names.Display(nil),
		bare:   names.Display(nil),
		traits: traitsOf(nil, decoNone),
	}
}

func descriptorOf(rt reflect.Type, deco decoration) Descriptor {
	if rt == nil {
		return Undefined()
	}
	bareRT := names.Bare(rt)
	name := names.Display(rt)
	switch deco {
	case decoRef:
		name = names.Ref(name)
	case decoConstRef:
		name = names.ConstRef(name)
	}
	return Descriptor{
		rt:     rt,
		bareRT: bareRT,
		deco:   deco,
		name:   name,
		bare:   names.Display(bareRT),
		traits: traitsOf(rt, deco),
	}
}

// Name returns the display name, including decoration.
func (d Descriptor) Name() string { return d.name }

// BareName returns the display name stripped of reference, const, and
// pointer decoration.
func (d Descriptor) BareName() string { return d.bare }

// Equal reports whether both descriptors carry the same identity, including
// decoration. The undefined descriptor equals only itself.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.rt == o.rt && d.deco == o.deco
}

// BareEqual reports whether both descriptors identify the same type once
// reference, const, and pointer decoration is ignored.
func (d Descriptor) BareEqual(o Descriptor) bool {
	if d.rt == nil || o.rt == nil {
		return d.rt == o.rt
	}
	return d.bareRT == o.bareRT
}

// Less orders descriptors by display name, suitable for sorted output.
func (d Descriptor) Less(o Descriptor) bool {
	return d.name < o.name
}

// Hash returns a stable hash of the descriptor identity.
func (d Descriptor) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(d.name))
	h.Write([]byte{byte(d.deco)})
	return h.Sum64()
}

// Trait reports whether the given trait flag is set.
func (d Descriptor) Trait(t Trait) bool { return d.traits.Has(t) }

// Traits returns the full trait bitset.
func (d Descriptor) Traits() TraitSet { return d.traits }

// IsUndefined reports whether this is the undefined descriptor.
func (d Descriptor) IsUndefined() bool { return d.rt == nil }

// ReflectType exposes the underlying reflect.Type, or nil for the undefined
// descriptor. The conversion engine uses it to build container values.
func (d Descriptor) ReflectType() reflect.Type { return d.rt }

// BareReflectType returns the underlying type with pointer decoration
// stripped, or nil for the undefined descriptor.
func (d Descriptor) BareReflectType() reflect.Type { return d.bareRT }
