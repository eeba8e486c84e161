package metakit

import (
	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/convert"
	"github.com/joshuapare/metakit/meta/facade"
)

// RegisterType makes T known everywhere at once: the descriptor is bound to
// name in the type registry, the capability vtable is probed and installed
// so boxed values of T dispatch skills, and a reflection entry is created
// under T's bare name for methods, properties, and events.
func RegisterType[T any](s *System, name string) (meta.Descriptor, error) {
	d, err := meta.RegisterType[T](s.Types, name)
	if err != nil {
		return meta.Descriptor{}, err
	}
	facade.Register[T]()
	if !s.Reflection.LookupEntry(d.BareName()) {
		if err := s.Reflection.RegisterType(d.BareName()); err != nil {
			return meta.Descriptor{}, err
		}
	}
	return d, nil
}

// RegisterTypeWithFactory additionally binds a zero-argument producer so
// instances can be created by name through the type registry.
func RegisterTypeWithFactory[T any](s *System, name string) (meta.Descriptor, error) {
	d, err := RegisterType[T](s, name)
	if err != nil {
		return meta.Descriptor{}, err
	}
	if err := meta.RegisterFactoryFor[T](s.Types, name); err != nil {
		return meta.Descriptor{}, err
	}
	return d, nil
}

// ConvertTo converts a raw value to To using the system's engine, trying
// every edge that ends in To until one accepts.
func ConvertTo[To any](s *System, v any) (To, error) {
	return convert.ConvertTo[To](s.Conversions, v)
}
