package metakit

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
	"github.com/joshuapare/metakit/meta/convert"
	"github.com/joshuapare/metakit/meta/typemeta"
)

// Options configures a System.
type Options struct {
	// Duplicates is the type-registry policy for re-registered names.
	// Default: meta.DuplicateError.
	Duplicates meta.DuplicatePolicy

	// DisableConversionCache turns off conversion path memoization.
	DisableConversionCache bool

	// Listeners is the event-listener failure policy.
	// Default: typemeta.ListenerSwallow.
	Listeners typemeta.ListenerPolicy

	// Logger receives swallowed listener failures and registry
	// diagnostics. Default: discard.
	Logger *slog.Logger
}

// System bundles the three registries of the value system.
type System struct {
	Types       *meta.Registry
	Conversions *convert.Engine
	Reflection  *typemeta.Registry
}

// New builds an isolated System. Most programs use Default instead;
// isolated systems suit tests and embedded interpreters.
func New(opts Options) *System {
	return &System{
		Types:       meta.NewRegistry(meta.RegistryOptions{Duplicates: opts.Duplicates}),
		Conversions: convert.NewEngine(convert.Options{DisableCache: opts.DisableConversionCache}),
		Reflection: typemeta.NewRegistry(typemeta.Options{
			Listeners: opts.Listeners,
			Logger:    opts.Logger,
		}),
	}
}

var (
	defaultOnce sync.Once
	defaultSys  *System
)

// Default returns the System wrapping the process-wide registries.
func Default() *System {
	defaultOnce.Do(func() {
		defaultSys = &System{
			Types:       meta.Types(),
			Conversions: convert.Default(),
			Reflection:  typemeta.Default(),
		}
	})
	return defaultSys
}

// CallMethod dispatches a named method against the target's type.
func (s *System) CallMethod(target *boxed.Value, name string, args ...*boxed.Value) (*boxed.Value, error) {
	return s.Reflection.CallMethod(target, name, args)
}

// GetProperty reads a named property from the target.
func (s *System) GetProperty(target *boxed.Value, name string) (*boxed.Value, error) {
	return s.Reflection.GetProperty(target, name)
}

// SetProperty writes a named property on the target.
func (s *System) SetProperty(target *boxed.Value, name string, v *boxed.Value) error {
	return s.Reflection.SetProperty(target, name, v)
}

// FireEvent invokes the listeners of a named event on the target.
func (s *System) FireEvent(target *boxed.Value, name string, args ...*boxed.Value) error {
	return s.Reflection.FireEvent(target, name, args)
}

// CreateInstance constructs a registered type by name.
func (s *System) CreateInstance(typeName string, args ...*boxed.Value) (*boxed.Value, error) {
	return s.Reflection.CreateInstance(typeName, args)
}

// Convert moves a boxed value to the target descriptor through the
// conversion graph and returns a fresh handle carrying that descriptor.
func (s *System) Convert(to meta.Descriptor, v *boxed.Value) (*boxed.Value, error) {
	from := sourceDescriptor(v)
	out, err := s.Conversions.Convert(from, to, v.Get())
	if err != nil {
		return nil, err
	}
	return boxed.BoxDescribed(out, to), nil
}

// CanConvert reports whether a route exists from the value's type to the
// target descriptor.
func (s *System) CanConvert(to meta.Descriptor, v *boxed.Value) bool {
	return s.Conversions.CanConvert(sourceDescriptor(v), to)
}

// sourceDescriptor normalizes a boxed value's descriptor for graph lookup:
// reference decoration is dropped, since edges are registered on plain
// descriptors.
func sourceDescriptor(v *boxed.Value) meta.Descriptor {
	d := v.TypeInfo()
	if d.Trait(meta.TraitReference) {
		return meta.DescriptorOf(d.ReflectType())
	}
	return d
}

// Describe returns the descriptor registered under name, as a convenience
// over s.Types.Lookup with a taxonomy error.
func (s *System) Describe(name string) (meta.Descriptor, error) {
	d, ok := s.Types.Lookup(name)
	if !ok {
		return meta.Descriptor{}, fmt.Errorf("metakit: type %q: %w", name, meta.ErrNotFound)
	}
	return d, nil
}
