package typemeta

import (
	"fmt"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// AddProperty registers a named property for typeName.
func (r *Registry) AddProperty(typeName, name string, p Property) error {
	if p.Get == nil && p.Default == nil {
		return fmt.Errorf("typemeta: add property %s.%s: neither getter nor default: %w",
			typeName, name, meta.ErrInternal)
	}
	ent := r.entryFor(typeName)
	r.mu.Lock()
	defer r.mu.Unlock()
	ent.properties[name] = p
	return nil
}

// RemoveProperty unregisters a named property.
func (r *Registry) RemoveProperty(typeName, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return fmt.Errorf("typemeta: remove property %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	if _, ok := ent.properties[name]; !ok {
		return fmt.Errorf("typemeta: remove property %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	delete(ent.properties, name)
	return nil
}

// Describe returns the property descriptor registered under name.
func (r *Registry) Describe(typeName, name string) (Property, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return Property{}, false
	}
	p, ok := ent.properties[name]
	return p, ok
}

// GetProperty reads the named property from the target. With no getter the
// registered default is returned. Getter errors propagate unchanged.
func (r *Registry) GetProperty(target *boxed.Value, name string) (*boxed.Value, error) {
	typeName := targetType(target)
	p, ok := r.Describe(typeName, name)
	if !ok {
		return nil, fmt.Errorf("typemeta: property %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	if p.Get == nil {
		return p.Default, nil
	}
	// Invoked outside the lock: getters are user code.
	return p.Get(target)
}

// SetProperty writes the named property on the target. A property without a
// setter fails with meta.ErrReadOnly. Setter errors propagate unchanged.
func (r *Registry) SetProperty(target *boxed.Value, name string, v *boxed.Value) error {
	typeName := targetType(target)
	p, ok := r.Describe(typeName, name)
	if !ok {
		return fmt.Errorf("typemeta: property %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	if p.Set == nil {
		return fmt.Errorf("typemeta: property %s.%s has no setter: %w", typeName, name, meta.ErrReadOnly)
	}
	return p.Set(target, v)
}
