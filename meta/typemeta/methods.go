package typemeta

import (
	"errors"
	"fmt"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// AddMethod appends an overload under name for typeName. Overloads keep
// registration order; dispatch tries them front to back.
func (r *Registry) AddMethod(typeName, name string, fn Method) error {
	if fn == nil {
		return fmt.Errorf("typemeta: add method %s.%s: nil callable: %w", typeName, name, meta.ErrInternal)
	}
	ent := r.entryFor(typeName)
	r.mu.Lock()
	defer r.mu.Unlock()
	ent.methods[name] = append(ent.methods[name], fn)
	return nil
}

// RemoveMethod drops every overload registered under name.
func (r *Registry) RemoveMethod(typeName, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return fmt.Errorf("typemeta: remove method %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	if _, ok := ent.methods[name]; !ok {
		return fmt.Errorf("typemeta: remove method %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	delete(ent.methods, name)
	return nil
}

// GetMethods returns the overloads registered under name, in registration
// order.
func (r *Registry) GetMethods(typeName, name string) []Method {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return nil
	}
	overloads := ent.methods[name]
	out := make([]Method, len(overloads))
	copy(out, overloads)
	return out
}

// CallMethod dispatches name against the target's type. Overloads run in
// registration order; the first that does not reject the argument list
// wins. When every overload rejects, or none exists, the call fails with
// meta.ErrNotFound. Errors from an overload that ran propagate unchanged.
func (r *Registry) CallMethod(target *boxed.Value, name string, args []*boxed.Value) (*boxed.Value, error) {
	typeName := targetType(target)

	// Snapshot the overload list, then invoke outside the lock.
	overloads := r.GetMethods(typeName, name)
	if len(overloads) == 0 {
		return nil, fmt.Errorf("typemeta: call %s.%s: %w", typeName, name, meta.ErrNotFound)
	}

	for _, fn := range overloads {
		out, err := fn(target, args)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, meta.ErrArgumentMismatch) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("typemeta: call %s.%s: no overload accepted %d argument(s): %w",
		typeName, name, len(args), meta.ErrNotFound)
}
