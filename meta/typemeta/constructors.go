package typemeta

import (
	"errors"
	"fmt"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// AddConstructor appends a constructor of the given arity for typeName.
// Constructors keep registration order; CreateInstance tries them front to
// back.
func (r *Registry) AddConstructor(typeName string, arity int, fn Constructor) error {
	if fn == nil {
		return fmt.Errorf("typemeta: add constructor for %s: nil callable: %w", typeName, meta.ErrInternal)
	}
	ent := r.entryFor(typeName)
	r.mu.Lock()
	defer r.mu.Unlock()
	ent.constructors = append(ent.constructors, constructorEntry{arity: arity, fn: fn})
	return nil
}

// GetConstructor returns the constructor at index in registration order.
func (r *Registry) GetConstructor(typeName string, index int) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entries[typeName]
	if !ok || index < 0 || index >= len(ent.constructors) {
		return nil, fmt.Errorf("typemeta: constructor %d for %s: %w", index, typeName, meta.ErrNotFound)
	}
	return ent.constructors[index].fn, nil
}

// CreateInstance builds a new boxed value of typeName from args. Registered
// constructors are tried in order; one that rejects the arguments (an error
// wrapping meta.ErrArgumentMismatch) passes the turn to the next. When none
// accepts, the call fails with meta.ErrConstructorFailure.
func (r *Registry) CreateInstance(typeName string, args []*boxed.Value) (*boxed.Value, error) {
	r.mu.RLock()
	ent, ok := r.entries[typeName]
	var ctors []constructorEntry
	if ok {
		ctors = make([]constructorEntry, len(ent.constructors))
		copy(ctors, ent.constructors)
	}
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("typemeta: create %s: %w", typeName, meta.ErrNotFound)
	}

	for _, c := range ctors {
		if c.arity >= 0 && c.arity != len(args) {
			continue
		}
		out, err := c.fn(args)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, meta.ErrArgumentMismatch) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("typemeta: create %s with %d argument(s): %w",
		typeName, len(args), meta.ErrConstructorFailure)
}
