package typemeta

import (
	"errors"
	"fmt"
	"sort"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// AddEvent declares a named event for typeName.
func (r *Registry) AddEvent(typeName, name, description string) error {
	ent := r.entryFor(typeName)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := ent.events[name]; dup {
		return fmt.Errorf("typemeta: add event %s.%s: %w", typeName, name, meta.ErrAlreadyRegistered)
	}
	ent.events[name] = &event{description: description}
	return nil
}

// RemoveEvent drops a declared event and its listeners.
func (r *Registry) RemoveEvent(typeName, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return fmt.Errorf("typemeta: remove event %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	if _, ok := ent.events[name]; !ok {
		return fmt.Errorf("typemeta: remove event %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	delete(ent.events, name)
	return nil
}

// EventDescription returns the description an event was declared with.
func (r *Registry) EventDescription(typeName, name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return "", false
	}
	ev, ok := ent.events[name]
	if !ok {
		return "", false
	}
	return ev.description, true
}

// AddListener subscribes fn to an event. Higher priorities are invoked
// first; listeners with equal priority run in registration order.
func (r *Registry) AddListener(typeName, name string, fn Listener, priority int) error {
	if fn == nil {
		return fmt.Errorf("typemeta: add listener for %s.%s: nil listener: %w", typeName, name, meta.ErrInternal)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.entries[typeName]
	if !ok {
		return fmt.Errorf("typemeta: add listener for %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	ev, ok := ent.events[name]
	if !ok {
		return fmt.Errorf("typemeta: add listener for %s.%s: %w", typeName, name, meta.ErrNotFound)
	}
	ev.listeners = append(ev.listeners, listenerEntry{priority: priority, seq: r.nextSeq, fn: fn})
	r.nextSeq++
	sort.SliceStable(ev.listeners, func(i, j int) bool {
		return ev.listeners[i].priority > ev.listeners[j].priority
	})
	return nil
}

// FireEvent invokes every listener of the event in descending priority
// order. A failing listener is handled per the registry's listener policy;
// under the default swallow policy the failure is logged and the remaining
// listeners still run.
func (r *Registry) FireEvent(target *boxed.Value, name string, args []*boxed.Value) error {
	typeName := targetType(target)

	r.mu.RLock()
	ent, ok := r.entries[typeName]
	var fns []Listener
	if ok {
		if ev, found := ent.events[name]; found {
			fns = make([]Listener, len(ev.listeners))
			for i, l := range ev.listeners {
				fns[i] = l.fn
			}
		} else {
			ok = false
		}
	}
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("typemeta: fire %s.%s: %w", typeName, name, meta.ErrNotFound)
	}

	var failures []error
	for _, fn := range fns {
		err := fn(target, args)
		if err == nil {
			continue
		}
		switch r.policy {
		case ListenerRethrowImmediately:
			return err
		case ListenerRethrowAfterAll:
			failures = append(failures, err)
		default:
			r.log.Warn("event listener failed",
				"type", typeName, "event", name, "error", err)
		}
	}
	return errors.Join(failures...)
}
