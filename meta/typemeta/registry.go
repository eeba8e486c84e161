package typemeta

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// Method is one overload of a named method. It rejects an argument list it
// cannot accept by returning an error wrapping meta.ErrArgumentMismatch.
type Method func(target *boxed.Value, args []*boxed.Value) (*boxed.Value, error)

// Constructor produces a new boxed instance from an argument list. Like a
// method overload, it rejects unacceptable arguments with
// meta.ErrArgumentMismatch.
type Constructor func(args []*boxed.Value) (*boxed.Value, error)

// Listener observes a fired event.
type Listener func(target *boxed.Value, args []*boxed.Value) error

// Property describes one named property of a type.
type Property struct {
	// Get reads the property from the target. Optional when Default is
	// set.
	Get func(target *boxed.Value) (*boxed.Value, error)

	// Set writes the property. A nil Set makes the property readonly.
	Set func(target *boxed.Value, v *boxed.Value) error

	// Default is returned by GetProperty when Get is nil.
	Default *boxed.Value

	// Description documents the property.
	Description string
}

type constructorEntry struct {
	arity int
	fn    Constructor
}

type listenerEntry struct {
	priority int
	seq      int
	fn       Listener
}

type event struct {
	description string
	listeners   []listenerEntry
}

// Entry is the per-type bag of constructors, methods, properties, and
// events.
type Entry struct {
	constructors []constructorEntry
	methods      map[string][]Method
	properties   map[string]Property
	events       map[string]*event
}

func newEntry() *Entry {
	return &Entry{
		methods:    make(map[string][]Method),
		properties: make(map[string]Property),
		events:     make(map[string]*event),
	}
}

// ListenerPolicy selects what FireEvent does with a failing listener.
type ListenerPolicy int

const (
	// ListenerSwallow logs the failure and keeps invoking the remaining
	// listeners. This is the default.
	ListenerSwallow ListenerPolicy = iota

	// ListenerRethrowAfterAll invokes every listener, then returns the
	// joined failures.
	ListenerRethrowAfterAll

	// ListenerRethrowImmediately stops at the first failure and returns
	// it.
	ListenerRethrowImmediately
)

// Options configures a Registry.
type Options struct {
	// Listeners is the failure policy for event listeners.
	// Default: ListenerSwallow.
	Listeners ListenerPolicy

	// Logger receives swallowed listener failures. Default: discard.
	Logger *slog.Logger
}

// Registry maps type names to reflection entries.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	policy  ListenerPolicy
	log     *slog.Logger
	nextSeq int
}

// NewRegistry returns an empty registry.
func NewRegistry(opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		entries: make(map[string]*Entry),
		policy:  opts.Listeners,
		log:     log,
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, initialized lazily.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(Options{})
	})
	return defaultRegistry
}

// RegisterType creates the entry for typeName. Registering an existing name
// fails with meta.ErrAlreadyRegistered.
func (r *Registry) RegisterType(typeName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[typeName]; dup {
		return fmt.Errorf("typemeta: register type %q: %w", typeName, meta.ErrAlreadyRegistered)
	}
	r.entries[typeName] = newEntry()
	return nil
}

// LookupEntry reports whether typeName has an entry.
func (r *Registry) LookupEntry(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[typeName]
	return ok
}

// entryFor returns the entry for typeName, creating it on first touch.
func (r *Registry) entryFor(typeName string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	ent, ok := r.entries[typeName]
	if !ok {
		ent = newEntry()
		r.entries[typeName] = ent
	}
	return ent
}

// targetType resolves the entry key for a boxed target: the bare type name,
// so references and pointers dispatch like their base type.
func targetType(target *boxed.Value) string {
	return target.TypeInfo().BareName()
}
