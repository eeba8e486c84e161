package boxed

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joshuapare/metakit/meta"
)

type payloadKind uint8

const (
	payloadEmpty payloadKind = iota
	payloadOwned
	payloadBorrowed
)

// record is the shared state behind one logical value. Every handle cloned
// from the same construction points at the same record.
type record struct {
	mu       sync.RWMutex
	kind     payloadKind
	payload  any // owned value, or borrowed pointer to external storage
	desc     meta.Descriptor
	vt       *VTable
	attrs    map[string]*Value
	isRef    bool
	isReturn bool
	readonly bool
	isNull   bool
	created  time.Time
	modified time.Time
	accesses atomic.Uint64
}

// Value is a handle to a type-erased payload with metadata. The zero Value
// is not usable; construct with Box and friends.
type Value struct {
	rec *record
}

// Clone returns a second handle sharing this value's record. Mutations to
// the payload or attributes through either handle are visible through both.
func (v *Value) Clone() *Value {
	return &Value{rec: v.rec}
}

// Get returns a view of the payload suitable for type assertion. Borrowed
// payloads are dereferenced. Increments the access counter.
func (v *Value) Get() any {
	r := v.rec
	r.mu.RLock()
	kind, payload := r.kind, r.payload
	r.mu.RUnlock()
	r.accesses.Add(1)

	switch kind {
	case payloadEmpty:
		return nil
	case payloadBorrowed:
		return derefBorrowed(payload)
	default:
		return payload
	}
}

func derefBorrowed(p any) any {
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}

// Assign replaces the payload with an owned copy of v, rebinding descriptor
// and capability vtable. Fails with meta.ErrReadOnly on readonly values.
func (b *Value) Assign(v any) error {
	r := b.rec
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readonly {
		return fmt.Errorf("boxed: assign to readonly %s: %w", r.desc.Name(), meta.ErrReadOnly)
	}
	if v == nil {
		r.kind = payloadEmpty
		r.payload = nil
		r.desc = meta.Undefined()
		r.vt = nil
		r.isNull = true
	} else {
		r.kind = payloadOwned
		r.payload = v
		r.desc = meta.TypeFor(v)
		r.vt = VTableFor(reflect.TypeOf(v))
		r.isNull = isNilValue(v)
	}
	r.isRef = false
	r.modified = time.Now()
	return nil
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// TryCast returns the payload as T. It succeeds when the stored type,
// stripped of the reference wrapper, is T; borrowed payloads are
// dereferenced transparently, and requesting the pointer form of a borrowed
// payload yields the pointer itself.
func TryCast[T any](v *Value) (T, bool) {
	var zero T
	r := v.rec
	r.mu.RLock()
	kind, payload := r.kind, r.payload
	r.mu.RUnlock()
	r.accesses.Add(1)

	if kind == payloadEmpty {
		return zero, false
	}
	if t, ok := payload.(T); ok {
		return t, true
	}
	if kind == payloadBorrowed {
		if deref := derefBorrowed(payload); deref != nil {
			if t, ok := deref.(T); ok {
				return t, true
			}
		}
	}
	return zero, false
}

// CanCast reports whether TryCast[T] would succeed.
func CanCast[T any](v *Value) bool {
	_, ok := TryCast[T](v)
	return ok
}

// IsType reports whether the payload's bare type is exactly T.
func IsType[T any](v *Value) bool {
	return v.TypeInfo().BareEqual(meta.TypeOf[T]())
}

// TypeInfo returns the descriptor for the current payload.
func (v *Value) TypeInfo() meta.Descriptor {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.desc
}

// IsUndefined reports whether the handle carries no payload.
func (v *Value) IsUndefined() bool {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.kind == payloadEmpty
}

// IsNull reports whether the payload is absent or a nil pointer.
func (v *Value) IsNull() bool {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.kind == payloadEmpty || v.rec.isNull
}

// IsReference reports whether the payload borrows external storage.
func (v *Value) IsReference() bool {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.isRef
}

// IsReturnValue reports whether the value was flagged as a call result.
func (v *Value) IsReturnValue() bool {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.isReturn
}

// IsReadOnly reports whether writes are refused.
func (v *Value) IsReadOnly() bool {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.readonly
}

// IsConst reports whether the descriptor carries const decoration.
func (v *Value) IsConst() bool {
	return v.TypeInfo().Trait(meta.TraitConst)
}

// SetReadOnly toggles the readonly flag.
func (v *Value) SetReadOnly(on bool) {
	v.rec.mu.Lock()
	defer v.rec.mu.Unlock()
	v.rec.readonly = on
}

// CreatedAt returns the record creation time.
func (v *Value) CreatedAt() time.Time {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.created
}

// LastModifiedAt returns the time of the most recent payload write.
func (v *Value) LastModifiedAt() time.Time {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.modified
}

// AccessCount returns the best-effort read counter.
func (v *Value) AccessCount() uint64 {
	return v.rec.accesses.Load()
}

// VTable returns the capability vtable bound at construction, or nil when
// the concrete type was never registered with the facade.
func (v *Value) VTable() *VTable {
	v.rec.mu.RLock()
	defer v.rec.mu.RUnlock()
	return v.rec.vt
}

// DebugString renders the value for diagnostics: the capability to_string
// hook when present, else "<type:0xaddr>".
func (v *Value) DebugString() string {
	r := v.rec
	r.mu.RLock()
	kind, payload, desc, vt := r.kind, r.payload, r.desc, r.vt
	r.mu.RUnlock()

	if kind != payloadEmpty && vt != nil && vt.ToString != nil {
		view := payload
		if kind == payloadBorrowed {
			view = derefBorrowed(payload)
		}
		if view != nil {
			return vt.ToString(view)
		}
	}
	return fmt.Sprintf("<%s:%p>", desc.Name(), r)
}
