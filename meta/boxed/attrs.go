package boxed

import (
	"fmt"
	"sort"
	"time"

	"github.com/joshuapare/metakit/meta"
)

// The attribute map lives on the shared record, so every handle cloned from
// the same logical value observes the same attributes.

func (v *Value) attrGuard(op string) error {
	if v.rec.kind == payloadEmpty || v.rec.isNull {
		return fmt.Errorf("boxed: %s on %s: %w", op, v.rec.desc.Name(), meta.ErrUndefined)
	}
	return nil
}

// SetAttr binds name to val in the attribute map. Fails with
// meta.ErrUndefined on an undefined or null handle.
func (v *Value) SetAttr(name string, val *Value) error {
	r := v.rec
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := v.attrGuard("set attribute"); err != nil {
		return err
	}
	if r.attrs == nil {
		r.attrs = make(map[string]*Value)
	}
	r.attrs[name] = val
	r.modified = time.Now()
	return nil
}

// GetAttr returns the attribute bound to name, or an undefined value when
// the attribute is missing.
func (v *Value) GetAttr(name string) (*Value, error) {
	r := v.rec
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := v.attrGuard("get attribute"); err != nil {
		return nil, err
	}
	if a, ok := r.attrs[name]; ok {
		return a, nil
	}
	return BoxVoid(), nil
}

// HasAttr reports whether name is bound.
func (v *Value) HasAttr(name string) (bool, error) {
	r := v.rec
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := v.attrGuard("probe attribute"); err != nil {
		return false, err
	}
	_, ok := r.attrs[name]
	return ok, nil
}

// RemoveAttr unbinds name. Removing a missing attribute is a no-op.
func (v *Value) RemoveAttr(name string) error {
	r := v.rec
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := v.attrGuard("remove attribute"); err != nil {
		return err
	}
	delete(r.attrs, name)
	r.modified = time.Now()
	return nil
}

// ListAttrs returns the bound attribute names in sorted order.
func (v *Value) ListAttrs() ([]string, error) {
	r := v.rec
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := v.attrGuard("list attributes"); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(r.attrs))
	for name := range r.attrs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
