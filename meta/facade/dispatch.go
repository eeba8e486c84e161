package facade

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// Has reports whether the value's concrete type satisfies the skill.
func Has(v *boxed.Value, s Skill) bool {
	vt := v.VTable()
	if vt == nil {
		return false
	}
	switch s {
	case Printable:
		return vt.Print != nil
	case Stringable:
		return vt.ToString != nil
	case Comparable:
		return vt.Equals != nil
	case Serializable:
		return vt.Serialize != nil
	case Cloneable:
		return vt.Clone != nil
	case Callable:
		return vt.Call != nil
	default:
		return false
	}
}

func unsupported(v *boxed.Value, s Skill) error {
	return fmt.Errorf("facade: %s on %s: %w", s, v.TypeInfo().Name(), meta.ErrUnsupported)
}

// Print writes the value to w: through the printable skill when present,
// else the debug rendering.
func Print(v *boxed.Value, w io.Writer) error {
	if vt := v.VTable(); vt != nil && vt.Print != nil {
		return vt.Print(v.Get(), w)
	}
	_, err := io.WriteString(w, v.DebugString())
	return err
}

// ToString renders the value: through the stringable skill when present,
// else the descriptor name.
func ToString(v *boxed.Value) string {
	if vt := v.VTable(); vt != nil && vt.ToString != nil {
		return vt.ToString(v.Get())
	}
	return v.TypeInfo().Name()
}

// Equal compares two boxed values through the comparable skill. Values
// whose types do not satisfy the skill, and values of different concrete
// types, are never equal.
func Equal(a, b *boxed.Value) bool {
	vt := a.VTable()
	if vt == nil || vt.Equals == nil {
		return false
	}
	av, bv := a.Get(), b.Get()
	if av == nil || bv == nil {
		return false
	}
	if reflect.TypeOf(av) != reflect.TypeOf(bv) {
		return false
	}
	return vt.Equals(av, bv)
}

// LessThan orders two boxed values through the comparable skill; absent
// ordering means never less.
func LessThan(a, b *boxed.Value) bool {
	vt := a.VTable()
	if vt == nil || vt.Less == nil {
		return false
	}
	av, bv := a.Get(), b.Get()
	if av == nil || bv == nil {
		return false
	}
	if reflect.TypeOf(av) != reflect.TypeOf(bv) {
		return false
	}
	return vt.Less(av, bv)
}

// Serialize renders the value through the serializable skill.
func Serialize(v *boxed.Value) (string, error) {
	vt := v.VTable()
	if vt == nil || vt.Serialize == nil {
		return "", unsupported(v, Serializable)
	}
	return vt.Serialize(v.Get())
}

// Deserialize parses s and replaces the value's payload. Fails with
// meta.ErrReadOnly on readonly targets.
func Deserialize(v *boxed.Value, s string) error {
	if v.IsReadOnly() {
		return fmt.Errorf("facade: deserialize into readonly %s: %w", v.TypeInfo().Name(), meta.ErrReadOnly)
	}
	vt := v.VTable()
	if vt == nil || vt.Deserialize == nil {
		return unsupported(v, Serializable)
	}
	out, err := vt.Deserialize(v.Get(), s)
	if err != nil {
		return err
	}
	return v.Assign(out)
}

// Clone produces an independently owned copy through the cloneable skill.
func Clone(v *boxed.Value) (*boxed.Value, error) {
	vt := v.VTable()
	if vt == nil || vt.Clone == nil {
		return nil, unsupported(v, Cloneable)
	}
	out, err := vt.Clone(v.Get())
	if err != nil {
		return nil, err
	}
	return boxed.Box(out), nil
}

// Call invokes the value through the callable skill.
func Call(v *boxed.Value, args ...*boxed.Value) (*boxed.Value, error) {
	vt := v.VTable()
	if vt == nil || vt.Call == nil {
		return nil, unsupported(v, Callable)
	}
	return vt.Call(v.Get(), args)
}

// Invoke dispatches one skill strictly: any skill the concrete type does
// not satisfy fails with meta.ErrUnsupported, with no fallback.
//
//   - Printable: renders to a string result
//   - Stringable: renders to a string result
//   - Comparable: one argument; boolean equality result
//   - Serializable: renders the serialized form
//   - Cloneable: the copy
//   - Callable: forwards args, returns the call result
func Invoke(target *boxed.Value, s Skill, args ...*boxed.Value) (*boxed.Value, error) {
	vt := target.VTable()
	if vt == nil {
		return nil, unsupported(target, s)
	}
	switch s {
	case Printable:
		if vt.Print == nil {
			return nil, unsupported(target, s)
		}
		var b strings.Builder
		if err := vt.Print(target.Get(), &b); err != nil {
			return nil, err
		}
		return boxed.BoxWithFlags(b.String(), true, false), nil

	case Stringable:
		if vt.ToString == nil {
			return nil, unsupported(target, s)
		}
		return boxed.BoxWithFlags(vt.ToString(target.Get()), true, false), nil

	case Comparable:
		if vt.Equals == nil {
			return nil, unsupported(target, s)
		}
		if len(args) != 1 {
			return nil, fmt.Errorf("facade: %s wants 1 argument, got %d: %w", s, len(args), meta.ErrArgumentMismatch)
		}
		return boxed.BoxWithFlags(Equal(target, args[0]), true, false), nil

	case Serializable:
		out, err := Serialize(target)
		if err != nil {
			return nil, err
		}
		return boxed.BoxWithFlags(out, true, false), nil

	case Cloneable:
		return Clone(target)

	case Callable:
		return Call(target, args...)

	default:
		return nil, fmt.Errorf("facade: unknown skill %d: %w", s, meta.ErrInternal)
	}
}
