package facade

import (
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

var (
	stringerIface     = reflect.TypeFor[fmt.Stringer]()
	printerIface      = reflect.TypeFor[Printer]()
	equalerIface      = reflect.TypeFor[Equaler]()
	lesserIface       = reflect.TypeFor[Lesser]()
	serializerIface   = reflect.TypeFor[Serializer]()
	deserializerIface = reflect.TypeFor[Deserializer]()
	clonerIface       = reflect.TypeFor[Cloner]()
	callerIface       = reflect.TypeFor[Caller]()
)

// Register probes T's capabilities, builds the vtable, and installs it so
// every boxed value of T constructed afterwards dispatches through it.
// Returns T's descriptor for convenience.
func Register[T any]() meta.Descriptor {
	rt := reflect.TypeFor[T]()
	boxed.RegisterVTable(rt, buildVTable(rt))
	return meta.TypeOf[T]()
}

// RegisterReflect is the non-generic form of Register.
func RegisterReflect(rt reflect.Type) {
	boxed.RegisterVTable(rt, buildVTable(rt))
}

// buildVTable probes rt once per skill. Every field may stay nil.
func buildVTable(rt reflect.Type) *boxed.VTable {
	vt := &boxed.VTable{}

	vt.ToString = probeToString(rt)
	vt.Print = probePrint(rt, vt.ToString)
	vt.Equals, vt.Less = probeCompare(rt)
	vt.Serialize = probeSerialize(rt)
	vt.Deserialize = probeDeserialize(rt)
	vt.Clone = probeClone(rt)
	vt.Call = probeCall(rt)

	return vt
}

func probeToString(rt reflect.Type) func(any) string {
	if rt.Implements(stringerIface) {
		return func(v any) string { return v.(fmt.Stringer).String() }
	}
	switch rt.Kind() {
	case reflect.String:
		return func(v any) string { return reflect.ValueOf(v).String() }
	case reflect.Bool:
		return func(v any) string { return strconv.FormatBool(reflect.ValueOf(v).Bool()) }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v any) string { return strconv.FormatInt(reflect.ValueOf(v).Int(), 10) }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(v any) string { return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10) }
	case reflect.Float32:
		return func(v any) string { return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, 32) }
	case reflect.Float64:
		return func(v any) string { return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, 64) }
	default:
		return nil
	}
}

func probePrint(rt reflect.Type, toString func(any) string) func(any, io.Writer) error {
	if rt.Implements(printerIface) {
		return func(v any, w io.Writer) error { return v.(Printer).PrintTo(w) }
	}
	if toString != nil {
		return func(v any, w io.Writer) error {
			_, err := io.WriteString(w, toString(v))
			return err
		}
	}
	return nil
}

func probeCompare(rt reflect.Type) (eq func(a, b any) bool, less func(a, b any) bool) {
	if rt.Implements(equalerIface) {
		eq = func(a, b any) bool { return a.(Equaler).Equals(b) }
	} else if rt.Comparable() {
		eq = func(a, b any) bool {
			return reflect.TypeOf(b) == rt && a == b
		}
	}

	if rt.Implements(lesserIface) {
		less = func(a, b any) bool { return a.(Lesser).Less(b) }
		return eq, less
	}
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		less = func(a, b any) bool {
			return reflect.TypeOf(b) == rt && reflect.ValueOf(a).Int() < reflect.ValueOf(b).Int()
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		less = func(a, b any) bool {
			return reflect.TypeOf(b) == rt && reflect.ValueOf(a).Uint() < reflect.ValueOf(b).Uint()
		}
	case reflect.Float32, reflect.Float64:
		less = func(a, b any) bool {
			return reflect.TypeOf(b) == rt && reflect.ValueOf(a).Float() < reflect.ValueOf(b).Float()
		}
	case reflect.String:
		less = func(a, b any) bool {
			return reflect.TypeOf(b) == rt && reflect.ValueOf(a).String() < reflect.ValueOf(b).String()
		}
	}
	return eq, less
}

func probeSerialize(rt reflect.Type) func(any) (string, error) {
	if rt.Implements(serializerIface) {
		return func(v any) (string, error) { return v.(Serializer).Serialize() }
	}
	// Minimal default encoding for plain kinds: strings double-quoted with
	// no escaping, booleans as true/false, arithmetic in decimal.
	switch rt.Kind() {
	case reflect.String:
		return func(v any) (string, error) {
			return `"` + reflect.ValueOf(v).String() + `"`, nil
		}
	case reflect.Bool:
		return func(v any) (string, error) {
			return strconv.FormatBool(reflect.ValueOf(v).Bool()), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v any) (string, error) {
			return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(v any) (string, error) {
			return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil
		}
	case reflect.Float32:
		return func(v any) (string, error) {
			return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, 32), nil
		}
	case reflect.Float64:
		return func(v any) (string, error) {
			return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, 64), nil
		}
	default:
		return nil
	}
}

func probeDeserialize(rt reflect.Type) func(any, string) (any, error) {
	if !reflect.PointerTo(rt).Implements(deserializerIface) {
		return nil
	}
	return func(v any, s string) (any, error) {
		// Work on an addressable copy so pointer-receiver methods can
		// mutate, then hand the copy back as the replacement payload.
		pv := reflect.New(rt)
		pv.Elem().Set(reflect.ValueOf(v))
		if err := pv.Interface().(Deserializer).Deserialize(s); err != nil {
			return nil, err
		}
		return pv.Elem().Interface(), nil
	}
}

func probeClone(rt reflect.Type) func(any) (any, error) {
	if rt.Implements(clonerIface) {
		return func(v any) (any, error) { return v.(Cloner).Clone(), nil }
	}
	if !deepCopyable(rt) {
		return nil
	}
	return func(v any) (any, error) {
		out, err := deepCopy(reflect.ValueOf(v))
		if err != nil {
			return nil, err
		}
		return out.Interface(), nil
	}
}

// deepCopyable reports whether a value of rt can be duplicated without
// sharing state: no pointers, funcs, channels, or interfaces at any depth.
func deepCopyable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array, reflect.Slice:
		return deepCopyable(rt.Elem())
	case reflect.Map:
		return deepCopyable(rt.Key()) && deepCopyable(rt.Elem())
	case reflect.Struct:
		for i := range rt.NumField() {
			if !deepCopyable(rt.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func deepCopy(rv reflect.Value) (reflect.Value, error) {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv, nil
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := deepCopy(rv.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return rv, nil
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		for it := rv.MapRange(); it.Next(); {
			kv, err := deepCopy(it.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			vv, err := deepCopy(it.Value())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(kv, vv)
		}
		return out, nil
	case reflect.Struct:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				return reflect.Value{}, fmt.Errorf("facade: clone of %s: unexported field %s: %w",
					rv.Type(), rv.Type().Field(i).Name, meta.ErrUnsupported)
			}
			fv, err := deepCopy(rv.Field(i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(fv)
		}
		return out, nil
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			ev, err := deepCopy(rv.Index(i))
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(ev)
		}
		return out, nil
	default:
		return rv, nil
	}
}

func probeCall(rt reflect.Type) func(any, []*boxed.Value) (*boxed.Value, error) {
	if rt.Implements(callerIface) {
		return func(v any, args []*boxed.Value) (*boxed.Value, error) {
			return v.(Caller).Call(args)
		}
	}
	if rt.Kind() != reflect.Func || rt.IsVariadic() {
		return nil
	}
	return func(v any, args []*boxed.Value) (*boxed.Value, error) {
		fv := reflect.ValueOf(v)
		ft := fv.Type()
		if len(args) != ft.NumIn() {
			return nil, fmt.Errorf("facade: call %s: want %d argument(s), got %d: %w",
				ft, ft.NumIn(), len(args), meta.ErrArgumentMismatch)
		}
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			av := reflect.ValueOf(a.Get())
			want := ft.In(i)
			if !av.IsValid() {
				in[i] = reflect.Zero(want)
				continue
			}
			if !av.Type().AssignableTo(want) {
				return nil, fmt.Errorf("facade: call %s: argument %d is %s, want %s: %w",
					ft, i, av.Type(), want, meta.ErrArgumentMismatch)
			}
			in[i] = av
		}

		out := fv.Call(in)
		// A trailing error result is unwrapped into the call's error.
		if n := len(out); n > 0 && ft.Out(n-1) == reflect.TypeFor[error]() {
			if !out[n-1].IsNil() {
				return nil, out[n-1].Interface().(error)
			}
			out = out[:n-1]
		}
		switch len(out) {
		case 0:
			return boxed.BoxVoid(), nil
		case 1:
			return boxed.BoxWithFlags(out[0].Interface(), true, false), nil
		default:
			results := make([]any, len(out))
			for i, o := range out {
				results[i] = o.Interface()
			}
			return boxed.BoxWithFlags(results, true, false), nil
		}
	}
}
