package convert

import (
	"fmt"
	"reflect"

	"github.com/joshuapare/metakit/meta"
)

// Container elementwise conversion: when both descriptors are containers of
// the same shape and the element types are connected in the graph, convert
// each element and rebuild the container. Supported shapes: slices, sets
// (map[K]struct{} with convertible keys), and maps with a shared key type
// and convertible values.

// containerRoute reports whether an elementwise route exists, without
// converting anything.
func (e *Engine) containerRoute(from, to meta.Descriptor) bool {
	fr, tr := from.ReflectType(), to.ReflectType()
	if fr == nil || tr == nil || fr.Kind() != tr.Kind() {
		return false
	}
	switch fr.Kind() {
	case reflect.Slice:
		return e.CanConvert(meta.DescriptorOf(fr.Elem()), meta.DescriptorOf(tr.Elem()))
	case reflect.Map:
		if isSet(fr) && isSet(tr) {
			return e.CanConvert(meta.DescriptorOf(fr.Key()), meta.DescriptorOf(tr.Key()))
		}
		return fr.Key() == tr.Key() &&
			e.CanConvert(meta.DescriptorOf(fr.Elem()), meta.DescriptorOf(tr.Elem()))
	default:
		return false
	}
}

func isSet(rt reflect.Type) bool {
	return rt.Kind() == reflect.Map && rt.Elem() == reflect.TypeOf(struct{}{})
}

// convertContainer attempts the elementwise conversion. The middle result
// reports whether the shape pair was handled at all; when false the caller
// falls back to its own NoPath error.
func (e *Engine) convertContainer(from, to meta.Descriptor, v any) (any, bool, error) {
	fr, tr := from.ReflectType(), to.ReflectType()
	if fr == nil || tr == nil || fr.Kind() != tr.Kind() {
		return nil, false, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != fr {
		return nil, false, nil
	}

	switch fr.Kind() {
	case reflect.Slice:
		elemFrom, elemTo := meta.DescriptorOf(fr.Elem()), meta.DescriptorOf(tr.Elem())
		if !e.CanConvert(elemFrom, elemTo) {
			return nil, false, nil
		}
		out := reflect.MakeSlice(tr, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			conv, err := e.Convert(elemFrom, elemTo, rv.Index(i).Interface())
			if err != nil {
				return nil, true, fmt.Errorf("convert: element %d of %s: %w", i, from.Name(), err)
			}
			if err := setReflect(out.Index(i), conv); err != nil {
				return nil, true, fmt.Errorf("convert: element %d of %s: %w", i, from.Name(), err)
			}
		}
		return out.Interface(), true, nil

	case reflect.Map:
		if isSet(fr) && isSet(tr) {
			keyFrom, keyTo := meta.DescriptorOf(fr.Key()), meta.DescriptorOf(tr.Key())
			if !e.CanConvert(keyFrom, keyTo) {
				return nil, false, nil
			}
			out := reflect.MakeMapWithSize(tr, rv.Len())
			unit := reflect.ValueOf(struct{}{})
			for it := rv.MapRange(); it.Next(); {
				conv, err := e.Convert(keyFrom, keyTo, it.Key().Interface())
				if err != nil {
					return nil, true, fmt.Errorf("convert: set member of %s: %w", from.Name(), err)
				}
				kv := reflect.New(tr.Key()).Elem()
				if err := setReflect(kv, conv); err != nil {
					return nil, true, fmt.Errorf("convert: set member of %s: %w", from.Name(), err)
				}
				out.SetMapIndex(kv, unit)
			}
			return out.Interface(), true, nil
		}

		if fr.Key() != tr.Key() {
			return nil, false, nil
		}
		valFrom, valTo := meta.DescriptorOf(fr.Elem()), meta.DescriptorOf(tr.Elem())
		if !e.CanConvert(valFrom, valTo) {
			return nil, false, nil
		}
		out := reflect.MakeMapWithSize(tr, rv.Len())
		for it := rv.MapRange(); it.Next(); {
			conv, err := e.Convert(valFrom, valTo, it.Value().Interface())
			if err != nil {
				return nil, true, fmt.Errorf("convert: value for key %v of %s: %w", it.Key(), from.Name(), err)
			}
			vv := reflect.New(tr.Elem()).Elem()
			if err := setReflect(vv, conv); err != nil {
				return nil, true, fmt.Errorf("convert: value for key %v of %s: %w", it.Key(), from.Name(), err)
			}
			out.SetMapIndex(it.Key(), vv)
		}
		return out.Interface(), true, nil

	default:
		return nil, false, nil
	}
}

// setReflect stores conv into dst, requiring assignability.
func setReflect(dst reflect.Value, conv any) error {
	cv := reflect.ValueOf(conv)
	if !cv.IsValid() {
		if canBeNil(dst.Kind()) {
			dst.SetZero()
			return nil
		}
		return fmt.Errorf("nil result for %s: %w", dst.Type(), meta.ErrCastFailure)
	}
	if !cv.Type().AssignableTo(dst.Type()) {
		return fmt.Errorf("result type %s not assignable to %s: %w",
			cv.Type(), dst.Type(), meta.ErrCastFailure)
	}
	dst.Set(cv)
	return nil
}

func canBeNil(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
