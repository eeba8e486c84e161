package convert

import (
	"fmt"

	"github.com/joshuapare/metakit/meta"
)

// Cast wraps a typed conversion function as an edge. The edge rejects any
// value that is not a From with meta.ErrCastFailure; errors from fn pass
// through unchanged.
func Cast[From, To any](fn func(From) (To, error)) Func {
	return func(v any) (any, error) {
		f, ok := v.(From)
		if !ok {
			return nil, castFailure[From](v)
		}
		return fn(f)
	}
}

// StaticCast wraps an infallible typed conversion, verified at registration
// time by construction: the function itself is the proof the cast exists.
func StaticCast[From, To any](fn func(From) To) Func {
	return func(v any) (any, error) {
		f, ok := v.(From)
		if !ok {
			return nil, castFailure[From](v)
		}
		return fn(f), nil
	}
}

// Upcast converts a concrete From into interface To.
func Upcast[From any, To any]() Func {
	return func(v any) (any, error) {
		f, ok := v.(From)
		if !ok {
			return nil, castFailure[From](v)
		}
		t, ok := any(f).(To)
		if !ok {
			return nil, fmt.Errorf("convert: %s does not satisfy %s: %w",
				meta.TypeOf[From]().Name(), meta.TypeOf[To]().Name(), meta.ErrCastFailure)
		}
		return t, nil
	}
}

// Downcast converts a polymorphic value to its concrete type To, failing
// with meta.ErrCastFailure when the runtime type is incompatible.
func Downcast[To any]() Func {
	return func(v any) (any, error) {
		t, ok := v.(To)
		if !ok {
			return nil, castFailure[To](v)
		}
		return t, nil
	}
}

func castFailure[Want any](got any) error {
	return fmt.Errorf("convert: value of type %s is not %s: %w",
		meta.TypeFor(got).Name(), meta.TypeOf[Want]().Name(), meta.ErrCastFailure)
}
