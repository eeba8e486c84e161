package boxed

import (
	"reflect"
	"time"

	"github.com/joshuapare/metakit/meta"
)

func newRecord(kind payloadKind, payload any, desc meta.Descriptor, vt *VTable) *record {
	now := time.Now()
	return &record{
		kind:     kind,
		payload:  payload,
		desc:     desc,
		vt:       vt,
		created:  now,
		modified: now,
	}
}

// Box wraps v in an owning handle. The descriptor and capability vtable are
// derived from v's dynamic type. Box(nil) is equivalent to BoxVoid().
func Box(v any) *Value {
	if v == nil {
		return BoxVoid()
	}
	rec := newRecord(payloadOwned, v, meta.TypeFor(v), VTableFor(reflect.TypeOf(v)))
	rec.isNull = isNilValue(v)
	return &Value{rec: rec}
}

// BoxOf wraps v with the descriptor imprinted from the type parameter rather
// than the dynamic type. Useful when T is an interface type.
func BoxOf[T any](v T) *Value {
	rec := newRecord(payloadOwned, v, meta.TypeOf[T](), VTableFor(reflect.TypeFor[T]()))
	rec.isNull = isNilValue(v)
	return &Value{rec: rec}
}

// BoxRef wraps external storage without taking ownership. The handle must
// not outlive *p. Sets the reference flag.
func BoxRef[T any](p *T) *Value {
	rec := newRecord(payloadBorrowed, p, meta.RefOf[T](), VTableFor(reflect.TypeFor[T]()))
	rec.isRef = true
	rec.isNull = p == nil
	return &Value{rec: rec}
}

// BoxConstRef wraps external storage readonly: Assign and every other write
// path refuse with meta.ErrReadOnly.
func BoxConstRef[T any](p *T) *Value {
	rec := newRecord(payloadBorrowed, p, meta.ConstRefOf[T](), VTableFor(reflect.TypeFor[T]()))
	rec.isRef = true
	rec.readonly = true
	rec.isNull = p == nil
	return &Value{rec: rec}
}

// BoxDescribed wraps v owning under a caller-supplied descriptor. Used by
// conversion paths where the static target type matters more than the
// payload's dynamic type, e.g. a concrete value travelling as an interface.
func BoxDescribed(v any, d meta.Descriptor) *Value {
	if v == nil && d.IsUndefined() {
		return BoxVoid()
	}
	rec := newRecord(payloadOwned, v, d, VTableFor(d.ReflectType()))
	rec.isNull = isNilValue(v)
	return &Value{rec: rec}
}

// BoxVoid returns an empty handle carrying the undefined descriptor.
func BoxVoid() *Value {
	rec := newRecord(payloadEmpty, nil, meta.Undefined(), nil)
	rec.isNull = true
	return &Value{rec: rec}
}

// BoxWithFlags wraps v owning, with the return-value and readonly flags set
// as given.
func BoxWithFlags(v any, returnValue, readonly bool) *Value {
	b := Box(v)
	b.rec.isReturn = returnValue
	b.rec.readonly = readonly
	return b
}
