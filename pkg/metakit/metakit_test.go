package metakit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/metakit/internal/testutil"
	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
	"github.com/joshuapare/metakit/meta/convert"
	"github.com/joshuapare/metakit/meta/facade"
	"github.com/joshuapare/metakit/meta/typemeta"
)

func newSystem(t *testing.T) *System {
	t.Helper()
	return New(Options{})
}

func TestRegisterTypeWiresEverything(t *testing.T) {
	s := newSystem(t)
	d, err := RegisterType[testutil.Person](s, "Person")
	require.NoError(t, err)

	// Type registry knows the name.
	got, ok := s.Types.Lookup("Person")
	require.True(t, ok)
	require.True(t, got.Equal(d))

	// Reflection entry exists under the bare name.
	require.True(t, s.Reflection.LookupEntry(d.BareName()))

	// Facade vtable is stamped into boxed values.
	v := boxed.Box(testutil.Person{Name: "ada", Age: 36})
	require.True(t, facade.Has(v, facade.Stringable))
	require.Equal(t, "ada (36)", facade.ToString(v))

	// Duplicate registration is rejected by default.
	_, err = RegisterType[testutil.Person](s, "Person")
	require.ErrorIs(t, err, meta.ErrAlreadyRegistered)
}

func TestRegisterTypeWithFactory(t *testing.T) {
	s := newSystem(t)
	_, err := RegisterTypeWithFactory[testutil.Person](s, "Person")
	require.NoError(t, err)

	v, err := s.Types.Create("Person")
	require.NoError(t, err)
	p, ok := v.(*testutil.Person)
	require.True(t, ok)
	require.Equal(t, testutil.Person{}, *p)
}

func TestValueLifecycleEndToEnd(t *testing.T) {
	x := boxed.Box(42)
	require.True(t, boxed.IsType[int](x))

	n, ok := boxed.TryCast[int](x)
	require.True(t, ok)
	require.Equal(t, 42, n)

	require.NoError(t, x.Assign(100))
	n, _ = boxed.TryCast[int](x)
	require.Equal(t, 100, n)

	_, ok = boxed.TryCast[string](x)
	require.False(t, ok)
}

func TestMethodDispatchOnBoxedTarget(t *testing.T) {
	s := newSystem(t)
	_, err := RegisterType[testutil.Person](s, "Person")
	require.NoError(t, err)

	personType := meta.TypeOf[testutil.Person]().BareName()
	require.NoError(t, s.Reflection.AddMethod(personType, "update",
		func(target *boxed.Value, args []*boxed.Value) (*boxed.Value, error) {
			if err := typemeta.ExpectLen(args, 2); err != nil {
				return nil, err
			}
			name, err := typemeta.Arg[string](args, 0)
			if err != nil {
				return nil, err
			}
			age, err := typemeta.Arg[int](args, 1)
			if err != nil {
				return nil, err
			}
			p, _ := boxed.TryCast[testutil.Person](target)
			p.Name, p.Age = name, age
			return boxed.Box(p), nil
		}))

	v := boxed.Box(testutil.Person{Name: "ada", Age: 36})
	out, err := s.CallMethod(v, "update", boxed.Box("grace"), boxed.Box(41))
	require.NoError(t, err)
	p, _ := boxed.TryCast[testutil.Person](out)
	require.Equal(t, "grace", p.Name)
	require.Equal(t, 41, p.Age)

	_, err = s.CallMethod(v, "vanish")
	require.ErrorIs(t, err, meta.ErrNotFound)
}

func TestPolymorphicConversionEndToEnd(t *testing.T) {
	s := newSystem(t)
	shapeDesc := meta.TypeOf[testutil.Shape]()
	circleDesc := meta.TypeOf[*testutil.Circle]()
	squareDesc := meta.TypeOf[*testutil.Square]()

	require.NoError(t, s.Conversions.Register(circleDesc, shapeDesc, convert.Upcast[*testutil.Circle, testutil.Shape]()))
	require.NoError(t, s.Conversions.Register(squareDesc, shapeDesc, convert.Upcast[*testutil.Square, testutil.Shape]()))
	require.NoError(t, s.Conversions.Register(shapeDesc, circleDesc, convert.Downcast[*testutil.Circle]()))
	require.NoError(t, s.Conversions.Register(shapeDesc, squareDesc, convert.Downcast[*testutil.Square]()))

	// Upcast through a boxed handle.
	v := boxed.Box(&testutil.Circle{R: 1})
	up, err := s.Convert(shapeDesc, v)
	require.NoError(t, err)
	require.True(t, up.TypeInfo().Equal(shapeDesc))

	// Downcast to the wrong branch fails with CastFailure.
	_, err = s.Convert(squareDesc, up)
	require.ErrorIs(t, err, meta.ErrCastFailure)

	// Elementwise slice conversion and round trip.
	circles := []*testutil.Circle{{R: 1}, {R: 2}}
	out, err := s.Conversions.Convert(
		meta.TypeOf[[]*testutil.Circle](), meta.TypeOf[[]testutil.Shape](), circles)
	require.NoError(t, err)
	shapes := out.([]testutil.Shape)
	require.Len(t, shapes, 2)

	back, err := s.Conversions.Convert(
		meta.TypeOf[[]testutil.Shape](), meta.TypeOf[[]*testutil.Circle](), shapes)
	require.NoError(t, err)
	require.Len(t, back.([]*testutil.Circle), 2)
}

func TestConvertToEndToEnd(t *testing.T) {
	s := newSystem(t)
	circleDesc := meta.TypeOf[*testutil.Circle]()
	shapeDesc := meta.TypeOf[testutil.Shape]()
	require.NoError(t, s.Conversions.Register(circleDesc, shapeDesc, convert.Upcast[*testutil.Circle, testutil.Shape]()))

	sh, err := ConvertTo[testutil.Shape](s, &testutil.Circle{R: 2})
	require.NoError(t, err)
	require.InDelta(t, 12.566, sh.Area(), 0.001)
}

func TestSerializableRoundTripThroughFacade(t *testing.T) {
	s := newSystem(t)
	_, err := RegisterType[testutil.Person](s, "Person")
	require.NoError(t, err)

	v := boxed.Box(testutil.Person{Name: "ada", Age: 36, Address: "1 Analytical Way"})
	text, err := facade.Serialize(v)
	require.NoError(t, err)

	w := boxed.Box(testutil.Person{})
	require.NoError(t, facade.Deserialize(w, text))
	require.True(t, facade.Equal(v, w))
}

func TestEventFlowOnRegisteredType(t *testing.T) {
	s := newSystem(t)
	d, err := RegisterType[testutil.Person](s, "Person")
	require.NoError(t, err)

	require.NoError(t, s.Reflection.AddEvent(d.BareName(), "renamed", "fires after a rename"))
	var order []string
	add := func(tag string, prio int) {
		_ = s.Reflection.AddListener(d.BareName(), "renamed",
			func(*boxed.Value, []*boxed.Value) error {
				order = append(order, tag)
				return nil
			}, prio)
	}
	add("high", 10)
	add("mid", 5)
	add("low", 0)

	v := boxed.Box(testutil.Person{Name: "ada"})
	require.NoError(t, s.FireEvent(v, "renamed", boxed.Box("grace")))
	require.Equal(t, []string{"high", "mid", "low"}, order)
}

func TestDescribe(t *testing.T) {
	s := newSystem(t)
	_, err := RegisterType[testutil.Person](s, "Person")
	require.NoError(t, err)

	d, err := s.Describe("Person")
	require.NoError(t, err)
	require.True(t, d.Equal(meta.TypeOf[testutil.Person]()))

	_, err = s.Describe("Ghost")
	require.ErrorIs(t, err, meta.ErrNotFound)
}

func TestDefaultSystemSingleton(t *testing.T) {
	require.Same(t, Default(), Default())
	require.Same(t, Default().Types, meta.Types())
}
