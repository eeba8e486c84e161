package convert

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/metakit/meta"
)

type shape interface{ Area() float64 }

type circle struct{ R float64 }

func (c *circle) Area() float64 { return 3.14159 * c.R * c.R }

type square struct{ S float64 }

func (s *square) Area() float64 { return s.S * s.S }

var (
	shapeDesc  = meta.TypeOf[shape]()
	circleDesc = meta.TypeOf[*circle]()
	squareDesc = meta.TypeOf[*square]()
	intDesc    = meta.TypeOf[int]()
	strDesc    = meta.TypeOf[string]()
	f64Desc    = meta.TypeOf[float64]()
)

func newShapeEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(Options{})
	require.NoError(t, e.Register(circleDesc, shapeDesc, Upcast[*circle, shape]()))
	require.NoError(t, e.Register(squareDesc, shapeDesc, Upcast[*square, shape]()))
	require.NoError(t, e.Register(shapeDesc, circleDesc, Downcast[*circle]()))
	require.NoError(t, e.Register(shapeDesc, squareDesc, Downcast[*square]()))
	return e
}

func TestDynamicDowncast(t *testing.T) {
	e := newShapeEngine(t)

	// Upcast succeeds.
	up, err := e.Convert(circleDesc, shapeDesc, &circle{R: 1})
	require.NoError(t, err)
	_, ok := up.(shape)
	require.True(t, ok)

	// Downcast to the actual concrete type succeeds.
	down, err := e.Convert(shapeDesc, circleDesc, shape(&circle{R: 2}))
	require.NoError(t, err)
	require.Equal(t, 2.0, down.(*circle).R)

	// Downcast across the hierarchy fails with CastFailure.
	_, err = e.Convert(shapeDesc, squareDesc, shape(&circle{R: 2}))
	require.ErrorIs(t, err, meta.ErrCastFailure)
}

func TestNoPath(t *testing.T) {
	e := NewEngine(Options{})
	_, err := e.Convert(intDesc, strDesc, 1)
	require.ErrorIs(t, err, meta.ErrNoPath)
	require.Contains(t, err.Error(), "int")
	require.Contains(t, err.Error(), "string")
	require.False(t, e.CanConvert(intDesc, strDesc))
}

func TestIdentityConversion(t *testing.T) {
	e := NewEngine(Options{})
	out, err := e.Convert(intDesc, intDesc, 41)
	require.NoError(t, err)
	require.Equal(t, 41, out)
	require.True(t, e.CanConvert(intDesc, intDesc))
}

func TestBidirectionalRoundTrip(t *testing.T) {
	e := NewEngine(Options{})
	require.NoError(t, e.RegisterBidirectional(intDesc, strDesc,
		StaticCast(func(n int) string { return strconv.Itoa(n) }),
		Cast(func(s string) (int, error) { return strconv.Atoi(s) }),
	))

	for _, n := range []int{-3, 0, 7, 123456} {
		s, err := e.Convert(intDesc, strDesc, n)
		require.NoError(t, err)
		back, err := e.Convert(strDesc, intDesc, s)
		require.NoError(t, err)
		require.Equal(t, n, back)
	}
}

func TestDuplicateEdgeRejected(t *testing.T) {
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))
	err := e.Register(intDesc, strDesc, StaticCast(strconv.Itoa))
	require.ErrorIs(t, err, meta.ErrAlreadyRegistered)
}

func TestShortestPathWins(t *testing.T) {
	// int -> string -> float64 (two hops) versus int -> float64 (one hop,
	// registered later). BFS must pick the single hop.
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))
	require.NoError(t, e.Register(strDesc, f64Desc, Cast(func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})))
	require.NoError(t, e.Register(intDesc, f64Desc, StaticCast(func(n int) float64 {
		return float64(n)
	})))

	p, err := e.Path(intDesc, f64Desc)
	require.NoError(t, err)
	require.Len(t, p, 2)
	require.True(t, p[0].Equal(intDesc))
	require.True(t, p[1].Equal(f64Desc))

	out, err := e.Convert(intDesc, f64Desc, 5)
	require.NoError(t, err)
	require.Equal(t, 5.0, out)
}

func TestPathCacheStableBetweenMutations(t *testing.T) {
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))
	require.NoError(t, e.Register(strDesc, f64Desc, Cast(func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})))

	p1, err := e.Path(intDesc, f64Desc)
	require.NoError(t, err)
	p2, err := e.Path(intDesc, f64Desc)
	require.NoError(t, err)
	require.Equal(t, p1, p2)

	// Adding a shorter edge invalidates the cache.
	require.NoError(t, e.Register(intDesc, f64Desc, StaticCast(func(n int) float64 {
		return float64(n)
	})))
	p3, err := e.Path(intDesc, f64Desc)
	require.NoError(t, err)
	require.Len(t, p3, 2)

	// Removing it restores the longer route.
	require.NoError(t, e.Remove(intDesc, f64Desc))
	p4, err := e.Path(intDesc, f64Desc)
	require.NoError(t, err)
	require.Len(t, p4, 3)
}

func TestCacheDisabled(t *testing.T) {
	e := NewEngine(Options{DisableCache: true})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))
	out, err := e.Convert(intDesc, strDesc, 9)
	require.NoError(t, err)
	require.Equal(t, "9", out)
	out, err = e.Convert(intDesc, strDesc, 10)
	require.NoError(t, err)
	require.Equal(t, "10", out)
}

func TestPartialFailureDiscardsResult(t *testing.T) {
	// int -> string succeeds, string -> float64 rejects; Convert must
	// surface the failure and return nothing.
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(func(int) string { return "nope" })))
	require.NoError(t, e.Register(strDesc, f64Desc, Cast(func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})))

	out, err := e.Convert(intDesc, f64Desc, 1)
	require.Error(t, err)
	require.Nil(t, out)
}

func TestConvertTo(t *testing.T) {
	e := newShapeEngine(t)

	s, err := ConvertTo[shape](e, &circle{R: 3})
	require.NoError(t, err)
	require.InDelta(t, 28.27, s.Area(), 0.01)

	_, err = ConvertTo[shape](e, 42)
	require.ErrorIs(t, err, meta.ErrNoPath)
}

func TestContainerSliceConversion(t *testing.T) {
	e := newShapeEngine(t)

	in := []*circle{{R: 1}, {R: 2}}
	out, err := e.Convert(meta.TypeOf[[]*circle](), meta.TypeOf[[]shape](), in)
	require.NoError(t, err)

	shapes, ok := out.([]shape)
	require.True(t, ok)
	require.Len(t, shapes, 2)
	for _, s := range shapes {
		_, isCircle := s.(*circle)
		require.True(t, isCircle)
	}

	// Round trip back down.
	back, err := e.Convert(meta.TypeOf[[]shape](), meta.TypeOf[[]*circle](), shapes)
	require.NoError(t, err)
	require.Len(t, back.([]*circle), 2)
}

func TestContainerSetConversion(t *testing.T) {
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))

	in := map[int]struct{}{1: {}, 2: {}}
	out, err := e.Convert(meta.TypeOf[map[int]struct{}](), meta.TypeOf[map[string]struct{}](), in)
	require.NoError(t, err)
	set, ok := out.(map[string]struct{})
	require.True(t, ok)
	require.Len(t, set, 2)
	_, ok = set["1"]
	require.True(t, ok)
}

func TestContainerMapValueConversion(t *testing.T) {
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))

	in := map[string]int{"a": 1, "b": 2}
	out, err := e.Convert(meta.TypeOf[map[string]int](), meta.TypeOf[map[string]string](), in)
	require.NoError(t, err)
	m, ok := out.(map[string]string)
	require.True(t, ok)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, m)
}

func TestContainerElementFailure(t *testing.T) {
	e := newShapeEngine(t)

	// One element is really a square; downcasting every element to circle
	// must fail and discard the partial slice.
	in := []shape{&circle{R: 1}, &square{S: 2}}
	_, err := e.Convert(meta.TypeOf[[]shape](), meta.TypeOf[[]*circle](), in)
	require.ErrorIs(t, err, meta.ErrCastFailure)
}

func TestDefaultEngineLazyInit(t *testing.T) {
	require.Same(t, Default(), Default())
}

func TestConcurrentConvertAndMutate(t *testing.T) {
	e := NewEngine(Options{})
	require.NoError(t, e.Register(intDesc, strDesc, StaticCast(strconv.Itoa)))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				out, err := e.Convert(intDesc, strDesc, j)
				require.NoError(t, err)
				require.Equal(t, strconv.Itoa(j), out)
			}
		}()
		go func(n int) {
			defer wg.Done()
			d := meta.TypeOf[[1]int]()
			for j := 0; j < 100; j++ {
				// Churn an unrelated edge to exercise cache invalidation
				// under load.
				_ = e.Register(d, f64Desc, StaticCast(func(a [1]int) float64 { return float64(a[0]) }))
				_ = e.Remove(d, f64Desc)
			}
		}(i)
	}
	wg.Wait()
}
