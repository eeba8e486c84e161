package facade

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// temperature implements every skill interface.
type temperature struct {
	C float64
}

func (t temperature) String() string { return strconv.FormatFloat(t.C, 'f', 1, 64) + "C" }

func (t temperature) Equals(other any) bool {
	o, ok := other.(temperature)
	return ok && o.C == t.C
}

func (t temperature) Less(other any) bool {
	o, ok := other.(temperature)
	return ok && t.C < o.C
}

func (t temperature) Serialize() (string, error) {
	return strconv.FormatFloat(t.C, 'f', -1, 64), nil
}

func (t *temperature) Deserialize(s string) error {
	c, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("temperature: parse %q: %w", s, err)
	}
	t.C = c
	return nil
}

func (t temperature) Clone() any { return temperature{C: t.C} }

func (t temperature) Call(args []*boxed.Value) (*boxed.Value, error) {
	return boxed.Box(t.C), nil
}

// blob has no skills at all: not comparable, not copyable without sharing,
// no methods.
type blob struct {
	fn func()
}

func init() {
	Register[temperature]()
	Register[blob]()
	Register[int]()
	Register[string]()
}

func TestSatisfiesAll(t *testing.T) {
	v := boxed.Box(temperature{C: 21.5})
	for _, s := range []Skill{Printable, Stringable, Comparable, Serializable, Cloneable, Callable} {
		require.True(t, Has(v, s), "skill %s", s)
	}

	require.Equal(t, "21.5C", ToString(v))

	var b strings.Builder
	require.NoError(t, Print(v, &b))
	require.Equal(t, "21.5C", b.String())

	out, err := Serialize(v)
	require.NoError(t, err)
	require.Equal(t, "21.5", out)

	c, err := Clone(v)
	require.NoError(t, err)
	require.True(t, Equal(v, c))

	res, err := Call(v)
	require.NoError(t, err)
	f, _ := boxed.TryCast[float64](res)
	require.Equal(t, 21.5, f)

	// Strict dispatch succeeds for every skill.
	for _, s := range []Skill{Printable, Stringable, Serializable, Cloneable, Callable} {
		_, err := Invoke(v, s)
		require.NoError(t, err, "skill %s", s)
	}
	_, err = Invoke(v, Comparable, boxed.Box(temperature{C: 21.5}))
	require.NoError(t, err)
}

func TestSatisfiesNone(t *testing.T) {
	v := boxed.Box(blob{})
	for _, s := range []Skill{Printable, Stringable, Comparable, Serializable, Cloneable, Callable} {
		require.False(t, Has(v, s), "skill %s", s)
		_, err := Invoke(v, s, boxed.Box(blob{}))
		require.ErrorIs(t, err, meta.ErrUnsupported, "skill %s", s)
	}

	// Lenient entry points fall back instead.
	require.Contains(t, ToString(v), "blob")
	var b strings.Builder
	require.NoError(t, Print(v, &b))
	require.NotEmpty(t, b.String())
	require.False(t, Equal(v, v.Clone()))
	require.False(t, LessThan(v, v.Clone()))
}

func TestSerializeRoundTrip(t *testing.T) {
	v := boxed.Box(temperature{C: -7.25})
	s, err := Serialize(v)
	require.NoError(t, err)

	w := boxed.Box(temperature{})
	require.NoError(t, Deserialize(w, s))
	require.True(t, Equal(v, w))
}

func TestDeserializeReadonlyRefused(t *testing.T) {
	tv := temperature{C: 1}
	v := boxed.BoxConstRef(&tv)
	err := Deserialize(v, "5")
	require.ErrorIs(t, err, meta.ErrReadOnly)
	require.Equal(t, 1.0, tv.C)
}

func TestDeserializeBadInputPropagates(t *testing.T) {
	v := boxed.Box(temperature{C: 1})
	err := Deserialize(v, "not-a-number")
	require.Error(t, err)
	// Payload untouched on failure.
	got, _ := boxed.TryCast[temperature](v)
	require.Equal(t, 1.0, got.C)
}

func TestBuiltinKindsGetDefaults(t *testing.T) {
	n := boxed.Box(42)
	require.True(t, Has(n, Stringable))
	require.True(t, Has(n, Comparable))
	require.True(t, Has(n, Serializable))
	require.True(t, Has(n, Cloneable))
	require.False(t, Has(n, Callable))

	require.Equal(t, "42", ToString(n))
	s, err := Serialize(n)
	require.NoError(t, err)
	require.Equal(t, "42", s)

	require.True(t, Equal(n, boxed.Box(42)))
	require.False(t, Equal(n, boxed.Box(43)))
	require.True(t, LessThan(n, boxed.Box(43)))
	require.False(t, LessThan(boxed.Box(43), n))

	str := boxed.Box("hi")
	out, err := Serialize(str)
	require.NoError(t, err)
	require.Equal(t, `"hi"`, out)
}

func TestEqualAcrossTypesIsFalse(t *testing.T) {
	require.False(t, Equal(boxed.Box(1), boxed.Box("1")))
	require.False(t, LessThan(boxed.Box(1), boxed.Box("1")))
}

func TestDefaultCloneIsIndependent(t *testing.T) {
	type point struct{ X, Y int }
	Register[point]()
	Register[[]int]()

	v := boxed.Box(point{X: 1, Y: 2})
	c, err := Clone(v)
	require.NoError(t, err)
	p, _ := boxed.TryCast[point](c)
	require.Equal(t, point{X: 1, Y: 2}, p)

	// Slices are copied, not aliased.
	s := []int{1, 2, 3}
	sv := boxed.Box(s)
	sc, err := Clone(sv)
	require.NoError(t, err)
	out, _ := boxed.TryCast[[]int](sc)
	out[0] = 99
	require.Equal(t, 1, s[0])
}

func TestFuncPayloadIsCallable(t *testing.T) {
	add := func(a, b int) int { return a + b }
	Register[func(a, b int) int]()

	v := boxed.Box(add)
	require.True(t, Has(v, Callable))

	res, err := Call(v, boxed.Box(2), boxed.Box(3))
	require.NoError(t, err)
	require.True(t, res.IsReturnValue())
	n, _ := boxed.TryCast[int](res)
	require.Equal(t, 5, n)

	// Wrong arity and wrong types are argument mismatches.
	_, err = Call(v, boxed.Box(2))
	require.ErrorIs(t, err, meta.ErrArgumentMismatch)
	_, err = Call(v, boxed.Box("a"), boxed.Box("b"))
	require.ErrorIs(t, err, meta.ErrArgumentMismatch)
}

func TestFuncErrorResultUnwrapped(t *testing.T) {
	parse := strconv.Atoi
	Register[func(string) (int, error)]()

	v := boxed.Box(parse)
	res, err := Call(v, boxed.Box("17"))
	require.NoError(t, err)
	n, _ := boxed.TryCast[int](res)
	require.Equal(t, 17, n)

	_, err = Call(v, boxed.Box("xx"))
	require.Error(t, err)
}

func TestUnregisteredTypeHasNoSkills(t *testing.T) {
	type ghost struct{ N int }
	v := boxed.Box(ghost{N: 1})
	require.Nil(t, v.VTable())
	_, err := Invoke(v, Stringable)
	require.ErrorIs(t, err, meta.ErrUnsupported)
}
