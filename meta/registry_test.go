package meta

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry(RegistryOptions{})

	d, err := RegisterType[sample](r, "sample")
	require.NoError(t, err)

	got, ok := r.Lookup("sample")
	require.True(t, ok)
	require.True(t, got.Equal(d))
	require.True(t, r.IsRegistered("sample"))
	require.False(t, r.IsRegistered("missing"))

	_, ok = r.Lookup("missing")
	require.False(t, ok)
}

func TestDuplicatePolicies(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		r := NewRegistry(RegistryOptions{Duplicates: DuplicateError})
		require.NoError(t, r.Register("x", TypeOf[int]()))
		err := r.Register("x", TypeOf[string]())
		require.ErrorIs(t, err, ErrAlreadyRegistered)

		d, _ := r.Lookup("x")
		require.True(t, d.Equal(TypeOf[int]()))
	})

	t.Run("ignore", func(t *testing.T) {
		r := NewRegistry(RegistryOptions{Duplicates: DuplicateIgnore})
		require.NoError(t, r.Register("x", TypeOf[int]()))
		require.NoError(t, r.Register("x", TypeOf[string]()))

		d, _ := r.Lookup("x")
		require.True(t, d.Equal(TypeOf[int]()))
	})

	t.Run("overwrite", func(t *testing.T) {
		r := NewRegistry(RegistryOptions{Duplicates: DuplicateOverwrite})
		require.NoError(t, r.Register("x", TypeOf[int]()))
		require.NoError(t, r.Register("x", TypeOf[string]()))

		d, _ := r.Lookup("x")
		require.True(t, d.Equal(TypeOf[string]()))
	})
}

func TestRegisteredNamesSorted(t *testing.T) {
	r := NewRegistry(RegistryOptions{})
	require.NoError(t, r.Register("zebra", TypeOf[int]()))
	require.NoError(t, r.Register("alpha", TypeOf[string]()))
	require.NoError(t, r.Register("mid", TypeOf[bool]()))

	require.Equal(t, []string{"alpha", "mid", "zebra"}, r.RegisteredNames())
}

func TestFactoryCreate(t *testing.T) {
	r := NewRegistry(RegistryOptions{})
	require.NoError(t, RegisterFactoryFor[sample](r, "sample"))

	v, err := r.Create("sample")
	require.NoError(t, err)
	s, ok := v.(*sample)
	require.True(t, ok)
	require.Equal(t, sample{}, *s)

	// Each call produces a fresh value.
	w, err := r.Create("sample")
	require.NoError(t, err)
	require.NotSame(t, s, w.(*sample))

	_, err = r.Create("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFactoryDuplicate(t *testing.T) {
	r := NewRegistry(RegistryOptions{})
	require.NoError(t, RegisterFactoryFor[sample](r, "sample"))
	err := RegisterFactoryFor[sample](r, "sample")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry(RegistryOptions{Duplicates: DuplicateOverwrite})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Register("shared", TypeOf[int]())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Lookup("shared")
				r.RegisteredNames()
			}
		}()
	}
	wg.Wait()

	require.True(t, r.IsRegistered("shared"))
}

func TestGlobalRegistryLazyInit(t *testing.T) {
	require.Same(t, Types(), Types())
}

func TestErrorsDistinct(t *testing.T) {
	all := []error{
		ErrUndefined, ErrReadOnly, ErrTypeMismatch, ErrNotFound,
		ErrAlreadyRegistered, ErrArgumentMismatch, ErrNoPath, ErrCastFailure,
		ErrUnsupported, ErrConstructorFailure, ErrInternal,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				require.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
