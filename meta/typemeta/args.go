package typemeta

import (
	"fmt"

	"github.com/joshuapare/metakit/meta"
	"github.com/joshuapare/metakit/meta/boxed"
)

// Helpers for writing overload bodies. Both reject with
// meta.ErrArgumentMismatch, so overload resolution moves on to the next
// candidate instead of failing the call.

// ExpectLen rejects the argument list unless it has exactly n entries.
func ExpectLen(args []*boxed.Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("typemeta: want %d argument(s), got %d: %w", n, len(args), meta.ErrArgumentMismatch)
	}
	return nil
}

// Arg extracts argument i as T, rejecting when the position is missing or
// the value cannot be read as T.
func Arg[T any](args []*boxed.Value, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("typemeta: argument %d missing: %w", i, meta.ErrArgumentMismatch)
	}
	t, ok := boxed.TryCast[T](args[i])
	if !ok {
		return zero, fmt.Errorf("typemeta: argument %d is %s, want %s: %w",
			i, args[i].TypeInfo().Name(), meta.TypeOf[T]().Name(), meta.ErrArgumentMismatch)
	}
	return t, nil
}
