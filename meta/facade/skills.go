package facade

import (
	"io"

	"github.com/joshuapare/metakit/meta/boxed"
)

// Skill names one probed capability.
type Skill int

const (
	Printable Skill = iota
	Stringable
	Comparable
	Serializable
	Cloneable
	Callable
)

var skillNames = [...]string{
	Printable:    "printable",
	Stringable:   "stringable",
	Comparable:   "comparable",
	Serializable: "serializable",
	Cloneable:    "cloneable",
	Callable:     "callable",
}

func (s Skill) String() string {
	if int(s) < len(skillNames) {
		return skillNames[s]
	}
	return "unknown"
}

// Printer is implemented by types that render themselves to a sink.
type Printer interface {
	PrintTo(w io.Writer) error
}

// Equaler is implemented by types that define equality against a value of
// the same concrete type.
type Equaler interface {
	Equals(other any) bool
}

// Lesser is implemented by types that define strict ordering.
type Lesser interface {
	Less(other any) bool
}

// Serializer renders the value to the type's own text form.
type Serializer interface {
	Serialize() (string, error)
}

// Deserializer parses the type's text form, replacing the receiver. It is
// probed against the pointer type so value types can implement it with a
// pointer receiver.
type Deserializer interface {
	Deserialize(s string) error
}

// Cloner produces an independently owned copy.
type Cloner interface {
	Clone() any
}

// Caller is implemented by invocable types.
type Caller interface {
	Call(args []*boxed.Value) (*boxed.Value, error)
}
