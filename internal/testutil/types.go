// Package testutil provides shared fixture types for metakit tests.
package testutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Person is a plain record type used across reflection and facade tests.
type Person struct {
	Name    string
	Age     int
	Address string
}

func (p Person) String() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.Age)
}

func (p Person) Equals(other any) bool {
	o, ok := other.(Person)
	return ok && o == p
}

func (p Person) Serialize() (string, error) {
	return p.Name + "|" + strconv.Itoa(p.Age) + "|" + p.Address, nil
}

func (p *Person) Deserialize(s string) error {
	parts := strings.SplitN(s, "|", 3)
	if len(parts) != 3 {
		return fmt.Errorf("testutil: malformed person %q", s)
	}
	age, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("testutil: malformed person age %q: %w", parts[1], err)
	}
	p.Name, p.Age, p.Address = parts[0], age, parts[2]
	return nil
}

// Shape is the polymorphic base of the conversion fixtures.
type Shape interface {
	Area() float64
}

// Circle is one Shape implementation.
type Circle struct {
	R float64
}

func (c *Circle) Area() float64 { return 3.141592653589793 * c.R * c.R }

// Square is the other Shape implementation.
type Square struct {
	S float64
}

func (s *Square) Area() float64 { return s.S * s.S }
