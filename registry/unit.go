// Package registry holds the unit spaces, units and SI prefixes that unit
// expressions are resolved against.
//
// A Registry is built once and never mutated afterwards, so it may be read
// from any number of goroutines without locking.
package registry

import "fmt"

// Space identifies a physical dimension category. Two units are
// commensurable only when they live in the same space.
type Space string

const (
	Length Space = "length"
	Time   Space = "time"
	Mass   Space = "mass"
)

// Unit is a named conversion between a concrete unit and the base unit of
// its space.
type Unit struct {
	Name    string
	Aliases []string
	Space   Space
	Metric  bool // accepts SI prefixes

	ToBase   func(float64) float64
	FromBase func(float64) float64
}

// Linear returns a unit whose value in base units is v*factor.
func Linear(name string, space Space, factor float64, aliases ...string) *Unit {
	return &Unit{
		Name:     name,
		Aliases:  aliases,
		Space:    space,
		ToBase:   func(v float64) float64 { return v * factor },
		FromBase: func(v float64) float64 { return v / factor },
	}
}

// Base returns the reference unit of a space. Its conversions are the
// identity and it accepts SI prefixes.
func Base(name string, space Space, aliases ...string) *Unit {
	return &Unit{
		Name:     name,
		Aliases:  aliases,
		Space:    space,
		Metric:   true,
		ToBase:   identity,
		FromBase: identity,
	}
}

func identity(v float64) float64 { return v }

// Names returns the canonical name followed by every alias.
func (u *Unit) Names() []string {
	names := make([]string, 0, len(u.Aliases)+1)
	names = append(names, u.Name)
	return append(names, u.Aliases...)
}

// Scale returns how many base units one of u is.
func (u *Unit) Scale() float64 {
	return u.ToBase(1)
}

func (u *Unit) String() string {
	return u.Name
}

// GoString is used by %#v in test failures.
func (u *Unit) GoString() string {
	return fmt.Sprintf("registry.Unit(%s/%s)", u.Space, u.Name)
}
