// Package dimension parses unit expressions such as "mi/h^2" or "m/(s*s)",
// reduces them to per-space exponents and converts values between
// commensurable expressions.
//
// Parsing runs in three stages, each exported for testing: Tokenize,
// Treeify and Expand. Nothing in this package logs or writes output.
package dimension

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chazu/unitconv/registry"
)

// Dimensions is a parsed unit expression. It is never mutated after Parse.
type Dimensions struct {
	source string
	units  []Unit
}

// Parse tokenizes, treeifies and expands text against reg.
func Parse(reg *registry.Registry, text string) (*Dimensions, error) {
	tokens, err := Tokenize(reg, text)
	if err != nil {
		return nil, err
	}
	tree, err := Treeify(tokens)
	if err != nil {
		return nil, err
	}
	units, err := Expand(tree)
	if err != nil {
		return nil, err
	}
	return &Dimensions{source: strings.TrimSpace(text), units: units}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(reg *registry.Registry, text string) *Dimensions {
	d, err := Parse(reg, text)
	if err != nil {
		panic(fmt.Sprintf("dimension: Parse(%q): %v", text, err))
	}
	return d
}

// Units returns a copy of the expanded unit list.
func (d *Dimensions) Units() []Unit {
	out := make([]Unit, len(d.units))
	copy(out, d.units)
	return out
}

// BaseUnits sums the powers of d per unit space. Spaces whose powers cancel
// out are omitted.
func (d *Dimensions) BaseUnits() map[registry.Space]float64 {
	sums := make(map[registry.Space]float64)
	for _, u := range d.units {
		sums[u.Conversion.Space] += u.Power
	}
	for space, power := range sums {
		if power == 0 {
			delete(sums, space)
		}
	}
	return sums
}

// Equals reports whether d and other are dimensionally compatible: both must
// have the same summed power in every unit space. Prefix scales are ignored.
func (d *Dimensions) Equals(other *Dimensions) bool {
	a, b := d.BaseUnits(), other.BaseUnits()
	if len(a) != len(b) {
		return false
	}
	for space, power := range a {
		if p, ok := b[space]; !ok || p != power {
			return false
		}
	}
	return true
}

// Convert converts value from d to other. The value is first carried to base
// units through every unit of d, then out of base units through every unit
// of other, so the two expressions must be compatible.
func (d *Dimensions) Convert(other *Dimensions, value float64) (float64, error) {
	if !d.Equals(other) {
		return 0, &MismatchError{From: d.AsBaseUnits(), To: other.AsBaseUnits()}
	}

	v := value
	for _, u := range d.units {
		var err error
		if v, err = u.toBase(v); err != nil {
			return 0, err
		}
	}
	for _, u := range other.units {
		var err error
		if v, err = u.fromBase(v); err != nil {
			return 0, err
		}
	}
	return v, nil
}

// toBase carries v from u to the base unit of its space.
func (u Unit) toBase(v float64) (float64, error) {
	n, err := u.repetitions()
	if err != nil {
		return 0, err
	}
	fn := u.Conversion.ToBase
	if u.Power < 0 {
		fn = u.Conversion.FromBase
	}
	for i := 0; i < n; i++ {
		v = fn(v)
	}
	return v * math.Pow10(u.Exponent*int(u.Power)), nil
}

// fromBase is the inverse of toBase.
func (u Unit) fromBase(v float64) (float64, error) {
	n, err := u.repetitions()
	if err != nil {
		return 0, err
	}
	fn := u.Conversion.FromBase
	if u.Power < 0 {
		fn = u.Conversion.ToBase
	}
	for i := 0; i < n; i++ {
		v = fn(v)
	}
	return v * math.Pow10(-u.Exponent*int(u.Power)), nil
}

func (u Unit) repetitions() (int, error) {
	if u.Power != math.Trunc(u.Power) || math.IsInf(u.Power, 0) {
		return 0, fmt.Errorf("%w: %s^%s", ErrFractionalPower, u.Conversion.Name, formatNumber(u.Power))
	}
	if math.Abs(u.Power) > MaxPower {
		return 0, fmt.Errorf("%w, power %s is out of range ±%d", ErrInvalidExponent, formatNumber(u.Power), MaxPower)
	}
	return int(math.Abs(u.Power)), nil
}

// AsBaseUnits renders every unit as [name] or [name]^power, in list order.
func (d *Dimensions) AsBaseUnits() string {
	return d.render(func(p float64) string { return "^" + formatNumber(p) })
}

// Superscript is like AsBaseUnits but writes powers as superscript digits.
func (d *Dimensions) Superscript() string {
	return d.render(func(p float64) string { return superscript(formatNumber(p)) })
}

func (d *Dimensions) render(power func(float64) string) string {
	parts := make([]string, len(d.units))
	for i, u := range d.units {
		parts[i] = "[" + u.Conversion.Name + "]"
		if u.Power != 1 {
			parts[i] += power(u.Power)
		}
	}
	return strings.Join(parts, " ")
}

// Summary renders the per-space powers, sorted by space, e.g.
// "length time^-2". A dimensionless expression renders as "1".
func (d *Dimensions) Summary() string {
	sums := d.BaseUnits()
	if len(sums) == 0 {
		return "1"
	}
	spaces := make([]string, 0, len(sums))
	for space := range sums {
		spaces = append(spaces, string(space))
	}
	sort.Strings(spaces)
	for i, space := range spaces {
		if p := sums[registry.Space(space)]; p != 1 {
			spaces[i] = space + "^" + formatNumber(p)
		}
	}
	return strings.Join(spaces, " ")
}

// String returns the expression as it was parsed.
func (d *Dimensions) String() string {
	return d.source
}
