package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateUnit is returned by Build when two units claim the same
	// name or alias.
	ErrDuplicateUnit = errors.New("duplicate unit name")

	// ErrInvalidUnit is returned by Build for a unit that cannot be used.
	ErrInvalidUnit = errors.New("invalid unit")
)

// Registry is an immutable set of units indexed by lowercase name and alias.
type Registry struct {
	units  []*Unit
	byName map[string]*Unit
	spaces []Space
	digest string
}

// Builder collects units for a Registry.
type Builder struct {
	units []*Unit
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends units to the builder. Units are copied by Build, so the
// caller may reuse them.
func (b *Builder) Add(units ...*Unit) *Builder {
	b.units = append(b.units, units...)
	return b
}

// Build validates the collected units and returns the registry. Every name
// and alias must be unique across the whole registry, compared
// case-insensitively.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		units:  make([]*Unit, 0, len(b.units)),
		byName: make(map[string]*Unit),
	}
	seenSpace := make(map[Space]bool)

	for _, src := range b.units {
		u, err := normalize(src)
		if err != nil {
			return nil, err
		}
		for _, name := range u.Names() {
			if owner, ok := r.byName[name]; ok {
				return nil, fmt.Errorf("%w: %q is claimed by both %s and %s", ErrDuplicateUnit, name, owner.Name, u.Name)
			}
			r.byName[name] = u
		}
		r.units = append(r.units, u)
		if !seenSpace[u.Space] {
			seenSpace[u.Space] = true
			r.spaces = append(r.spaces, u.Space)
		}
	}
	sort.Slice(r.spaces, func(i, j int) bool { return r.spaces[i] < r.spaces[j] })

	digest, err := digestUnits(r.units)
	if err != nil {
		return nil, err
	}
	r.digest = digest

	return r, nil
}

// normalize returns a lowercase copy of u, or an error if u is unusable.
func normalize(src *Unit) (*Unit, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil unit", ErrInvalidUnit)
	}
	u := *src
	u.Name = strings.ToLower(strings.TrimSpace(u.Name))
	if u.Name == "" {
		return nil, fmt.Errorf("%w: unit has no name", ErrInvalidUnit)
	}
	if u.Space == "" {
		return nil, fmt.Errorf("%w: %s has no space", ErrInvalidUnit, u.Name)
	}
	if u.ToBase == nil || u.FromBase == nil {
		return nil, fmt.Errorf("%w: %s is missing a conversion", ErrInvalidUnit, u.Name)
	}
	if strings.ContainsAny(u.Name, reserved) {
		return nil, fmt.Errorf("%w: %q contains an operator character", ErrInvalidUnit, u.Name)
	}

	u.Aliases = make([]string, 0, len(src.Aliases))
	for _, alias := range src.Aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			return nil, fmt.Errorf("%w: %s has an empty alias", ErrInvalidUnit, u.Name)
		}
		if strings.ContainsAny(alias, reserved) {
			return nil, fmt.Errorf("%w: alias %q of %s contains an operator character", ErrInvalidUnit, alias, u.Name)
		}
		u.Aliases = append(u.Aliases, alias)
	}
	return &u, nil
}

// reserved characters can never appear inside a unit token.
const reserved = "*/^() \t\r\n"

// Lookup finds a unit by name or alias, ignoring case.
func (r *Registry) Lookup(name string) (*Unit, bool) {
	u, ok := r.byName[strings.ToLower(name)]
	return u, ok
}

// Resolve maps a unit token to a unit and an optional SI prefix. A direct
// name or alias match always wins. Otherwise the longest prefix whose
// remainder names a metric unit is stripped; the zero Prefix means none.
func (r *Registry) Resolve(token string) (*Unit, Prefix, bool) {
	if u, ok := r.Lookup(token); ok {
		return u, Prefix{}, true
	}
	for _, m := range prefixMatches(token) {
		if u, ok := r.Lookup(m.rest); ok && u.Metric {
			return u, m.prefix, true
		}
	}
	return nil, Prefix{}, false
}

// Units returns the registered units in registration order.
func (r *Registry) Units() []*Unit {
	out := make([]*Unit, len(r.units))
	copy(out, r.units)
	return out
}

// UnitsIn returns the units of one space in registration order.
func (r *Registry) UnitsIn(space Space) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if u.Space == space {
			out = append(out, u)
		}
	}
	return out
}

// Spaces returns every space with at least one unit, sorted by name.
func (r *Registry) Spaces() []Space {
	out := make([]Space, len(r.spaces))
	copy(out, r.spaces)
	return out
}

// Names returns every lowercase name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Digest identifies the registry contents. Registries built from the same
// units have the same digest.
func (r *Registry) Digest() string {
	return r.digest
}
