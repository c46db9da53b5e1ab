package registry

import (
	"strings"
	"testing"
)

// TestDefaultNamesUnique checks the built-in table directly rather than
// trusting Build, so a broken Build cannot hide a collision.
func TestDefaultNamesUnique(t *testing.T) {
	owners := make(map[string]string)
	for _, u := range DefaultUnits() {
		for _, name := range u.Names() {
			key := strings.ToLower(name)
			if owner, ok := owners[key]; ok {
				t.Errorf("%q is claimed by both %s and %s", key, owner, u.Name)
			}
			owners[key] = u.Name
		}
	}
}

func TestDefaultBuilds(t *testing.T) {
	if _, err := NewBuilder().Add(DefaultUnits()...).Build(); err != nil {
		t.Fatalf("built-in units do not build: %v", err)
	}
}

func TestDefaultBaseUnits(t *testing.T) {
	r := Default()
	for space, name := range map[Space]string{Length: "meter", Time: "second", Mass: "gram"} {
		u, ok := r.Lookup(name)
		if !ok {
			t.Fatalf("base unit %s missing", name)
		}
		if u.Space != space {
			t.Errorf("%s space = %q, want %q", name, u.Space, space)
		}
		if !u.Metric {
			t.Errorf("%s should accept SI prefixes", name)
		}
		if u.Scale() != 1 {
			t.Errorf("%s scale = %v, want 1", name, u.Scale())
		}
	}
}

func TestDefaultScales(t *testing.T) {
	r := Default()
	tests := []struct {
		name  string
		scale float64
	}{
		{"inch", 0.0254},
		{"foot", 0.3048},
		{"yard", 0.9144},
		{"mile", 1609.344},
		{"hour", 3600},
		{"week", 604800},
		{"tonne", 1e6},
		{"pound", 453.59237},
	}

	for _, tc := range tests {
		u, ok := r.Lookup(tc.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", tc.name)
			continue
		}
		if u.Scale() != tc.scale {
			t.Errorf("%s scale = %v, want %v", tc.name, u.Scale(), tc.scale)
		}
		if got := u.FromBase(tc.scale); got != 1 {
			t.Errorf("%s FromBase(%v) = %v, want 1", tc.name, tc.scale, got)
		}
	}
}
