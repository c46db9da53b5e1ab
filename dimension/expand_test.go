package dimension

import (
	"errors"
	"testing"
)

type expanded struct {
	name     string
	power    float64
	exponent int
}

func TestExpand(t *testing.T) {
	tests := []struct {
		input string
		want  []expanded
	}{
		{"m", []expanded{{"meter", 1, 0}}},
		{"m/s", []expanded{{"meter", 1, 0}, {"second", -1, 0}}},
		{"m/s^2", []expanded{{"meter", 1, 0}, {"second", -2, 0}}},
		{"m/s/s", []expanded{{"meter", 1, 0}, {"second", -1, 0}, {"second", -1, 0}}},
		{"m/(s*s)", []expanded{{"meter", 1, 0}, {"second", -1, 0}, {"second", -1, 0}}},
		{"m/(s/h)", []expanded{{"meter", 1, 0}, {"second", -1, 0}, {"hour", 1, 0}}},
		{"(m/s)^2", []expanded{{"meter", 2, 0}, {"second", -2, 0}}},
		{"km/ms", []expanded{{"meter", 1, 3}, {"second", -1, -3}}},
		{"s^-2", []expanded{{"second", -2, 0}}},
		{"m^2^3", []expanded{{"meter", 6, 0}}},
		{"m^(2)", []expanded{{"meter", 2, 0}}},
		{"m^1.5", []expanded{{"meter", 1.5, 0}}},
		{"m^100", []expanded{{"meter", 100, 0}}},
		{"(m/s)^-100", []expanded{{"meter", -100, 0}, {"second", 100, 0}}},
	}

	for _, tc := range tests {
		units, err := Expand(mustTree(t, tc.input))
		if err != nil {
			t.Errorf("Expand(%q) error: %v", tc.input, err)
			continue
		}
		if len(units) != len(tc.want) {
			t.Errorf("Expand(%q) returned %d units, want %d", tc.input, len(units), len(tc.want))
			continue
		}
		for i, u := range units {
			w := tc.want[i]
			if u.Conversion.Name != w.name || u.Power != w.power || u.Exponent != w.exponent {
				t.Errorf("Expand(%q)[%d] = {%s %v %d}, want {%s %v %d}",
					tc.input, i, u.Conversion.Name, u.Power, u.Exponent, w.name, w.power, w.exponent)
			}
		}
	}
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"m^s", ErrInvalidExponent},
		{"m^(s*s)", ErrInvalidExponent},
		{"2", ErrMalformedExpression},
		{"m*2", ErrMalformedExpression},
		{"2^2", ErrMalformedExpression},
		{"m^1e300", ErrInvalidExponent},
		{"m^-1e300", ErrInvalidExponent},
		{"m^3e9", ErrInvalidExponent},
		{"m^+Inf", ErrInvalidExponent},
		{"m^101", ErrInvalidExponent},
		{"(m^20)^6", ErrInvalidExponent},
	}

	for _, tc := range tests {
		_, err := Expand(mustTree(t, tc.input))
		if !errors.Is(err, tc.want) {
			t.Errorf("Expand(%q) error = %v, want %v", tc.input, err, tc.want)
		}
	}
}

func TestExpandFlattensGroup(t *testing.T) {
	group := &GroupToken{Tokens: []Token{
		&UnitToken{Unit: mustUnit(t, "meter")},
		&UnitToken{Unit: mustUnit(t, "second"), Exponent: -3},
	}}
	units, err := Expand(&TreeToken{Op: OpDivide, Left: &UnitToken{Unit: mustUnit(t, "gram")}, Right: group})
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("Expand returned %d units, want 3", len(units))
	}
	if units[1].Power != -1 || units[2].Power != -1 || units[2].Exponent != -3 {
		t.Errorf("group members = %+v, %+v; want power -1 and exponent carried", units[1], units[2])
	}
}
