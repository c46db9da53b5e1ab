package dimension

import (
	"errors"
	"testing"
)

func mustTree(t *testing.T, input string) Token {
	t.Helper()
	tokens, err := Tokenize(reg, input)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	tree, err := Treeify(tokens)
	if err != nil {
		t.Fatalf("Treeify(%q) error: %v", input, err)
	}
	return tree
}

func TestTreeifyPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"m", "meter"},
		{"(m)", "meter"},
		{"m/s", "(meter / second)"},
		{"m/s/s", "((meter / second) / second)"},
		{"m*s/s", "((meter * second) / second)"},
		{"m/s*s", "((meter / second) * second)"},
		{"m/s^2", "(meter / (second ^ 2))"},
		{"m^2/s", "((meter ^ 2) / second)"},
		{"m/(s*s)", "(meter / (second * second))"},
		{"m/(s^2)", "(meter / (second ^ 2))"},
		{"m^2^3", "((meter ^ 2) ^ 3)"},
		{"(m/s)^2", "((meter / second) ^ 2)"},
		{"kg*m/s^2", "((grame3 * meter) / (second ^ 2))"},
	}

	for _, tc := range tests {
		tree := mustTree(t, tc.input)
		got := tree.String()
		if got != tc.want {
			t.Errorf("Treeify(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestTreeifyDoesNotMutateInput(t *testing.T) {
	tokens, err := Tokenize(reg, "m/s/s")
	if err != nil {
		t.Fatal(err)
	}
	before := tokenStrings(tokens)
	if _, err := Treeify(tokens); err != nil {
		t.Fatal(err)
	}
	after := tokenStrings(tokens)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Treeify modified its input: %v -> %v", before, after)
		}
	}
}

func TestTreeifyErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyExpression},
		{"()", ErrEmptyExpression},
		{"m/()", ErrEmptyExpression},
		{"m/", ErrMalformedExpression},
		{"/m", ErrMalformedExpression},
		{"*", ErrMalformedExpression},
		{"m**s", ErrMalformedExpression},
		{"m s", ErrMalformedExpression},
		{"m(s)", ErrMalformedExpression},
	}

	for _, tc := range tests {
		tokens, err := Tokenize(reg, tc.input)
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", tc.input, err)
			continue
		}
		_, err = Treeify(tokens)
		if !errors.Is(err, tc.want) {
			t.Errorf("Treeify(%q) error = %v, want %v", tc.input, err, tc.want)
		}
	}
}
