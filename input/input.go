// Package input splits a conversion request such as "10 m/s => mi/h" into a
// value and two unit expressions.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/chazu/unitconv/dimension"
	"github.com/chazu/unitconv/registry"
)

var (
	ErrNoSeparator  = errors.New("no separator found, expected =>, -> or to")
	ErrInvalidValue = errors.New("invalid value")
	ErrMissingUnit  = errors.New("missing unit expression")
)

// Input is a parsed conversion request.
type Input struct {
	Value float64
	From  string
	To    string
}

// Parse splits line at the first separator and pulls a leading number off
// the from side. A request without a number converts 1.
func Parse(line string) (Input, error) {
	from, to, ok := split(line)
	if !ok {
		return Input{}, ErrNoSeparator
	}

	value, from, err := pullNumber(strings.TrimSpace(from))
	if err != nil {
		return Input{}, err
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" {
		return Input{}, fmt.Errorf("%w: nothing to convert from", ErrMissingUnit)
	}
	if to == "" {
		return Input{}, fmt.Errorf("%w: nothing to convert to", ErrMissingUnit)
	}

	return Input{Value: value, From: from, To: to}, nil
}

// HasSeparator reports whether line looks like a conversion request rather
// than a bare unit expression.
func HasSeparator(line string) bool {
	_, _, ok := split(line)
	return ok
}

// split cuts line around the earliest "=>", "->" or standalone "to".
func split(line string) (string, string, bool) {
	at, width := -1, 0
	for _, sep := range []string{"=>", "->"} {
		if i := strings.Index(line, sep); i >= 0 && (at < 0 || i < at) {
			at, width = i, len(sep)
		}
	}
	if i := wordIndex(line, "to"); i >= 0 && (at < 0 || i < at) {
		at, width = i, len("to")
	}
	if at < 0 {
		return "", "", false
	}
	return line[:at], line[at+width:], true
}

// wordIndex finds word surrounded by whitespace, ignoring case.
func wordIndex(line, word string) int {
	lower := strings.ToLower(line)
	for start := 0; start < len(lower); {
		i := strings.Index(lower[start:], word)
		if i < 0 {
			return -1
		}
		i += start
		end := i + len(word)
		before := i == 0 || unicode.IsSpace(rune(lower[i-1]))
		after := end < len(lower) && unicode.IsSpace(rune(lower[end]))
		if before && after && i > 0 {
			return i
		}
		start = i + 1
	}
	return -1
}

// pullNumber splits a leading numeric literal from raw.
func pullNumber(raw string) (float64, string, error) {
	end := 0
scan:
	for end < len(raw) {
		c := raw[end]
		switch {
		case c >= '0' && c <= '9', c == '.':
		case (c == '-' || c == '+') && (end == 0 || raw[end-1] == 'e' || raw[end-1] == 'E'):
		case (c == 'e' || c == 'E') && end > 0 && exponentFollows(raw[end+1:]):
		default:
			break scan
		}
		end++
	}
	if end == 0 {
		return 1, raw, nil
	}
	v, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidValue, raw[:end])
	}
	return v, raw[end:], nil
}

// exponentFollows reports whether s continues a float exponent, so that
// "5em" is not mistaken for a number.
func exponentFollows(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// Result is a completed conversion.
type Result struct {
	Input Input
	Value float64
	From  *dimension.Dimensions
	To    *dimension.Dimensions
}

// Convert parses line and converts it against reg.
func Convert(reg *registry.Registry, line string) (*Result, error) {
	in, err := Parse(line)
	if err != nil {
		return nil, err
	}
	return ConvertInput(reg, in)
}

// ConvertInput converts an already split request against reg.
func ConvertInput(reg *registry.Registry, in Input) (*Result, error) {
	if strings.TrimSpace(in.From) == "" || strings.TrimSpace(in.To) == "" {
		return nil, ErrMissingUnit
	}
	from, err := dimension.Parse(reg, in.From)
	if err != nil {
		return nil, fmt.Errorf("from %q: %w", in.From, err)
	}
	to, err := dimension.Parse(reg, in.To)
	if err != nil {
		return nil, fmt.Errorf("to %q: %w", in.To, err)
	}
	value, err := from.Convert(to, in.Value)
	if err != nil {
		return nil, err
	}
	return &Result{Input: in, Value: value, From: from, To: to}, nil
}

// Format renders r as "10 m/s = 22.3694 mi/h" with at most precision
// decimals.
func (r *Result) Format(precision int) string {
	return fmt.Sprintf("%s %s = %s %s",
		FormatValue(r.Input.Value, precision), r.Input.From,
		FormatValue(r.Value, precision), r.Input.To)
}

// FormatValue prints v with at most precision decimals and no trailing
// zeros. Magnitudes too large or too small for that use the shortest
// exponent notation instead.
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e15 || abs < math.Pow10(-precision)) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
