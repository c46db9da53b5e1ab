package dimension

import (
	"errors"
	"fmt"
)

// Errors returned while parsing or converting unit expressions. None of
// them is recoverable within the operation that raised it.
var (
	ErrUnmatchedParenthesis = errors.New("unmatched parenthesis")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidExponent      = errors.New("invalid exponent, expected number")
	ErrDimensionMismatch    = errors.New("dimension mismatch")
	ErrEmptyExpression      = errors.New("empty expression")

	// ErrMalformedExpression covers operators without operands, operands
	// without an operator between them, and numbers outside a power.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrFractionalPower is returned by Convert when a unit carries a
	// non-integral power.
	ErrFractionalPower = errors.New("fractional power")
)

// InvalidTokenError reports text that is neither a number nor a known unit.
type InvalidTokenError struct {
	Text string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: `%s`", e.Text)
}

func (e *InvalidTokenError) Unwrap() error {
	return ErrInvalidToken
}

// MismatchError reports a conversion between incompatible expressions.
// From and To are the base-unit breakdowns of both sides.
type MismatchError struct {
	From string
	To   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: cannot convert %s to %s", e.From, e.To)
}

func (e *MismatchError) Unwrap() error {
	return ErrDimensionMismatch
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedExpression, fmt.Sprintf(format, args...))
}
